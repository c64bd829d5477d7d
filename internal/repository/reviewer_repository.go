package repository

import (
	"silabo_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewerRepository struct {
	DB *gorm.DB
}

func NewReviewerRepository(db *gorm.DB) *ReviewerRepository {
	return &ReviewerRepository{DB: db}
}

func (r *ReviewerRepository) Upsert(a *model.ReviewerAssignment) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"reviewer_name", "dni", "phone", "email", "deadline", "status", "comments", "updated_at",
		}),
	}).Create(a).Error
}

func (r *ReviewerRepository) FindByCourse(courseID uint) (*model.ReviewerAssignment, error) {
	var a model.ReviewerAssignment
	err := r.DB.Where("course_id = ?", courseID).First(&a).Error
	return &a, err
}
