package repository

import (
	"silabo_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// Upsert 每个课程只保留一条裁决，重复裁决以最新一次为准
func (r *ReviewRepository) Upsert(review *model.SyllabusReview) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "critique", "sections", "session_list", "reviewer", "remarks", "updated_at",
		}),
	}).Create(review).Error
}

func (r *ReviewRepository) FindByCourse(courseID uint) (*model.SyllabusReview, error) {
	var review model.SyllabusReview
	err := r.DB.Where("course_id = ?", courseID).First(&review).Error
	return &review, err
}
