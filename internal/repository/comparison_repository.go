package repository

import (
	"silabo_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ComparisonRepository struct {
	DB *gorm.DB
}

func NewComparisonRepository(db *gorm.DB) *ComparisonRepository {
	return &ComparisonRepository{DB: db}
}

func (r *ComparisonRepository) Upsert(cmp *model.SessionComparison) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}, {Name: "session_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"research_id", "document_key1", "document_name1", "document_key2", "document_name2",
			"verdict", "status", "updated_at",
		}),
	}).Create(cmp).Error
}

func (r *ComparisonRepository) Find(courseID uint, session int) (*model.SessionComparison, error) {
	var cmp model.SessionComparison
	err := r.DB.Where("course_id = ? AND session_number = ?", courseID, session).First(&cmp).Error
	return &cmp, err
}

func (r *ComparisonRepository) ListByCourse(courseID uint) ([]model.SessionComparison, error) {
	var list []model.SessionComparison
	err := r.DB.Where("course_id = ?", courseID).Find(&list).Error
	return list, err
}

func (r *ComparisonRepository) Save(cmp *model.SessionComparison) error {
	return r.DB.Save(cmp).Error
}
