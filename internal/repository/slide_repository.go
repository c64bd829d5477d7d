package repository

import (
	"silabo_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlideRepository struct {
	DB *gorm.DB
}

func NewSlideRepository(db *gorm.DB) *SlideRepository {
	return &SlideRepository{DB: db}
}

func (r *SlideRepository) Upsert(s *model.SlideStructure) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}, {Name: "session_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"topic", "structure", "slide_count", "types_used", "status", "created_by", "updated_at",
		}),
	}).Create(s).Error
}

func (r *SlideRepository) Find(courseID uint, session int) (*model.SlideStructure, error) {
	var s model.SlideStructure
	err := r.DB.Where("course_id = ? AND session_number = ?", courseID, session).First(&s).Error
	return &s, err
}

func (r *SlideRepository) ListByCourse(courseID uint) ([]model.SlideStructure, error) {
	var list []model.SlideStructure
	err := r.DB.Where("course_id = ?", courseID).Order("session_number ASC").Find(&list).Error
	return list, err
}
