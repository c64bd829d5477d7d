package repository

import (
	"silabo_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Upsert(act *model.SessionActivity) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}, {Name: "session_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"source_activity", "proposal", "status", "updated_at",
		}),
	}).Create(act).Error
}

func (r *ActivityRepository) Find(courseID uint, session int) (*model.SessionActivity, error) {
	var act model.SessionActivity
	err := r.DB.Where("course_id = ? AND session_number = ?", courseID, session).First(&act).Error
	return &act, err
}

func (r *ActivityRepository) ListByCourse(courseID uint) ([]model.SessionActivity, error) {
	var list []model.SessionActivity
	err := r.DB.Where("course_id = ?", courseID).Order("session_number ASC").Find(&list).Error
	return list, err
}
