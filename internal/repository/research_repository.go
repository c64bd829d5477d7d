package repository

import (
	"silabo_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResearchRepository struct {
	DB *gorm.DB
}

func NewResearchRepository(db *gorm.DB) *ResearchRepository {
	return &ResearchRepository{DB: db}
}

// Upsert 同一(课程,会话)重复生成时覆盖旧内容
func (r *ResearchRepository) Upsert(research *model.SessionResearch) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "course_id"}, {Name: "session_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"topic", "content", "backend", "status", "updated_at",
		}),
	}).Create(research).Error
}

func (r *ResearchRepository) Find(courseID uint, session int) (*model.SessionResearch, error) {
	var research model.SessionResearch
	err := r.DB.Where("course_id = ? AND session_number = ?", courseID, session).First(&research).Error
	return &research, err
}

func (r *ResearchRepository) ListByCourse(courseID uint) ([]model.SessionResearch, error) {
	var list []model.SessionResearch
	err := r.DB.Where("course_id = ?", courseID).Order("session_number ASC").Find(&list).Error
	return list, err
}

func (r *ResearchRepository) UpdateStatus(courseID uint, session int, status model.PipelineStatus) error {
	return r.DB.Model(&model.SessionResearch{}).
		Where("course_id = ? AND session_number = ?", courseID, session).
		Update("status", status).Error
}

// Delete 删除某会话的调研记录，关联的对比记录一并清除。
// 物理删除：软删的行仍占着(course_id, session_number)唯一索引
func (r *ResearchRepository) Delete(courseID uint, session int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("course_id = ? AND session_number = ?", courseID, session).
			Delete(&model.SessionComparison{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Where("course_id = ? AND session_number = ?", courseID, session).
			Delete(&model.SessionResearch{}).Error
	})
}
