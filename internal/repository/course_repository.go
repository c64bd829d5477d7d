package repository

import (
	"silabo_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// List 列表按创建时间倒序，最新注册的课程在最前
func (r *CourseRepository) List() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

// Delete 连同课程的全部流水线产物一起删除。
// 物理删除：软删会让唯一索引继续占着课程代码
func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&model.SyllabusReview{},
			&model.SessionResearch{},
			&model.SessionComparison{},
			&model.SessionActivity{},
			&model.SlideStructure{},
			&model.ReviewerAssignment{},
		} {
			if err := tx.Unscoped().Where("course_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&model.Course{}, id).Error
	})
}
