package service

import (
	"context"
	"errors"
	"io"
	"regexp"
	"time"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"
	"silabo_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var codePattern = regexp.MustCompile(`^\d{5}$`)

// CourseInput 注册课程的表单字段，文件流单独传
type CourseInput struct {
	Name     string
	Version  int
	DueDate  string
	Account  model.AccountType
	Code     string
	FileName string
	FileSize int64
	MimeType string
}

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	ComparisonRepo *repository.ComparisonRepository
	Storage        *StorageService
}

func NewCourseService(courseRepo *repository.CourseRepository, comparisonRepo *repository.ComparisonRepository, storage *StorageService) *CourseService {
	return &CourseService{CourseRepo: courseRepo, ComparisonRepo: comparisonRepo, Storage: storage}
}

func (s *CourseService) validate(in CourseInput) error {
	if in.Name == "" || in.DueDate == "" || in.Code == "" || in.FileName == "" {
		return util.ErrCampoObligatorio
	}
	if !codePattern.MatchString(in.Code) {
		return util.ErrCodigoFormato
	}
	if in.Version < 1 || in.Version > 10 {
		return util.ErrVersionInvalida
	}
	if !model.ValidAccount(in.Account) {
		return util.ErrCuentaInvalida
	}
	if _, err := time.Parse("2006-01-02", in.DueDate); err != nil {
		return util.ErrFechaInvalida
	}

	exists, err := s.CourseRepo.CodeExists(in.Code)
	if err != nil {
		return err
	}
	if exists {
		return util.ErrCodigoDuplicado
	}
	return nil
}

// Create 校验全部通过后才碰存储：先传到暂存键，
// 数据库插入成功再提升为最终键，任一步失败都回退已完成的副作用
func (s *CourseService) Create(ctx context.Context, in CourseInput, file io.Reader) (*model.Course, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	finalKey, displayName := util.SyllabusObjectName(in.Code, in.Name, in.FileName)
	stagingKey := "staging/" + uuid.NewString() + util.FileExt(in.FileName)

	if _, err := s.Storage.Upload(ctx, s.Storage.Silabos, stagingKey, file, in.FileSize, in.MimeType); err != nil {
		return nil, err
	}

	course := &model.Course{
		Name:     in.Name,
		Version:  in.Version,
		DueDate:  in.DueDate,
		FileKey:  finalKey,
		FileName: displayName,
		Account:  in.Account,
		Code:     in.Code,
	}

	if err := s.CourseRepo.Create(course); err != nil {
		if delErr := s.Storage.Delete(ctx, s.Storage.Silabos, stagingKey); delErr != nil {
			logger.Log.Warn("Failed to clean staged syllabus object",
				zap.String("key", stagingKey), zap.Error(delErr))
		}
		return nil, err
	}

	if err := s.Storage.Promote(ctx, s.Storage.Silabos, stagingKey, finalKey); err != nil {
		if delErr := s.CourseRepo.Delete(course.ID); delErr != nil {
			logger.Log.Error("Failed to roll back course row after promote failure",
				zap.Uint("course_id", course.ID), zap.Error(delErr))
		}
		if delErr := s.Storage.Delete(ctx, s.Storage.Silabos, stagingKey); delErr != nil {
			logger.Log.Warn("Failed to clean staged syllabus object",
				zap.String("key", stagingKey), zap.Error(delErr))
		}
		return nil, err
	}

	return course, nil
}

func (s *CourseService) List() ([]model.Course, error) {
	return s.CourseRepo.List()
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCursoNotFound
	}
	return course, err
}

// Delete 先删对象再删行；对象不存在视为已删。
// 课程下的对比参考文档也一并清掉
func (s *CourseService) Delete(ctx context.Context, id uint) error {
	course, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.Storage.Delete(ctx, s.Storage.Silabos, course.FileKey); err != nil {
		logger.Log.Warn("Syllabus object missing on delete",
			zap.String("key", course.FileKey), zap.Error(err))
	}

	comparisons, err := s.ComparisonRepo.ListByCourse(id)
	if err != nil {
		return err
	}
	for _, cmp := range comparisons {
		for _, key := range []string{cmp.DocumentKey1, cmp.DocumentKey2} {
			if key == "" {
				continue
			}
			if err := s.Storage.Delete(ctx, s.Storage.Docs, key); err != nil {
				logger.Log.Warn("Comparison document missing on delete",
					zap.String("key", key), zap.Error(err))
			}
		}
	}

	return s.CourseRepo.Delete(id)
}

// DownloadSyllabus 返回原始大纲文件流和展示文件名
func (s *CourseService) DownloadSyllabus(ctx context.Context, id uint) (io.ReadCloser, string, error) {
	course, err := s.Get(id)
	if err != nil {
		return nil, "", err
	}
	rc, err := s.Storage.Download(ctx, s.Storage.Silabos, course.FileKey)
	return rc, course.FileName, err
}
