package service

import (
	"errors"
	"regexp"
	"time"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"

	"gorm.io/gorm"
)

var dniPattern = regexp.MustCompile(`^\d{8}$`)

// ReviewerInput 指派评审人的表单字段
type ReviewerInput struct {
	ReviewerName string
	DNI          string
	Phone        string
	Email        string
	Deadline     string
	Status       model.AssignmentStatus
	Comments     string
}

// ReviewerService 评审人指派表，不卡任何流水线阶段
type ReviewerService struct {
	CourseRepo   *repository.CourseRepository
	ReviewerRepo *repository.ReviewerRepository
}

func NewReviewerService(courseRepo *repository.CourseRepository, reviewerRepo *repository.ReviewerRepository) *ReviewerService {
	return &ReviewerService{CourseRepo: courseRepo, ReviewerRepo: reviewerRepo}
}

func (s *ReviewerService) Save(courseID uint, in ReviewerInput) (*model.ReviewerAssignment, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCursoNotFound
		}
		return nil, err
	}

	if in.ReviewerName == "" {
		return nil, util.ErrCampoObligatorio
	}
	if in.DNI != "" && !dniPattern.MatchString(in.DNI) {
		return nil, util.ErrDNIInvalido
	}
	if in.Deadline != "" {
		if _, err := time.Parse("2006-01-02", in.Deadline); err != nil {
			return nil, util.ErrFechaInvalida
		}
	}
	if in.Status == "" {
		in.Status = model.AssignmentEnProceso
	}
	if !model.ValidAssignmentStatus(in.Status) {
		return nil, util.ErrEstadoInvalido
	}

	assignment := &model.ReviewerAssignment{
		CourseID:     courseID,
		ReviewerName: in.ReviewerName,
		DNI:          in.DNI,
		Phone:        in.Phone,
		Email:        in.Email,
		Deadline:     in.Deadline,
		Status:       in.Status,
		Comments:     in.Comments,
	}
	if err := s.ReviewerRepo.Upsert(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *ReviewerService) Get(courseID uint) (*model.ReviewerAssignment, error) {
	assignment, err := s.ReviewerRepo.FindByCourse(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAsignacionNotFound
	}
	return assignment, err
}
