package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"

	"gorm.io/gorm"
)

type ActivityService struct {
	ReviewService *ReviewService
	ActivityRepo  *repository.ActivityRepository
	AI            *AIService
}

func NewActivityService(reviewService *ReviewService, activityRepo *repository.ActivityRepository, ai *AIService) *ActivityService {
	return &ActivityService{ReviewService: reviewService, ActivityRepo: activityRepo, AI: ai}
}

// Generate 以大纲里登记的原始活动为底稿生成改进提案。
// 模型输出原样保存，不做后处理
func (s *ActivityService) Generate(ctx context.Context, courseID uint, session int) (*model.SessionActivity, error) {
	review, err := s.ReviewService.ApprovedReview(courseID)
	if err != nil {
		return nil, err
	}
	sess := review.FindSession(session)
	if sess == nil {
		return nil, util.ErrSessionNotFound
	}
	if strings.TrimSpace(sess.Activities) == "" {
		return nil, util.ErrNoActivities
	}

	proposal, err := s.AI.Chat(ctx, "", []ChatMessage{
		{Role: "system", Content: "Eres un diseñador instruccional universitario. Responde en español usando markdown."},
		{Role: "user", Content: fmt.Sprintf(
			"Para la sesión \"%s\" el sílabo propone estas actividades de aprendizaje:\n%s\n\n"+
				"Propón una versión mejorada: actividades concretas, tiempos estimados, materiales y criterios de evaluación.",
			sess.Topic, sess.Activities)},
	}, 3000)
	if err != nil {
		return nil, err
	}

	activity := &model.SessionActivity{
		CourseID:       courseID,
		SessionNumber:  session,
		SourceActivity: sess.Activities,
		Proposal:       proposal,
		Status:         model.StatusCompleted,
	}
	if err := s.ActivityRepo.Upsert(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *ActivityService) Get(courseID uint, session int) (*model.SessionActivity, error) {
	activity, err := s.ActivityRepo.Find(courseID, session)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	return activity, err
}

func (s *ActivityService) ListByCourse(courseID uint) ([]model.SessionActivity, error) {
	return s.ActivityRepo.ListByCourse(courseID)
}

// RenderHTML 返回提案的轻量HTML渲染
func (s *ActivityService) RenderHTML(courseID uint, session int) (string, error) {
	activity, err := s.Get(courseID, session)
	if err != nil {
		return "", err
	}
	return util.MarkdownToHTML(activity.Proposal), nil
}
