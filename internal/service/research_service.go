package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"
	"silabo_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 同一(课程,会话)的生成锁。TTL 要长于上游超时
const researchLockTTL = 90 * time.Second

type ResearchService struct {
	ReviewService *ReviewService
	ResearchRepo  *repository.ResearchRepository
	AI            *AIService
	Perplexity    *PerplexityService
	Redis         *redis.Client
}

func NewResearchService(reviewService *ReviewService, researchRepo *repository.ResearchRepository, ai *AIService, perplexity *PerplexityService, rdb *redis.Client) *ResearchService {
	return &ResearchService{
		ReviewService: reviewService,
		ResearchRepo:  researchRepo,
		AI:            ai,
		Perplexity:    perplexity,
		Redis:         rdb,
	}
}

func researchLockKey(courseID uint, session int) string {
	return fmt.Sprintf("research_lock:%d:%d", courseID, session)
}

// acquireLock Redis 不可用时退化为无锁，单实例下问题不大
func (s *ResearchService) acquireLock(ctx context.Context, courseID uint, session int) (func(), error) {
	if s.Redis == nil {
		return func() {}, nil
	}

	key := researchLockKey(courseID, session)
	ok, err := s.Redis.SetNX(ctx, key, "1", researchLockTTL).Result()
	if err != nil {
		logger.Log.Warn("Research lock unavailable, proceeding without it", zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, util.ErrGenerationInProgress
	}
	return func() {
		if err := s.Redis.Del(context.Background(), key).Err(); err != nil {
			logger.Log.Warn("Failed to release research lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

// Research 对批准大纲里的一个会话生成调研内容。
// 失败只影响这一个会话，其余会话互不干扰
func (s *ResearchService) Research(ctx context.Context, courseID uint, session int, backend model.ResearchBackend) (*model.SessionResearch, error) {
	if !model.ValidBackend(backend) {
		return nil, util.ErrBackendInvalido
	}

	review, err := s.ReviewService.ApprovedReview(courseID)
	if err != nil {
		return nil, err
	}
	sess := review.FindSession(session)
	if sess == nil {
		return nil, util.ErrSessionNotFound
	}

	release, err := s.acquireLock(ctx, courseID, session)
	if err != nil {
		return nil, err
	}
	defer release()

	// 生成前只动状态不动内容：重新生成失败时上一次的结果要原样保留
	revertStatus := model.StatusPending
	prior, err := s.ResearchRepo.Find(courseID, session)
	switch {
	case err == nil:
		revertStatus = prior.Status
		if err := s.ResearchRepo.UpdateStatus(courseID, session, model.StatusProcessing); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		placeholder := &model.SessionResearch{
			CourseID:      courseID,
			SessionNumber: session,
			Topic:         sess.Topic,
			Backend:       backend,
			Status:        model.StatusProcessing,
		}
		if err := s.ResearchRepo.Upsert(placeholder); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	content, err := s.generate(ctx, backend, sess)
	if err != nil {
		if revertErr := s.ResearchRepo.UpdateStatus(courseID, session, revertStatus); revertErr != nil {
			logger.Log.Warn("Failed to revert research status",
				zap.Uint("course_id", courseID), zap.Int("session", session), zap.Error(revertErr))
		}
		return nil, err
	}

	research := &model.SessionResearch{
		CourseID:      courseID,
		SessionNumber: session,
		Topic:         sess.Topic,
		Backend:       backend,
		Content:       content,
		Status:        model.StatusCompleted,
	}
	if err := s.ResearchRepo.Upsert(research); err != nil {
		return nil, err
	}
	return research, nil
}

func (s *ResearchService) generate(ctx context.Context, backend model.ResearchBackend, sess *model.SyllabusSession) (string, error) {
	prompt := researchPrompt(sess)
	messages := []ChatMessage{
		{Role: "system", Content: "Eres un investigador académico. Responde en español con fuentes actuales."},
		{Role: "user", Content: prompt},
	}

	if backend == model.BackendPerplexity {
		return s.Perplexity.Chat(ctx, messages, 3000)
	}
	return s.AI.Chat(ctx, "", messages, 3000)
}

func researchPrompt(sess *model.SyllabusSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Investiga a profundidad el tema \"%s\" para una sesión de clase universitaria.\n", sess.Topic)
	if len(sess.Subtopics) > 0 {
		fmt.Fprintf(&b, "Cubre estos subtemas: %s.\n", strings.Join(sess.Subtopics, ", "))
	}
	b.WriteString("Incluye conceptos clave, ejemplos aplicados y referencias bibliográficas recientes.")
	return b.String()
}

func (s *ResearchService) Get(courseID uint, session int) (*model.SessionResearch, error) {
	research, err := s.ResearchRepo.Find(courseID, session)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResearchNotFound
	}
	return research, err
}

// CompletedResearch 对比和PPT生成共用的前置校验
func (s *ResearchService) CompletedResearch(courseID uint, session int) (*model.SessionResearch, error) {
	research, err := s.Get(courseID, session)
	if err != nil {
		return nil, err
	}
	if research.Status != model.StatusCompleted {
		return nil, util.ErrResearchNotCompleted
	}
	return research, nil
}

func (s *ResearchService) ListByCourse(courseID uint) ([]model.SessionResearch, error) {
	return s.ResearchRepo.ListByCourse(courseID)
}

// Delete 删除调研记录并级联清掉依赖它的对比记录。
// 活动提案不依赖调研内容，保留
func (s *ResearchService) Delete(courseID uint, session int) error {
	if _, err := s.Get(courseID, session); err != nil {
		return err
	}
	return s.ResearchRepo.Delete(courseID, session)
}
