package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"
	"silabo_backend/pkg/logger"

	"code.sajari.com/docconv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ComparisonService struct {
	ResearchService *ResearchService
	ComparisonRepo  *repository.ComparisonRepository
	Storage         *StorageService
	AI              *AIService
}

func NewComparisonService(researchService *ResearchService, comparisonRepo *repository.ComparisonRepository, storage *StorageService, ai *AIService) *ComparisonService {
	return &ComparisonService{
		ResearchService: researchService,
		ComparisonRepo:  comparisonRepo,
		Storage:         storage,
		AI:              ai,
	}
}

func comparisonKey(courseID uint, session, slot int, filename string) string {
	return fmt.Sprintf("comparaciones/%d/%d/doc%d_%s", courseID, session, slot, path.Base(filename))
}

// UploadDocument 存参考文档并登记指针。替换槽位时旧对象会被删掉，
// 任何文档变更都把状态打回 pending
func (s *ComparisonService) UploadDocument(ctx context.Context, courseID uint, session, slot int, filename string, reader io.Reader, size int64, contentType string) (*model.SessionComparison, error) {
	if slot != 1 && slot != 2 {
		return nil, util.ErrSlotInvalido
	}

	research, err := s.ResearchService.Get(courseID, session)
	if err != nil {
		return nil, err
	}

	key := comparisonKey(courseID, session, slot, filename)
	if _, err := s.Storage.Upload(ctx, s.Storage.Docs, key, reader, size, contentType); err != nil {
		return nil, err
	}

	cmp, err := s.ComparisonRepo.Find(courseID, session)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cmp = &model.SessionComparison{
			CourseID:      courseID,
			SessionNumber: session,
			ResearchID:    research.ID,
		}
	} else if err != nil {
		return nil, err
	}

	var oldKey string
	if slot == 1 {
		oldKey = cmp.DocumentKey1
		cmp.DocumentKey1 = key
		cmp.DocumentName1 = path.Base(filename)
	} else {
		oldKey = cmp.DocumentKey2
		cmp.DocumentKey2 = key
		cmp.DocumentName2 = path.Base(filename)
	}
	cmp.ResearchID = research.ID
	cmp.Status = model.StatusPending
	cmp.Verdict = ""

	if err := s.ComparisonRepo.Upsert(cmp); err != nil {
		return nil, err
	}

	if oldKey != "" && oldKey != key {
		if delErr := s.Storage.Delete(ctx, s.Storage.Docs, oldKey); delErr != nil {
			logger.Log.Warn("Failed to delete replaced comparison document",
				zap.String("key", oldKey), zap.Error(delErr))
		}
	}

	return cmp, nil
}

// Compare 两份文档都在且调研完成后才可跑对比
func (s *ComparisonService) Compare(ctx context.Context, courseID uint, session int) (*model.SessionComparison, error) {
	cmp, err := s.ComparisonRepo.Find(courseID, session)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrMissingDocuments
	}
	if err != nil {
		return nil, err
	}
	if !cmp.HasBothDocuments() {
		return nil, util.ErrMissingDocuments
	}

	research, err := s.ResearchService.CompletedResearch(courseID, session)
	if err != nil {
		return nil, err
	}

	cmp.Status = model.StatusProcessing
	if err := s.ComparisonRepo.Save(cmp); err != nil {
		return nil, err
	}

	doc1, err := s.extractDocument(ctx, cmp.DocumentKey1, cmp.DocumentName1)
	if err != nil {
		s.revert(cmp)
		return nil, err
	}
	doc2, err := s.extractDocument(ctx, cmp.DocumentKey2, cmp.DocumentName2)
	if err != nil {
		s.revert(cmp)
		return nil, err
	}

	verdict, err := s.AI.Chat(ctx, "", []ChatMessage{
		{Role: "system", Content: "Eres un evaluador académico. Compara los documentos contra la investigación de referencia y emite un veredicto fundamentado en español."},
		{Role: "user", Content: fmt.Sprintf(
			"Investigación de referencia:\n%s\n\nDocumento 1 (%s):\n%s\n\nDocumento 2 (%s):\n%s",
			research.Content, cmp.DocumentName1, doc1, cmp.DocumentName2, doc2)},
	}, 3000)
	if err != nil {
		s.revert(cmp)
		return nil, err
	}

	cmp.Verdict = verdict
	cmp.Status = model.StatusCompleted
	if err := s.ComparisonRepo.Save(cmp); err != nil {
		return nil, err
	}
	return cmp, nil
}

func (s *ComparisonService) revert(cmp *model.SessionComparison) {
	cmp.Status = model.StatusPending
	if err := s.ComparisonRepo.Save(cmp); err != nil {
		logger.Log.Warn("Failed to revert comparison status",
			zap.Uint("comparison_id", cmp.ID), zap.Error(err))
	}
}

func (s *ComparisonService) extractDocument(ctx context.Context, key, name string) (string, error) {
	raw, err := s.Storage.ReadAll(ctx, s.Storage.Docs, key)
	if err != nil {
		return "", err
	}

	var text string
	if util.FileExt(name) == ".docx" {
		converted, _, err := docconv.ConvertDocx(bytes.NewReader(raw))
		if err != nil {
			return "", err
		}
		text = converted
	} else {
		text = string(raw)
	}

	if strings.TrimSpace(text) == "" {
		return "", util.ErrEmptyDocument
	}
	return text, nil
}

func (s *ComparisonService) Get(courseID uint, session int) (*model.SessionComparison, error) {
	cmp, err := s.ComparisonRepo.Find(courseID, session)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrComparacionNotFound
	}
	return cmp, err
}
