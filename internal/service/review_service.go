package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"
	"silabo_backend/pkg/logger"

	"code.sajari.com/docconv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 大纲关键词软校验：一个都没出现时只告警，不拦截
var syllabusKeywords = []string{
	"objetivo", "contenido", "sesión", "sesion", "curso",
	"bibliografía", "bibliografia", "evaluación", "evaluacion", "metodología", "metodologia",
}

var critiqueSectionKeys = []string{
	"objetivo_general", "objetivos_especificos", "contenidos", "recursos", "bibliografia",
}

var sectionDelimiter = regexp.MustCompile(`===SECCION:\s*([a-z_]+)\s*===`)

// ExtractResult 文本提取的返回值，KeywordWarning 是软提示
type ExtractResult struct {
	Text           string `json:"texto"`
	KeywordWarning bool   `json:"keyword_warning"`
}

// CritiqueResult 批判调用的结构化结果，Raw 永远保留
type CritiqueResult struct {
	Raw      string                  `json:"critica"`
	Sections model.CritiqueSections  `json:"secciones"`
	Sessions []model.SyllabusSession `json:"lista_sesiones"`
}

type ReviewService struct {
	CourseRepo *repository.CourseRepository
	ReviewRepo *repository.ReviewRepository
	Storage    *StorageService
	AI         *AIService
}

func NewReviewService(courseRepo *repository.CourseRepository, reviewRepo *repository.ReviewRepository, storage *StorageService, ai *AIService) *ReviewService {
	return &ReviewService{CourseRepo: courseRepo, ReviewRepo: reviewRepo, Storage: storage, AI: ai}
}

// ExtractText 拉取大纲原件并抽取纯文本。docx 走 docconv，其余按纯文本读
func (s *ReviewService) ExtractText(ctx context.Context, courseID uint) (*ExtractResult, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCursoNotFound
	}
	if err != nil {
		return nil, err
	}

	raw, err := s.Storage.ReadAll(ctx, s.Storage.Silabos, course.FileKey)
	if err != nil {
		return nil, err
	}

	var text string
	if util.FileExt(course.FileName) == ".docx" {
		converted, _, err := docconv.ConvertDocx(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		text = converted
	} else {
		text = string(raw)
	}

	if strings.TrimSpace(text) == "" {
		return nil, util.ErrEmptyDocument
	}

	result := &ExtractResult{Text: text, KeywordWarning: !looksLikeSyllabus(text)}
	if result.KeywordWarning {
		logger.Log.Warn("Uploaded document does not look like a syllabus",
			zap.Uint("course_id", courseID),
			zap.String("file", course.FileName))
	}
	return result, nil
}

func looksLikeSyllabus(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range syllabusKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Critique 并发发出两路提示：五板块批判和会话抽取。任一路失败整体失败
func (s *ReviewService) Critique(ctx context.Context, courseID uint, text, apiKey string) (*CritiqueResult, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCursoNotFound
	}
	if err != nil {
		return nil, err
	}

	var critiqueRaw, sessionsRaw string
	var critiqueErr, sessionsErr error
	done := make(chan struct{}, 2)

	go func() {
		defer func() { done <- struct{}{} }()
		critiqueRaw, critiqueErr = s.AI.Chat(ctx, apiKey, []ChatMessage{
			{Role: "system", Content: critiqueSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("Curso: %s (%s)\n\nSílabo:\n%s", course.Name, course.Code, text)},
		}, 3000)
	}()
	go func() {
		defer func() { done <- struct{}{} }()
		sessionsRaw, sessionsErr = s.AI.Chat(ctx, apiKey, []ChatMessage{
			{Role: "system", Content: sessionsSystemPrompt},
			{Role: "user", Content: text},
		}, 3000)
	}()
	<-done
	<-done

	if critiqueErr != nil {
		return nil, critiqueErr
	}
	if sessionsErr != nil {
		return nil, sessionsErr
	}

	sections, err := ParseCritiqueSections(critiqueRaw)
	if err != nil {
		return &CritiqueResult{Raw: critiqueRaw}, err
	}

	sessions, err := ParseSessionList(sessionsRaw)
	if err != nil {
		return &CritiqueResult{Raw: critiqueRaw, Sections: sections}, err
	}

	return &CritiqueResult{Raw: critiqueRaw, Sections: sections, Sessions: sessions}, nil
}

// ParseCritiqueSections 按分隔符协议切分批判文本。
// 5个板块必须恰好各出现一次，未知板块同样视为格式错误
func ParseCritiqueSections(raw string) (model.CritiqueSections, error) {
	var sections model.CritiqueSections

	matches := sectionDelimiter.FindAllStringSubmatchIndex(raw, -1)
	if len(matches) != len(critiqueSectionKeys) {
		return sections, util.ErrMalformedSections
	}

	found := make(map[string]string, len(matches))
	for i, m := range matches {
		key := raw[m[2]:m[3]]
		end := len(raw)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if _, dup := found[key]; dup {
			return sections, util.ErrMalformedSections
		}
		found[key] = strings.TrimSpace(raw[m[1]:end])
	}

	for _, key := range critiqueSectionKeys {
		if _, ok := found[key]; !ok {
			return sections, util.ErrMalformedSections
		}
	}

	sections.GeneralObjective = found["objetivo_general"]
	sections.SpecificObjectives = found["objetivos_especificos"]
	sections.Contents = found["contenidos"]
	sections.Resources = found["recursos"]
	sections.Bibliography = found["bibliografia"]
	return sections, nil
}

// ParseSessionList 去掉围栏后严格反序列化会话数组
func ParseSessionList(raw string) ([]model.SyllabusSession, error) {
	cleaned := StripCodeFences(raw)

	var sessions []model.SyllabusSession
	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sessions); err != nil {
		return nil, util.ErrMalformedSessionList
	}
	if len(sessions) == 0 {
		return nil, util.ErrMalformedSessionList
	}
	for _, sess := range sessions {
		if sess.Number <= 0 || sess.Topic == "" {
			return nil, util.ErrMalformedSessionList
		}
	}
	return sessions, nil
}

// StripCodeFences 去除模型输出里包裹的 ```json 围栏
func StripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}
	return strings.TrimSpace(cleaned)
}

// DecideInput 评审裁决的落库字段
type DecideInput struct {
	Approved bool
	Critique string
	Sections model.CritiqueSections
	Sessions []model.SyllabusSession
	Reviewer string
	Remarks  string
}

// Decide 落库裁决。每个课程只有一行，重复裁决以最新为准
func (s *ReviewService) Decide(courseID uint, in DecideInput) (*model.SyllabusReview, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCursoNotFound
		}
		return nil, err
	}

	status := model.ReviewRejected
	if in.Approved {
		status = model.ReviewApproved
	}

	review := &model.SyllabusReview{
		CourseID:    courseID,
		Status:      status,
		Critique:    in.Critique,
		Sections:    in.Sections,
		SessionList: in.Sessions,
		Reviewer:    in.Reviewer,
		Remarks:     in.Remarks,
	}
	if err := s.ReviewRepo.Upsert(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Get(courseID uint) (*model.SyllabusReview, error) {
	review, err := s.ReviewRepo.FindByCourse(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRevisionNotFound
	}
	return review, err
}

// ApprovedReview 下游各阶段的共同门禁
func (s *ReviewService) ApprovedReview(courseID uint) (*model.SyllabusReview, error) {
	review, err := s.Get(courseID)
	if err != nil {
		return nil, err
	}
	if review.Status != model.ReviewApproved {
		return nil, util.ErrReviewNotApproved
	}
	return review, nil
}

const critiqueSystemPrompt = `Eres un especialista en diseño curricular universitario. ` +
	`Evalúa críticamente el sílabo proporcionado. Tu respuesta DEBE estar dividida en exactamente 5 secciones, ` +
	`cada una precedida por su delimitador en una línea propia, en este orden y sin texto fuera de ellas:
===SECCION: objetivo_general===
===SECCION: objetivos_especificos===
===SECCION: contenidos===
===SECCION: recursos===
===SECCION: bibliografia===`

const sessionsSystemPrompt = `Extrae las sesiones de clase del sílabo. Responde SOLO con un arreglo JSON, ` +
	`sin explicación ni fences, donde cada elemento tiene exactamente estos campos: ` +
	`numero_sesion (entero), tema_principal (string), subtemas (arreglo de strings), ` +
	`actividades (string), recursos (string), evaluacion (string), duracion (string).`
