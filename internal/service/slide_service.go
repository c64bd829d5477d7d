package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"

	"gorm.io/gorm"
)

// GenerateResult PPT结构生成的返回值。解析失败时 Raw 仍然返回，
// ParseError 带上用户可读的原因，调用方可以手工修正后再验证
type GenerateResult struct {
	Raw        string           `json:"json_estructura"`
	Parsed     *model.SlideDeck `json:"json_parsed,omitempty"`
	ParseError string           `json:"error,omitempty"`
}

type SlideService struct {
	CourseRepo      *repository.CourseRepository
	ResearchService *ResearchService
	SlideRepo       *repository.SlideRepository
	AI              *AIService
}

func NewSlideService(courseRepo *repository.CourseRepository, researchService *ResearchService, slideRepo *repository.SlideRepository, ai *AIService) *SlideService {
	return &SlideService{
		CourseRepo:      courseRepo,
		ResearchService: researchService,
		SlideRepo:       slideRepo,
		AI:              ai,
	}
}

// Generate 基于已完成的调研内容生成PPT结构。
// 模型输出解析失败不算请求失败：原文和错误一起返回
func (s *SlideService) Generate(ctx context.Context, courseID uint, session int) (*GenerateResult, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCursoNotFound
	}
	if err != nil {
		return nil, err
	}

	research, err := s.ResearchService.CompletedResearch(courseID, session)
	if err != nil {
		return nil, err
	}

	raw, err := s.AI.Chat(ctx, "", []ChatMessage{
		{Role: "system", Content: slideSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(
			"Curso: %s\nCódigo: %s\nSesión: %d\nTema: %s\n\nContenido de investigación:\n%s",
			course.Name, course.Code, session, research.Topic, research.Content)},
	}, 4000)
	if err != nil {
		return nil, err
	}

	cleaned := StripCodeFences(raw)
	deck, parseErr := ParseSlideDeck(cleaned)
	if parseErr != nil {
		return &GenerateResult{Raw: cleaned, ParseError: parseErr.Error()}, nil
	}
	return &GenerateResult{Raw: cleaned, Parsed: deck}, nil
}

// ParseSlideDeck 反序列化并校验一份完整的PPT结构。
// contenido 按tipo解码，未知tipo在Slide.UnmarshalJSON里拒绝
func ParseSlideDeck(raw string) (*model.SlideDeck, error) {
	var deck model.SlideDeck
	if err := json.Unmarshal([]byte(raw), &deck); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrInvalidStructureJSON, err)
	}
	if err := validateDeck(&deck); err != nil {
		return nil, err
	}
	return &deck, nil
}

func validateDeck(deck *model.SlideDeck) error {
	if len(deck.Slides) == 0 {
		return fmt.Errorf("%w: la estructura no tiene slides", util.ErrInvalidStructureJSON)
	}
	for i, slide := range deck.Slides {
		if slide.Numero != i+1 {
			return fmt.Errorf("%w: numeración de slides no consecutiva", util.ErrInvalidStructureJSON)
		}
		if strings.TrimSpace(slide.Titulo) == "" && slide.Tipo != model.SlideSoloImagen {
			return fmt.Errorf("%w: slide %d sin título", util.ErrInvalidStructureJSON, slide.Numero)
		}
	}
	return nil
}

// Validate 供前端在手工编辑后校验，不落库
func (s *SlideService) Validate(raw string) (*model.SlideDeck, error) {
	return ParseSlideDeck(StripCodeFences(raw))
}

// Save 落库前服务端重算 SlideCount 和 TypesUsed，不信任客户端的派生字段
func (s *SlideService) Save(ctx context.Context, courseID uint, session int, raw string, userID uint) (*model.SlideStructure, error) {
	if userID == 0 {
		return nil, util.ErrUnauthenticated
	}

	deck, err := ParseSlideDeck(StripCodeFences(raw))
	if err != nil {
		return nil, err
	}

	research, err := s.ResearchService.CompletedResearch(courseID, session)
	if err != nil {
		return nil, err
	}

	structure := &model.SlideStructure{
		CourseID:      courseID,
		SessionNumber: session,
		Topic:         research.Topic,
		Structure:     *deck,
		SlideCount:    len(deck.Slides),
		TypesUsed:     deck.DistinctTypes(),
		Status:        model.StatusCompleted,
		CreatedBy:     userID,
	}
	if err := s.SlideRepo.Upsert(structure); err != nil {
		return nil, err
	}
	return structure, nil
}

func (s *SlideService) Get(courseID uint, session int) (*model.SlideStructure, error) {
	structure, err := s.SlideRepo.Find(courseID, session)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	return structure, err
}

func (s *SlideService) ListByCourse(courseID uint) ([]model.SlideStructure, error) {
	return s.SlideRepo.ListByCourse(courseID)
}

var slideSystemPrompt = fmt.Sprintf(`Eres un generador de estructuras de presentaciones académicas. `+
	`Responde SOLO con un JSON válido, sin fences ni texto adicional, con esta forma exacta:
{"meta":{"curso":"","codigo":"","sesion":0,"tema":"","total_slides":0},"slides":[{"numero":1,"tipo":"","titulo":"","contenido":{}}]}
Los tipos permitidos son: %s. La forma de "contenido" depende del tipo:
portada {titulo_principal, subtitulo, curso, sesion, codigo};
indice y subtemas {items: [strings]};
texto_imagen {texto, sugerencia_imagen};
dos_columnas {columna_izquierda, columna_derecha};
solo_imagen {sugerencia_imagen, descripcion};
solo_texto {texto};
conclusion {puntos: [strings], cierre}.
Numera los slides consecutivamente desde 1. Genera entre 8 y 15 slides.`,
	joinTypes(model.AllSlideTypes))

// SlideSystemPrompt 无状态代理端点复用同一份提示词
func SlideSystemPrompt() string {
	return slideSystemPrompt
}

func joinTypes(types []model.SlideType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
