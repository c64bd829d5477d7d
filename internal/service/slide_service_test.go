package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"

	"gorm.io/gorm"
)

const testDeckJSON = `{
  "meta": {"curso": "Curso", "codigo": "12345", "sesion": 1, "tema": "Límites", "total_slides": 3},
  "slides": [
    {"numero": 1, "tipo": "portada", "titulo": "Límites", "contenido": {"titulo_principal": "Límites", "curso": "Curso"}},
    {"numero": 2, "tipo": "solo_texto", "titulo": "Definición", "contenido": {"texto": "Concepto de límite."}},
    {"numero": 3, "tipo": "conclusion", "titulo": "Cierre", "contenido": {"puntos": ["repaso"], "cierre": "preguntas"}}
  ]
}`

func newSlideFixture(t *testing.T, ai *AIService) (*SlideService, *gorm.DB, *model.Course) {
	t.Helper()
	db := newTestDB(t)
	storage := newTestStorage(t)
	courseRepo := repository.NewCourseRepository(db)
	reviewSvc := NewReviewService(courseRepo, repository.NewReviewRepository(db), storage, ai)
	researchSvc := NewResearchService(reviewSvc, repository.NewResearchRepository(db), ai, nil, nil)
	svc := NewSlideService(courseRepo, researchSvc, repository.NewSlideRepository(db), ai)

	course := seedCourse(t, db, storage, "texto del sílabo")
	return svc, db, course
}

func TestSlideGenerateStripsFences(t *testing.T) {
	ai := newFakeAI(t, chatReply("```json\n"+testDeckJSON+"\n```"))
	svc, db, course := newSlideFixture(t, ai)
	seedResearch(t, db, course.ID, 1, model.StatusCompleted)

	result, err := svc.Generate(context.Background(), course.ID, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Parsed == nil {
		t.Fatalf("fenced JSON should still parse, error: %q", result.ParseError)
	}
	if strings.Contains(result.Raw, "```") {
		t.Error("raw output should have fences stripped")
	}
	if len(result.Parsed.Slides) != 3 {
		t.Errorf("expected 3 slides, got %d", len(result.Parsed.Slides))
	}
}

func TestSlideGenerateUnparseableIsNotAnError(t *testing.T) {
	ai := newFakeAI(t, chatReply("aquí tienes la estructura que pediste"))
	svc, db, course := newSlideFixture(t, ai)
	seedResearch(t, db, course.ID, 1, model.StatusCompleted)

	result, err := svc.Generate(context.Background(), course.ID, 1)
	if err != nil {
		t.Fatalf("parse failure must not fail the call: %v", err)
	}
	if result.Parsed != nil {
		t.Error("free text should not parse")
	}
	if result.ParseError == "" {
		t.Error("parse error should be reported")
	}
	if result.Raw != "aquí tienes la estructura que pediste" {
		t.Errorf("raw output must be preserved for manual correction, got %q", result.Raw)
	}
}

func TestSlideGenerateRequiresCompletedResearch(t *testing.T) {
	svc, db, course := newSlideFixture(t, newFakeAI(t, chatReply(testDeckJSON)))
	ctx := context.Background()

	if _, err := svc.Generate(ctx, course.ID, 1); !errors.Is(err, util.ErrResearchNotFound) {
		t.Errorf("no research: got %v", err)
	}

	seedResearch(t, db, course.ID, 1, model.StatusProcessing)
	if _, err := svc.Generate(ctx, course.ID, 1); !errors.Is(err, util.ErrResearchNotCompleted) {
		t.Errorf("incomplete research: got %v", err)
	}
}

func TestParseSlideDeckRejectsBadDecks(t *testing.T) {
	cases := map[string]string{
		"not json":         "tres slides sobre límites",
		"empty slides":     `{"meta":{},"slides":[]}`,
		"gap in numbering": `{"meta":{},"slides":[{"numero":1,"tipo":"portada","titulo":"a","contenido":{}},{"numero":3,"tipo":"solo_texto","titulo":"b","contenido":{}}]}`,
		"missing title":    `{"meta":{},"slides":[{"numero":1,"tipo":"solo_texto","titulo":" ","contenido":{}}]}`,
	}
	for name, raw := range cases {
		if _, err := ParseSlideDeck(raw); !errors.Is(err, util.ErrInvalidStructureJSON) {
			t.Errorf("%s: got %v, want ErrInvalidStructureJSON", name, err)
		}
	}
}

func TestParseSlideDeckAllowsUntitledImageSlide(t *testing.T) {
	raw := `{"meta":{},"slides":[{"numero":1,"tipo":"solo_imagen","titulo":"","contenido":{"sugerencia_imagen":"gráfica de límite"}}]}`
	if _, err := ParseSlideDeck(raw); err != nil {
		t.Errorf("solo_imagen may omit the title: %v", err)
	}
}

func TestSlideSaveRequiresUser(t *testing.T) {
	svc, db, course := newSlideFixture(t, nil)
	seedResearch(t, db, course.ID, 1, model.StatusCompleted)

	_, err := svc.Save(context.Background(), course.ID, 1, testDeckJSON, 0)
	if !errors.Is(err, util.ErrUnauthenticated) {
		t.Errorf("got %v, want ErrUnauthenticated", err)
	}
}

func TestSlideSaveRecomputesDerivedFields(t *testing.T) {
	svc, db, course := newSlideFixture(t, nil)
	seedResearch(t, db, course.ID, 1, model.StatusCompleted)

	structure, err := svc.Save(context.Background(), course.ID, 1, testDeckJSON, 7)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if structure.SlideCount != 3 {
		t.Errorf("slide count must be recomputed, got %d", structure.SlideCount)
	}
	want := []model.SlideType{model.SlidePortada, model.SlideSoloTexto, model.SlideConclusion}
	if len(structure.TypesUsed) != len(want) {
		t.Fatalf("unexpected types %v", structure.TypesUsed)
	}
	for i, typ := range want {
		if structure.TypesUsed[i] != typ {
			t.Errorf("types_used[%d] = %q, want %q", i, structure.TypesUsed[i], typ)
		}
	}
	if structure.CreatedBy != 7 {
		t.Errorf("unexpected creator %d", structure.CreatedBy)
	}

	stored, err := svc.Get(course.ID, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Structure.Slides) != 3 {
		t.Errorf("structure should round-trip through the DB, got %d slides", len(stored.Structure.Slides))
	}
	if stored.Topic != "Límites" {
		t.Errorf("topic should come from the research row, got %q", stored.Topic)
	}
}

func TestSlideSaveUpsertsPerSession(t *testing.T) {
	svc, db, course := newSlideFixture(t, nil)
	seedResearch(t, db, course.ID, 1, model.StatusCompleted)
	ctx := context.Background()

	if _, err := svc.Save(ctx, course.ID, 1, testDeckJSON, 7); err != nil {
		t.Fatalf("first save: %v", err)
	}
	smaller := `{"meta":{},"slides":[{"numero":1,"tipo":"portada","titulo":"Nueva","contenido":{"titulo_principal":"Nueva"}}]}`
	structure, err := svc.Save(ctx, course.ID, 1, smaller, 9)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if structure.SlideCount != 1 {
		t.Errorf("latest save must win, got %d slides", structure.SlideCount)
	}

	var count int64
	db.Model(&model.SlideStructure{}).Where("course_id = ?", course.ID).Count(&count)
	if count != 1 {
		t.Errorf("one structure per (course, session), got %d", count)
	}
}
