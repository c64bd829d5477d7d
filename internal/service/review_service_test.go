package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"

	"gorm.io/gorm"
)

func newReviewService(t *testing.T, ai *AIService) (*ReviewService, *gorm.DB, *StorageService) {
	t.Helper()
	db := newTestDB(t)
	storage := newTestStorage(t)
	svc := NewReviewService(
		repository.NewCourseRepository(db),
		repository.NewReviewRepository(db),
		storage, ai,
	)
	return svc, db, storage
}

func seedCourse(t *testing.T, db *gorm.DB, storage *StorageService, content string) *model.Course {
	t.Helper()
	key := "silabos/test_12345-CURSO__SILABO.txt"
	if _, err := storage.Upload(context.Background(), storage.Silabos, key, strings.NewReader(content), int64(len(content)), "text/plain"); err != nil {
		t.Fatalf("upload: %v", err)
	}
	course := &model.Course{
		Name: "Curso", Version: 1, DueDate: "2026-09-15",
		FileKey: key, FileName: "12345-CURSO__SILABO.txt",
		Account: model.AccountPregrado, Code: "12345",
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func TestExtractTextEmptyDocument(t *testing.T) {
	svc, db, storage := newReviewService(t, nil)
	course := seedCourse(t, db, storage, "   \n\t  ")

	_, err := svc.ExtractText(context.Background(), course.ID)
	if !errors.Is(err, util.ErrEmptyDocument) {
		t.Errorf("got %v, want ErrEmptyDocument", err)
	}
}

func TestExtractTextKeywordWarning(t *testing.T) {
	svc, db, storage := newReviewService(t, nil)

	course := seedCourse(t, db, storage, "Objetivo general del curso: dominar derivadas. Contenidos por semana.")
	result, err := svc.ExtractText(context.Background(), course.ID)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if result.KeywordWarning {
		t.Error("document with syllabus keywords should not warn")
	}

	svc2, db2, storage2 := newReviewService(t, nil)
	other := seedCourse(t, db2, storage2, "lista de compras: pan, leche, huevos")
	result2, err := svc2.ExtractText(context.Background(), other.ID)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !result2.KeywordWarning {
		t.Error("document without syllabus keywords should warn but not block")
	}
}

func TestExtractTextUnknownCourse(t *testing.T) {
	svc, _, _ := newReviewService(t, nil)
	_, err := svc.ExtractText(context.Background(), 404)
	if !errors.Is(err, util.ErrCursoNotFound) {
		t.Errorf("got %v, want ErrCursoNotFound", err)
	}
}

const wellFormedCritique = `===SECCION: objetivo_general===
El objetivo general es claro pero poco medible.
===SECCION: objetivos_especificos===
Faltan verbos de acción.
===SECCION: contenidos===
Buena progresión temática.
===SECCION: recursos===
No se mencionan recursos digitales.
===SECCION: bibliografia===
Referencias desactualizadas.`

func TestParseCritiqueSections(t *testing.T) {
	sections, err := ParseCritiqueSections(wellFormedCritique)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sections.GeneralObjective != "El objetivo general es claro pero poco medible." {
		t.Errorf("unexpected objetivo_general %q", sections.GeneralObjective)
	}
	if sections.Bibliography != "Referencias desactualizadas." {
		t.Errorf("unexpected bibliografia %q", sections.Bibliography)
	}
}

func TestParseCritiqueSectionsMalformed(t *testing.T) {
	cases := map[string]string{
		"missing section": strings.Replace(wellFormedCritique, "===SECCION: bibliografia===", "", 1),
		"unknown section": wellFormedCritique + "\n===SECCION: metodologia===\nextra",
		"free text":       "El sílabo está bien en general.",
	}
	for name, raw := range cases {
		if _, err := ParseCritiqueSections(raw); !errors.Is(err, util.ErrMalformedSections) {
			t.Errorf("%s: got %v, want ErrMalformedSections", name, err)
		}
	}
}

func TestParseSessionList(t *testing.T) {
	raw := "```json\n[{\"numero_sesion\":1,\"tema_principal\":\"Límites\",\"subtemas\":[\"definición\"],\"actividades\":\"taller\",\"recursos\":\"pizarra\",\"evaluacion\":\"quiz\",\"duracion\":\"2h\"}]\n```"
	sessions, err := ParseSessionList(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Topic != "Límites" {
		t.Errorf("unexpected sessions %+v", sessions)
	}
}

func TestParseSessionListMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":       "las sesiones son tres",
		"empty array":    "[]",
		"missing number": `[{"tema_principal":"Límites"}]`,
		"unknown field":  `[{"numero_sesion":1,"tema_principal":"x","nota":"y"}]`,
	}
	for name, raw := range cases {
		if _, err := ParseSessionList(raw); !errors.Is(err, util.ErrMalformedSessionList) {
			t.Errorf("%s: got %v, want ErrMalformedSessionList", name, err)
		}
	}
}

func TestCritiqueJoinsBothPrompts(t *testing.T) {
	sessionsJSON := `[{"numero_sesion":1,"tema_principal":"Límites","subtemas":[],"actividades":"taller","recursos":"","evaluacion":"","duracion":"2h"}]`
	calls := 0
	ai := newFakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req chatRequest
		_ = jsonDecode(r.Body, &req)
		if strings.Contains(req.Messages[0].Content, "Extrae las sesiones") {
			chatReply(sessionsJSON)(w, r)
			return
		}
		chatReply(wellFormedCritique)(w, r)
	})

	svc, db, storage := newReviewService(t, ai)
	course := seedCourse(t, db, storage, "texto del sílabo")

	result, err := svc.Critique(context.Background(), course.ID, "texto del sílabo", "")
	if err != nil {
		t.Fatalf("critique: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", calls)
	}
	if result.Sections.Contents == "" {
		t.Error("sections should be populated")
	}
	if len(result.Sessions) != 1 {
		t.Errorf("expected 1 session, got %d", len(result.Sessions))
	}
}

func TestCritiqueEitherFailureFailsBoth(t *testing.T) {
	ai := newFakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = jsonDecode(r.Body, &req)
		if strings.Contains(req.Messages[0].Content, "Extrae las sesiones") {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		chatReply(wellFormedCritique)(w, r)
	})

	svc, db, storage := newReviewService(t, ai)
	course := seedCourse(t, db, storage, "texto")

	_, err := svc.Critique(context.Background(), course.ID, "texto", "")
	if !errors.Is(err, util.ErrAIRateLimited) {
		t.Errorf("got %v, want ErrAIRateLimited", err)
	}
}

func TestCritiqueMalformedPreservesRaw(t *testing.T) {
	ai := newFakeAI(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply("texto sin delimitadores")(w, r)
	})

	svc, db, storage := newReviewService(t, ai)
	course := seedCourse(t, db, storage, "texto")

	result, err := svc.Critique(context.Background(), course.ID, "texto", "")
	if !errors.Is(err, util.ErrMalformedSections) {
		t.Fatalf("got %v, want ErrMalformedSections", err)
	}
	if result == nil || result.Raw != "texto sin delimitadores" {
		t.Error("raw model output must be preserved on parse failure")
	}
}

func TestDecideUpsertLatestWins(t *testing.T) {
	svc, db, storage := newReviewService(t, nil)
	course := seedCourse(t, db, storage, "texto")

	sessions := []model.SyllabusSession{{Number: 1, Topic: "Límites", Activities: "taller"}}

	if _, err := svc.Decide(course.ID, DecideInput{Approved: false, Critique: "v1", Reviewer: "Ana"}); err != nil {
		t.Fatalf("first decide: %v", err)
	}
	review, err := svc.Decide(course.ID, DecideInput{Approved: true, Critique: "v2", Sessions: sessions, Reviewer: "Ana"})
	if err != nil {
		t.Fatalf("second decide: %v", err)
	}
	if review.Status != model.ReviewApproved {
		t.Errorf("unexpected status %q", review.Status)
	}

	var count int64
	db.Model(&model.SyllabusReview{}).Where("course_id = ?", course.ID).Count(&count)
	if count != 1 {
		t.Errorf("review must stay one row per course, got %d", count)
	}

	stored, err := svc.Get(course.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Critique != "v2" || stored.Status != model.ReviewApproved {
		t.Errorf("latest decision must win: %+v", stored)
	}
	if len(stored.SessionList) != 1 {
		t.Errorf("session list should persist, got %d entries", len(stored.SessionList))
	}
}

func TestApprovedReviewGate(t *testing.T) {
	svc, db, storage := newReviewService(t, nil)
	course := seedCourse(t, db, storage, "texto")

	if _, err := svc.ApprovedReview(course.ID); !errors.Is(err, util.ErrRevisionNotFound) {
		t.Errorf("no review yet: got %v", err)
	}

	if _, err := svc.Decide(course.ID, DecideInput{Approved: false}); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if _, err := svc.ApprovedReview(course.ID); !errors.Is(err, util.ErrReviewNotApproved) {
		t.Errorf("rejected review: got %v", err)
	}

	if _, err := svc.Decide(course.ID, DecideInput{Approved: true}); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if _, err := svc.ApprovedReview(course.ID); err != nil {
		t.Errorf("approved review should pass the gate: %v", err)
	}
}
