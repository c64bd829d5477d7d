package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"
)

func newActivityFixture(t *testing.T, ai *AIService) (*ActivityService, *model.Course) {
	t.Helper()
	db := newTestDB(t)
	storage := newTestStorage(t)
	reviewSvc := NewReviewService(
		repository.NewCourseRepository(db),
		repository.NewReviewRepository(db),
		storage, ai,
	)
	svc := NewActivityService(reviewSvc, repository.NewActivityRepository(db), ai)

	course := seedCourse(t, db, storage, "texto del sílabo")
	sessions := []model.SyllabusSession{
		{Number: 1, Topic: "Límites", Activities: "taller grupal de ejercicios"},
		{Number: 2, Topic: "Derivadas"},
	}
	if _, err := reviewSvc.Decide(course.ID, DecideInput{Approved: true, Sessions: sessions}); err != nil {
		t.Fatalf("decide: %v", err)
	}
	return svc, course
}

func TestActivityGenerateSavesProposal(t *testing.T) {
	ai := newFakeAI(t, chatReply("## Propuesta\n- Actividad 1 (20 min)"))
	svc, course := newActivityFixture(t, ai)

	activity, err := svc.Generate(context.Background(), course.ID, 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if activity.SourceActivity != "taller grupal de ejercicios" {
		t.Errorf("source activity should come from the syllabus, got %q", activity.SourceActivity)
	}
	if activity.Status != model.StatusCompleted {
		t.Errorf("unexpected status %q", activity.Status)
	}

	stored, err := svc.Get(course.ID, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Proposal != activity.Proposal {
		t.Error("proposal should persist verbatim")
	}
}

func TestActivityGenerateSessionWithoutActivities(t *testing.T) {
	svc, course := newActivityFixture(t, newFakeAI(t, chatReply("no debería llegar")))

	_, err := svc.Generate(context.Background(), course.ID, 2)
	if !errors.Is(err, util.ErrNoActivities) {
		t.Errorf("got %v, want ErrNoActivities", err)
	}
}

func TestActivityGenerateUnknownSession(t *testing.T) {
	svc, course := newActivityFixture(t, newFakeAI(t, chatReply("x")))

	_, err := svc.Generate(context.Background(), course.ID, 9)
	if !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("got %v, want ErrSessionNotFound", err)
	}
}

func TestActivityRenderHTML(t *testing.T) {
	ai := newFakeAI(t, chatReply("## Propuesta\n\n- Debate dirigido\n- Mapa conceptual"))
	svc, course := newActivityFixture(t, ai)

	if _, err := svc.Generate(context.Background(), course.ID, 1); err != nil {
		t.Fatalf("generate: %v", err)
	}

	html, err := svc.RenderHTML(course.ID, 1)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<h2>Propuesta</h2>") {
		t.Errorf("heading should render, got %q", html)
	}
	if strings.Count(html, "<li>") != 2 {
		t.Errorf("expected 2 list items, got %q", html)
	}
}

func TestActivityRenderHTMLMissingProposal(t *testing.T) {
	svc, course := newActivityFixture(t, nil)
	if _, err := svc.RenderHTML(course.ID, 1); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("got %v, want ErrSessionNotFound", err)
	}
}
