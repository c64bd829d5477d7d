package service

import (
	"errors"
	"testing"

	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"
)

func newReviewerFixture(t *testing.T) (*ReviewerService, *model.Course) {
	t.Helper()
	db := newTestDB(t)
	storage := newTestStorage(t)
	svc := NewReviewerService(repository.NewCourseRepository(db), repository.NewReviewerRepository(db))
	course := seedCourse(t, db, storage, "texto")
	return svc, course
}

func validReviewer() ReviewerInput {
	return ReviewerInput{
		ReviewerName: "Ana Quispe",
		DNI:          "12345678",
		Email:        "ana@uni.edu.pe",
		Deadline:     "2026-10-01",
	}
}

func TestReviewerSaveValidation(t *testing.T) {
	svc, course := newReviewerFixture(t)

	cases := []struct {
		name   string
		mutate func(*ReviewerInput)
		want   error
	}{
		{"missing name", func(in *ReviewerInput) { in.ReviewerName = "" }, util.ErrCampoObligatorio},
		{"short dni", func(in *ReviewerInput) { in.DNI = "1234" }, util.ErrDNIInvalido},
		{"alpha dni", func(in *ReviewerInput) { in.DNI = "1234567a" }, util.ErrDNIInvalido},
		{"bad deadline", func(in *ReviewerInput) { in.Deadline = "01/10/2026" }, util.ErrFechaInvalida},
		{"bad status", func(in *ReviewerInput) { in.Status = "ARCHIVADO" }, util.ErrEstadoInvalido},
	}
	for _, c := range cases {
		in := validReviewer()
		c.mutate(&in)
		if _, err := svc.Save(course.ID, in); !errors.Is(err, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, err, c.want)
		}
	}
}

func TestReviewerSaveOptionalFields(t *testing.T) {
	svc, course := newReviewerFixture(t)

	assignment, err := svc.Save(course.ID, ReviewerInput{ReviewerName: "Ana Quispe"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if assignment.Status != model.AssignmentEnProceso {
		t.Errorf("status should default to en proceso, got %q", assignment.Status)
	}
	if assignment.DNI != "" || assignment.Deadline != "" {
		t.Error("empty optional fields should stay empty")
	}
}

func TestReviewerSaveUpsertsPerCourse(t *testing.T) {
	svc, course := newReviewerFixture(t)

	if _, err := svc.Save(course.ID, validReviewer()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	in := validReviewer()
	in.ReviewerName = "Luis Rojas"
	in.Status = model.AssignmentAprobadoConObs
	if _, err := svc.Save(course.ID, in); err != nil {
		t.Fatalf("second save: %v", err)
	}

	stored, err := svc.Get(course.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ReviewerName != "Luis Rojas" || stored.Status != model.AssignmentAprobadoConObs {
		t.Errorf("latest assignment must win: %+v", stored)
	}
}

func TestReviewerSaveUnknownCourse(t *testing.T) {
	svc, _ := newReviewerFixture(t)
	if _, err := svc.Save(999, validReviewer()); !errors.Is(err, util.ErrCursoNotFound) {
		t.Errorf("got %v, want ErrCursoNotFound", err)
	}
}

func TestReviewerGetUnassignedCourse(t *testing.T) {
	svc, course := newReviewerFixture(t)
	if _, err := svc.Get(course.ID); !errors.Is(err, util.ErrAsignacionNotFound) {
		t.Errorf("got %v, want ErrAsignacionNotFound", err)
	}
}
