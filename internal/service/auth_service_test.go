package service

import (
	"errors"
	"testing"
	"time"

	"silabo_backend/internal/config"
	"silabo_backend/internal/model"
	"silabo_backend/internal/repository"
	"silabo_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "clave-de-prueba"
	cfg.JWT.ExpireTime = 24 * time.Hour
	return NewAuthService(repository.NewUserRepository(newTestDB(t)), cfg)
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "Ana", Email: "ana@uni.edu.pe", Password: "secreto123"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.Docente {
		t.Errorf("role should default to docente, got %q", user.Role)
	}
	if user.Password == "secreto123" {
		t.Error("password must not be stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secreto123")); err != nil {
		t.Errorf("stored hash should verify: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	first := &model.User{Name: "Ana", Email: "ana@uni.edu.pe", Password: "secreto123"}
	if err := svc.Register(first); err != nil {
		t.Fatalf("register: %v", err)
	}

	second := &model.User{Name: "Otra Ana", Email: "ana@uni.edu.pe", Password: "otra"}
	if err := svc.Register(second); !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("got %v, want ErrEmailRegistered", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "Ana", Email: "ana@uni.edu.pe", Password: "secreto123", Role: model.Revisor}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login("ana@uni.edu.pe", "secreto123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Revisor {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "Ana", Email: "ana@uni.edu.pe", Password: "secreto123"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login("ana@uni.edu.pe", "equivocada"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", err)
	}
	if _, err := svc.Login("nadie@uni.edu.pe", "secreto123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v", err)
	}
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{Name: "Ana", Email: "ana@uni.edu.pe", Password: "secreto123"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	user.Disabled = true
	if err := svc.UserRepo.Update(user); err != nil {
		t.Fatalf("disable: %v", err)
	}

	if _, err := svc.Login("ana@uni.edu.pe", "secreto123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("disabled account: got %v", err)
	}
}
