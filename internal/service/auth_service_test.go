package service

import (
	"career_compass_backend/internal/config"
	"career_compass_backend/internal/repository"
	"career_compass_backend/internal/util"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.JWT.RefreshExpireTime = 24 * time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New User",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("tokens missing: %+v", resp)
	}
	if resp.User.Password == "password123" {
		t.Fatalf("password stored in plain text")
	}

	login, err := svc.Login(&LoginRequest{
		Email:    "new@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Fatalf("login returned wrong user")
	}

	claims, err := util.ParseJWT(login.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.TokenType != util.TokenTypeAccess || claims.UserID != resp.User.ID {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	req := &RegisterRequest{
		Email:    "dup@example.com",
		Password: "password123",
		FullName: "User",
	}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register(req)
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	if _, err := svc.Register(&RegisterRequest{
		Email:    "a@example.com",
		Password: "password123",
		FullName: "User",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(&LoginRequest{Email: "a@example.com", Password: "wrongpass"})
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "password123"})
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "a@example.com",
		Password: "password123",
		FullName: "User",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := db.Model(resp.User).Update("is_active", false).Error; err != nil {
		t.Fatalf("disable user: %v", err)
	}

	_, err = svc.Login(&LoginRequest{Email: "a@example.com", Password: "password123"})
	if !errors.Is(err, util.ErrAccountDisabled) {
		t.Fatalf("err = %v, want ErrAccountDisabled", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "a@example.com",
		Password: "password123",
		FullName: "User",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.Refresh(&RefreshRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	claims, err := util.ParseJWT(refreshed.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.TokenType != util.TokenTypeAccess {
		t.Fatalf("token type = %q, want access", claims.TokenType)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	resp, err := svc.Register(&RegisterRequest{
		Email:    "a@example.com",
		Password: "password123",
		FullName: "User",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// access token不能当refresh token用
	_, err = svc.Refresh(&RefreshRequest{RefreshToken: resp.AccessToken})
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
