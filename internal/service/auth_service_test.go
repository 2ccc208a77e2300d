package service

import (
	"errors"
	"testing"

	"cleanlog-backend/internal/models"
)

func newAuthFixture(t *testing.T) (*AuthService, *memoryAdminRepository) {
	t.Helper()

	repo := &memoryAdminRepository{}
	service := NewAuthService(repo, "test-secret")

	_, created, err := service.EnsureAdmin("admin", "helloflask", "Syntomic", "Cleanlog", "")
	if err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if !created {
		t.Fatal("expected admin account to be created")
	}

	return service, repo
}

func TestAuthService_Login(t *testing.T) {
	service, _ := newAuthFixture(t)

	token, admin, err := service.Login(models.LoginRequest{Username: "admin", Password: "helloflask"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token on successful login")
	}
	if admin.Username != "admin" {
		t.Fatalf("expected admin profile, got %q", admin.Username)
	}

	if _, err := service.ValidateToken(token); err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	service, _ := newAuthFixture(t)

	if _, _, err := service.Login(models.LoginRequest{Username: "admin", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := service.Login(models.LoginRequest{Username: "nobody", Password: "helloflask"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	service, _ := newAuthFixture(t)

	if _, err := service.ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected validation error for malformed token")
	}
}

func TestAuthService_EnsureAdminIsIdempotent(t *testing.T) {
	service, _ := newAuthFixture(t)

	admin, created, err := service.EnsureAdmin("someone", "elsewhere", "Other", "Other Blog", "")
	if err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if created {
		t.Fatal("expected existing account to be kept")
	}
	if admin.Username != "admin" {
		t.Fatalf("expected original username preserved, got %q", admin.Username)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	service, _ := newAuthFixture(t)

	err := service.ChangePassword(models.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "newpassword"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong old password, got %v", err)
	}

	err = service.ChangePassword(models.ChangePasswordRequest{OldPassword: "helloflask", NewPassword: "newpassword"})
	if err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	if _, _, err := service.Login(models.LoginRequest{Username: "admin", Password: "newpassword"}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, err := service.Login(models.LoginRequest{Username: "admin", Password: "helloflask"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
}

func TestAuthService_ResetCredentials(t *testing.T) {
	service, _ := newAuthFixture(t)

	admin, err := service.ResetCredentials("owner", "freshpassword")
	if err != nil {
		t.Fatalf("ResetCredentials returned error: %v", err)
	}
	if admin.Username != "owner" {
		t.Fatalf("expected username overwritten, got %q", admin.Username)
	}

	if _, _, err := service.Login(models.LoginRequest{Username: "owner", Password: "freshpassword"}); err != nil {
		t.Fatalf("login with reset credentials failed: %v", err)
	}
}

func TestAuthService_UpdateSettings(t *testing.T) {
	service, _ := newAuthFixture(t)

	admin, err := service.UpdateSettings(models.UpdateSettingsRequest{
		Name:      "New Name",
		BlogTitle: "New Title",
		About:     "about text",
	})
	if err != nil {
		t.Fatalf("UpdateSettings returned error: %v", err)
	}
	if admin.Name != "New Name" || admin.BlogTitle != "New Title" || admin.About != "about text" {
		t.Fatalf("settings not applied: %+v", admin)
	}

	profile, err := service.GetProfile()
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if profile.BlogTitle != "New Title" {
		t.Fatalf("expected persisted title, got %q", profile.BlogTitle)
	}
}
