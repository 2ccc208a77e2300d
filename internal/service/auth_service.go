package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cleanlog-backend/internal/models"
	"cleanlog-backend/internal/repository"
)

// AuthService owns the single admin record: credentials, login tokens and
// the editable site metadata (display name, blog title, about text).
type AuthService struct {
	adminRepo repository.AdminRepository
	jwtSecret string
}

func NewAuthService(adminRepo repository.AdminRepository, jwtSecret string) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		jwtSecret: jwtSecret,
	}
}

func (s *AuthService) Login(req models.LoginRequest) (string, *models.Admin, error) {
	admin, err := s.adminRepo.GetByUsername(req.Username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !verifyPassword(admin.PasswordHash, req.Password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return "", nil, err
	}

	return token, admin, nil
}

func (s *AuthService) generateToken(admin *models.Admin) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
}

func (s *AuthService) GetProfile() (*models.Admin, error) {
	admin, err := s.adminRepo.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load admin record: %w", err)
	}
	return admin, nil
}

func (s *AuthService) UpdateSettings(req models.UpdateSettingsRequest) (*models.Admin, error) {
	admin, err := s.adminRepo.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load admin record: %w", err)
	}

	admin.Name = req.Name
	admin.BlogTitle = req.BlogTitle
	admin.About = req.About

	if err := s.adminRepo.Update(admin); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	return admin, nil
}

func (s *AuthService) ChangePassword(req models.ChangePasswordRequest) error {
	admin, err := s.adminRepo.Get()
	if err != nil {
		return fmt.Errorf("failed to load admin record: %w", err)
	}

	if !verifyPassword(admin.PasswordHash, req.OldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	admin.PasswordHash = hash
	return s.adminRepo.Update(admin)
}

// EnsureAdmin creates the site-owner record if it does not exist yet.
// It reports whether a record was created.
func (s *AuthService) EnsureAdmin(username, password, name, blogTitle, about string) (*models.Admin, bool, error) {
	admin, err := s.adminRepo.Get()
	if err == nil {
		return admin, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to verify admin record: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, false, err
	}

	admin = &models.Admin{
		ID:           models.AdminRecordID,
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		BlogTitle:    blogTitle,
		About:        about,
	}

	if err := s.adminRepo.Create(admin); err != nil {
		return nil, false, fmt.Errorf("failed to create admin record: %w", err)
	}

	return admin, true, nil
}

// ResetCredentials overwrites the admin username and password without
// asking for the old password. Used by the management CLI.
func (s *AuthService) ResetCredentials(username, password string) (*models.Admin, error) {
	admin, err := s.adminRepo.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load admin record: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	admin.Username = username
	admin.PasswordHash = hash

	if err := s.adminRepo.Update(admin); err != nil {
		return nil, err
	}

	return admin, nil
}

func hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func verifyPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
