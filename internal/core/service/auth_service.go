package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

// AuthService implements the two-step registration flow and login.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates the account shell: credentials only, balance zero,
// registration pending until the profile step is submitted.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(username) > 28 {
		return nil, domain.ErrValidation
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:           username,
		Email:              email,
		PasswordHash:       string(hash),
		Balance:            0,
		RegistrationStatus: domain.RegistrationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	return s.repo.Create(ctx, user)
}

// CompleteProfile fills in the personal-data step and marks the registration
// complete. Calling it again simply updates the profile.
func (s *AuthService) CompleteProfile(ctx context.Context, userID string, in ports.ProfileInput) (*domain.User, error) {
	if in.FirstName == "" || in.LastName == "" || in.Document == "" {
		return nil, domain.ErrValidation
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Phone = in.Phone
	user.Document = in.Document
	user.BirthDate = in.BirthDate
	user.RegistrationStatus = domain.RegistrationComplete
	user.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":             user.ID,
		"username":            user.Username,
		"is_admin":            user.IsAdmin,
		"registration_status": user.RegistrationStatus,
		"exp":                 time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
