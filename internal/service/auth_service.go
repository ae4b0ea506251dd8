package service

import (
	"errors"
	"time"

	"go-inventory-pos/internal/metrics"
	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/token"
	"go-inventory-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

// TokenPair carries the two freshly minted cookie values.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(req *RegisterRequest) (*model.User, error)
	Login(email, password string) (*model.User, *TokenPair, error)
	Logout(refreshToken string) error
	// Refresh validates the signed token and its stored row, then mints a
	// new access token. The refresh token itself is not rotated.
	Refresh(refreshToken string) (string, error)
	Me(userID uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	audit     AuditLogger
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, audit AuditLogger) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		audit:     audit,
	}
}

func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if err := validator.Struct(req); err != nil {
		return nil, errors.New("email and a password of at least 6 characters are required")
	}

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  model.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.audit.LogAction(user.ID, "REGISTER", "USER", user.ID.String(), map[string]interface{}{
		"email": user.Email,
		"name":  user.Name,
	})
	return user, nil
}

func (s *authService) Login(email, password string) (*model.User, *TokenPair, error) {
	metrics.AuthAttemptsTotal.Inc()

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		metrics.AuthFailuresTotal.Inc()
		return nil, nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		metrics.AuthFailuresTotal.Inc()
		return nil, nil, ErrInvalidCredentials
	}

	accessToken, err := token.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := token.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, nil, err
	}

	// Persist the refresh token so logout can revoke it server-side.
	stored := &model.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(token.RefreshTokenTTL),
	}
	if err := s.tokenRepo.Create(stored); err != nil {
		return nil, nil, err
	}

	s.audit.LogAction(user.ID, "LOGIN", "USER", user.ID.String(), nil)

	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokenRepo.DeleteByToken(refreshToken)
}

func (s *authService) Refresh(refreshToken string) (string, error) {
	claims, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefresh
	}

	stored, err := s.tokenRepo.FindByToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefresh
	}
	if stored.Expired(time.Now()) {
		return "", ErrInvalidRefresh
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return "", ErrUserNotFound
	}

	return token.GenerateAccessToken(user.ID, user.Role)
}

func (s *authService) Me(userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
