package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gamereviews/internal/config"
	"gamereviews/internal/http-api/models"
	"gamereviews/internal/http-api/repository"
	"gamereviews/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// dummyHash keeps Login timing flat when the username does not exist.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e"

// Claims is the payload of an access token.
type Claims struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	IsSuperuser bool   `json:"is_superuser"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
	Login(ctx context.Context, username, password string) (token string, user *models.User, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, logger *slog.Logger) AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.JWTExpiry,
		now:       time.Now,
		logger:    logger,
	}
}

// Register creates a regular (non-superuser) account.
func (s *authService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, ErrNameInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user_registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		auth.VerifyPassword(dummyHash, password)
		return "", nil, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn("last_login_update_failed", "user_id", user.ID, "error", err)
	}
	return token, user, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:      user.ID,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
