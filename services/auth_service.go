package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/Dosada05/tournament-badges/repositories"
	"github.com/Dosada05/tournament-badges/utils"
	"github.com/golang-jwt/jwt/v4"
	"github.com/itbasis/go-clock"
)

const (
	minPasswordLength = 8
	tokenTTL          = 24 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	// Login проверяет пароль и выдает подписанный JWT.
	Login(ctx context.Context, input LoginInput) (*models.User, string, error)
}

type RegisterInput struct {
	Username    string  `json:"username"`
	DiscordName *string `json:"discord_name,omitempty"`
	Password    string  `json:"password"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	clock     clock.Clock
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, clk clock.Clock) AuthService {
	if clk == nil {
		clk = clock.New()
	}
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		clock:     clk,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	user := &models.User{
		Username:     username,
		DiscordName:  input.DiscordName,
		Role:         models.RolePlayer,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			return nil, ErrUsernameConflict
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrAuthInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user by username: %w", err)
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, "", ErrAuthInvalidCredentials
	}

	now := s.clock.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"name":    user.DisplayName(),
		"exp":     now.Add(tokenTTL).Unix(),
		"iat":     now.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}
