package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/Dosada05/tournament-badges/repositories"
)

const userSearchLimit = 20

type UserService interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	// SearchUsers возвращает варианты для виджета выбора пользователя.
	SearchUsers(ctx context.Context, query string) ([]models.UserOption, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) SearchUsers(ctx context.Context, query string) ([]models.UserOption, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.UserOption{}, nil
	}

	users, err := s.userRepo.Search(ctx, query, userSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	options := make([]models.UserOption, 0, len(users))
	for i := range users {
		options = append(options, models.UserOption{
			Label: users[i].DisplayName(),
			Value: strconv.Itoa(users[i].ID),
		})
	}
	return options, nil
}
