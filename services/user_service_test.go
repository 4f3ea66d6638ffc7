package services

import (
	"context"
	"testing"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/Dosada05/tournament-badges/repositories"
	"github.com/Dosada05/tournament-badges/repositories/mockrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_SearchUsers(t *testing.T) {
	users := &mockrepo.UserRepository{}
	discord := "dsc#1"
	users.On("Search", mock.Anything, "pl", userSearchLimit).Return([]models.User{
		{ID: 3, Username: "player"},
		{ID: 8, DiscordName: &discord},
	}, nil)

	svc := NewUserService(users)
	options, err := svc.SearchUsers(context.Background(), "  pl ")
	require.NoError(t, err)

	assert.Equal(t, []models.UserOption{
		{Label: "player", Value: "3"},
		{Label: "dsc#1", Value: "8"},
	}, options)
}

func TestUserService_SearchUsers_EmptyQuery(t *testing.T) {
	users := &mockrepo.UserRepository{}
	svc := NewUserService(users)

	options, err := svc.SearchUsers(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, options)
	users.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_GetUser(t *testing.T) {
	users := &mockrepo.UserRepository{}
	users.On("GetByID", mock.Anything, 3).Return(&models.User{ID: 3, PasswordHash: "secret"}, nil)
	users.On("GetByID", mock.Anything, 4).Return(nil, repositories.ErrUserNotFound)

	svc := NewUserService(users)

	user, err := svc.GetUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.GetUser(context.Background(), 4)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
