package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/Dosada05/tournament-badges/repositories"
	"github.com/Dosada05/tournament-badges/repositories/mockrepo"
	"github.com/Dosada05/tournament-badges/utils"
	"github.com/golang-jwt/jwt/v4"
	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthService_Login(t *testing.T) {
	users := &mockrepo.UserRepository{}
	clk := clock.NewMock()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clk.Set(now)

	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	users.On("GetByUsername", mock.Anything, "player").
		Return(&models.User{ID: 3, Username: "player", Role: models.RolePlayer, PasswordHash: hash}, nil)

	svc := NewAuthService(users, testSecret, clk)

	user, token, err := svc.Login(context.Background(), LoginInput{Username: "player", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	_, err = parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	assert.EqualValues(t, 3, claims["user_id"])
	assert.Equal(t, "player", claims["role"])
	assert.EqualValues(t, now.Unix(), claims["iat"])
	assert.EqualValues(t, now.Add(tokenTTL).Unix(), claims["exp"])
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	users := &mockrepo.UserRepository{}
	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	users.On("GetByUsername", mock.Anything, "player").Return(&models.User{ID: 3, PasswordHash: hash}, nil)
	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repositories.ErrUserNotFound)

	svc := NewAuthService(users, testSecret, clock.NewMock())

	_, _, err = svc.Login(context.Background(), LoginInput{Username: "player", Password: "wrong"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)

	_, _, err = svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrAuthInvalidCredentials)
}

func TestAuthService_Register(t *testing.T) {
	tests := map[string]struct {
		input   RegisterInput
		repoErr error
		wantErr error
	}{
		"ok":             {input: RegisterInput{Username: "newbie", Password: "long-enough"}},
		"empty username": {input: RegisterInput{Username: "  ", Password: "long-enough"}, wantErr: ErrUsernameRequired},
		"short password": {input: RegisterInput{Username: "newbie", Password: "short"}, wantErr: ErrPasswordTooShort},
		"username taken": {
			input:   RegisterInput{Username: "newbie", Password: "long-enough"},
			repoErr: repositories.ErrUserUsernameConflict,
			wantErr: ErrUsernameConflict,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			users := &mockrepo.UserRepository{}
			if tc.wantErr == nil || tc.repoErr != nil {
				users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.Username == "newbie" && u.Role == models.RolePlayer && u.PasswordHash != "long-enough"
				})).Return(tc.repoErr)
			}

			svc := NewAuthService(users, testSecret, nil)
			user, err := svc.Register(context.Background(), tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, user.PasswordHash)
			users.AssertExpectations(t)
		})
	}
}
