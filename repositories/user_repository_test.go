package repositories

import (
	"context"
	"testing"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/Dosada05/tournament-badges/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPostgresUserRepository(db)
	ctx := context.Background()

	discord := "Sendai#0001"
	user := &models.User{Username: "sendai", DiscordName: &discord, PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, models.RolePlayer, user.Role)

	assert.ErrorIs(t, repo.Create(ctx, &models.User{Username: "sendai"}), ErrUserUsernameConflict)

	other := testutil.CreateTestUser(t, db, "kanto", models.RoleAdmin)

	got, err := repo.GetByUsername(ctx, "sendai")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	require.NotNil(t, got.DiscordName)
	assert.Equal(t, discord, *got.DiscordName)

	_, err = repo.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	listed, err := repo.ListByIDs(ctx, []int{other.ID, 9999, user.ID})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, user.ID, listed[0].ID)

	found, err := repo.Search(ctx, "send", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "sendai", found[0].Username)
}
