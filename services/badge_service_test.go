package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/Dosada05/tournament-badges/repositories"
	"github.com/Dosada05/tournament-badges/repositories/mockrepo"
	"github.com/Dosada05/tournament-badges/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	adminUser   = &models.User{ID: 1, Username: "admin", Role: models.RoleAdmin}
	managerUser = &models.User{ID: 2, Username: "manager", Role: models.RolePlayer}
	playerUser  = &models.User{ID: 3, Username: "player", Role: models.RolePlayer}
)

type badgeFixture struct {
	badges    *mockrepo.BadgeRepository
	users     *mockrepo.UserRepository
	publisher *recordingPublisher
	uploader  *fakeUploader
	svc       BadgeService
}

func newBadgeFixture(t *testing.T) *badgeFixture {
	t.Helper()
	f := &badgeFixture{
		badges:    &mockrepo.BadgeRepository{},
		users:     &mockrepo.UserRepository{},
		publisher: &recordingPublisher{},
		uploader:  newFakeUploader(),
	}
	f.svc = NewBadgeService(f.badges, f.users, f.uploader, f.publisher, discardLogger)
	t.Cleanup(func() {
		f.badges.AssertExpectations(t)
		f.users.AssertExpectations(t)
	})
	return f
}

func (f *badgeFixture) expectBadgeDetail(badgeID int, managers []models.BadgeManager, owners []models.BadgeOwner) {
	f.badges.On("GetByID", mock.Anything, badgeID).Return(&models.Badge{ID: badgeID, Code: "mvp"}, nil)
	f.badges.On("ListManagers", mock.Anything, badgeID).Return(managers, nil)
	f.badges.On("ListOwners", mock.Anything, badgeID).Return(owners, nil)
}

func TestBadgeService_GetBadge(t *testing.T) {
	f := newBadgeFixture(t)
	key := "badges/7/1.png"
	f.badges.On("GetByID", mock.Anything, 7).Return(&models.Badge{ID: 7, Code: "mvp", ImageKey: &key}, nil)
	f.badges.On("ListManagers", mock.Anything, 7).Return([]models.BadgeManager{{BadgeID: 7, UserID: 2, Username: "manager"}}, nil)
	f.badges.On("ListOwners", mock.Anything, 7).Return([]models.BadgeOwner{{BadgeID: 7, UserID: 3, Count: 2, Username: "player"}}, nil)

	badge, err := f.svc.GetBadge(context.Background(), 7)
	require.NoError(t, err)

	assert.Len(t, badge.Managers, 1)
	assert.Len(t, badge.Owners, 1)
	require.NotNil(t, badge.ImageURL)
	assert.Equal(t, "https://cdn.example.test/badges/7/1.png", *badge.ImageURL)
}

func TestBadgeService_GetBadge_NotFound(t *testing.T) {
	f := newBadgeFixture(t)
	f.badges.On("GetByID", mock.Anything, 7).Return(nil, repositories.ErrBadgeNotFound)

	_, err := f.svc.GetBadge(context.Background(), 7)
	assert.ErrorIs(t, err, ErrBadgeNotFound)
}

func TestBadgeService_GetBadge_RosterLoadFails(t *testing.T) {
	f := newBadgeFixture(t)
	f.badges.On("GetByID", mock.Anything, 7).Return(&models.Badge{ID: 7}, nil)
	f.badges.On("ListManagers", mock.Anything, 7).Return(nil, errors.New("connection reset"))
	f.badges.On("ListOwners", mock.Anything, 7).Return([]models.BadgeOwner{}, nil).Maybe()

	_, err := f.svc.GetBadge(context.Background(), 7)
	assert.ErrorContains(t, err, "connection reset")
}

func TestBadgeService_EditManagers(t *testing.T) {
	f := newBadgeFixture(t)
	f.users.On("GetByID", mock.Anything, adminUser.ID).Return(adminUser, nil)
	f.badges.On("ReplaceManagers", mock.Anything, 7, []int{2, 3}).Return(nil)
	f.expectBadgeDetail(7, []models.BadgeManager{{UserID: 2}, {UserID: 3}}, nil)

	badge, err := f.svc.EditManagers(context.Background(), adminUser.ID, 7, []int{2, 3})
	require.NoError(t, err)
	assert.Len(t, badge.Managers, 2)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, EventBadgeUpdated, f.publisher.events[0].Type)
	assert.Equal(t, "badge_7", f.publisher.rooms[0])
}

func TestBadgeService_EditManagers_Rejected(t *testing.T) {
	tests := map[string]struct {
		actor   *models.User
		ids     []int
		repoErr error
		wantErr error
	}{
		"duplicate ids never reach the repository": {
			actor:   adminUser,
			ids:     []int{2, 2},
			wantErr: ErrDuplicateIDs,
		},
		"non admin cannot edit managers": {
			actor:   managerUser,
			ids:     []int{2},
			wantErr: ErrForbiddenOperation,
		},
		"non admin sees forbidden before validation": {
			actor:   managerUser,
			ids:     []int{2, 2},
			wantErr: ErrForbiddenOperation,
		},
		"unknown user": {
			actor:   adminUser,
			ids:     []int{99},
			repoErr: repositories.ErrBadgeUserInvalid,
			wantErr: ErrUnknownUser,
		},
		"missing badge": {
			actor:   adminUser,
			ids:     []int{2},
			repoErr: repositories.ErrBadgeNotFound,
			wantErr: ErrBadgeNotFound,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newBadgeFixture(t)
			f.users.On("GetByID", mock.Anything, tc.actor.ID).Return(tc.actor, nil)
			if tc.repoErr != nil {
				f.badges.On("ReplaceManagers", mock.Anything, 7, tc.ids).Return(tc.repoErr)
			}

			_, err := f.svc.EditManagers(context.Background(), tc.actor.ID, 7, tc.ids)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, f.publisher.events)
			if tc.repoErr == nil {
				f.badges.AssertNotCalled(t, "ReplaceManagers", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestBadgeService_EditOwners(t *testing.T) {
	f := newBadgeFixture(t)
	managers := []models.BadgeManager{{BadgeID: 7, UserID: managerUser.ID}}

	f.users.On("GetByID", mock.Anything, managerUser.ID).Return(managerUser, nil)
	f.badges.On("GetByID", mock.Anything, 7).Return(&models.Badge{ID: 7}, nil)
	f.badges.On("ListManagers", mock.Anything, 7).Return(managers, nil)
	f.badges.On("ListOwners", mock.Anything, 7).Return([]models.BadgeOwner{{UserID: 3, Count: 3}, {UserID: 4, Count: 2}}, nil)
	f.badges.On("ReplaceOwners", mock.Anything, 7, []models.BadgeOwner{
		{BadgeID: 7, UserID: 3, Count: 3},
		{BadgeID: 7, UserID: 4, Count: 2},
	}).Return(nil)

	badge, err := f.svc.EditOwners(context.Background(), managerUser.ID, 7, []int{3, 3, 3, 4, 4})
	require.NoError(t, err)
	assert.Len(t, badge.Owners, 2)
	require.Len(t, f.publisher.events, 1)
}

func TestBadgeService_EditOwners_Rejected(t *testing.T) {
	tooMany := roster.EncodeOwners([]roster.OwnerCount{{ID: 3, Count: roster.MaxOwnerCount + 1}})

	t.Run("count above limit", func(t *testing.T) {
		f := newBadgeFixture(t)
		f.users.On("GetByID", mock.Anything, adminUser.ID).Return(adminUser, nil)
		f.badges.On("GetByID", mock.Anything, 7).Return(&models.Badge{ID: 7}, nil)
		f.badges.On("ListManagers", mock.Anything, 7).Return([]models.BadgeManager{}, nil)

		_, err := f.svc.EditOwners(context.Background(), adminUser.ID, 7, tooMany)
		assert.ErrorIs(t, err, ErrOwnerCountOutOfRange)
		f.badges.AssertNotCalled(t, "ReplaceOwners", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("outsider with bad counts is forbidden", func(t *testing.T) {
		f := newBadgeFixture(t)
		f.users.On("GetByID", mock.Anything, playerUser.ID).Return(playerUser, nil)
		f.badges.On("GetByID", mock.Anything, 7).Return(&models.Badge{ID: 7}, nil)
		f.badges.On("ListManagers", mock.Anything, 7).Return([]models.BadgeManager{{UserID: managerUser.ID}}, nil)

		_, err := f.svc.EditOwners(context.Background(), playerUser.ID, 7, tooMany)
		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})

	t.Run("not a manager", func(t *testing.T) {
		f := newBadgeFixture(t)
		f.users.On("GetByID", mock.Anything, playerUser.ID).Return(playerUser, nil)
		f.badges.On("GetByID", mock.Anything, 7).Return(&models.Badge{ID: 7}, nil)
		f.badges.On("ListManagers", mock.Anything, 7).Return([]models.BadgeManager{{UserID: managerUser.ID}}, nil)

		_, err := f.svc.EditOwners(context.Background(), playerUser.ID, 7, []int{3})
		assert.ErrorIs(t, err, ErrForbiddenOperation)
		f.badges.AssertNotCalled(t, "ReplaceOwners", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown actor", func(t *testing.T) {
		f := newBadgeFixture(t)
		f.users.On("GetByID", mock.Anything, 42).Return(nil, repositories.ErrUserNotFound)

		_, err := f.svc.EditOwners(context.Background(), 42, 7, []int{3})
		assert.ErrorIs(t, err, ErrAuthenticationFailed)
	})
}

func TestBadgeService_PreviewChanges(t *testing.T) {
	f := newBadgeFixture(t)
	f.expectBadgeDetail(7,
		[]models.BadgeManager{{UserID: 1, Username: "a"}, {UserID: 2, Username: "b"}},
		[]models.BadgeOwner{{UserID: 1, Username: "a", Count: 3}},
	)

	draft := roster.Draft{
		Managers: []roster.Assignee{{ID: 2}, {ID: 3}},
		Owners:   []roster.OwnerCount{{ID: 1, Count: 3}, {ID: 2, Count: 2}},
	}
	summary, err := f.svc.PreviewChanges(context.Background(), 7, draft)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ManagerChanges)
	assert.Equal(t, "Submit 2 changes", summary.ManagerLabel)
	assert.Equal(t, 1, summary.OwnerChanges)
	assert.Equal(t, "Submit 1 change", summary.OwnerLabel)
}

func TestBadgeService_UploadImage(t *testing.T) {
	f := newBadgeFixture(t)
	oldKey := "badges/7/old.png"

	f.users.On("GetByID", mock.Anything, adminUser.ID).Return(adminUser, nil)
	f.badges.On("GetByID", mock.Anything, 7).Return(&models.Badge{ID: 7, ImageKey: &oldKey}, nil)
	f.badges.On("UpdateImageKey", mock.Anything, 7, mock.MatchedBy(func(k *string) bool {
		return k != nil && strings.HasPrefix(*k, "badges/7/") && strings.HasSuffix(*k, ".png")
	})).Return(nil)
	f.badges.On("ListManagers", mock.Anything, 7).Return([]models.BadgeManager{}, nil)
	f.badges.On("ListOwners", mock.Anything, 7).Return([]models.BadgeOwner{}, nil)

	_, err := f.svc.UploadImage(context.Background(), adminUser.ID, 7, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.Len(t, f.uploader.uploaded, 1)
	assert.Equal(t, []string{oldKey}, f.uploader.deleted)
}

func TestBadgeService_UploadImage_Rejected(t *testing.T) {
	t.Run("storage disabled", func(t *testing.T) {
		svc := NewBadgeService(&mockrepo.BadgeRepository{}, &mockrepo.UserRepository{}, nil, nil, discardLogger)
		_, err := svc.UploadImage(context.Background(), 1, 7, "image/png", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrStorageDisabled)
	})

	t.Run("unsupported type", func(t *testing.T) {
		f := newBadgeFixture(t)
		_, err := f.svc.UploadImage(context.Background(), adminUser.ID, 7, "application/pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrUnsupportedFileType)
	})
}
