package mockrepo

import (
	"context"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)

	var res *models.User
	if args.Get(0) != nil {
		res = args.Get(0).(*models.User)
	}
	return res, args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)

	var res *models.User
	if args.Get(0) != nil {
		res = args.Get(0).(*models.User)
	}
	return res, args.Error(1)
}

func (m *UserRepository) ListByIDs(ctx context.Context, ids []int) ([]models.User, error) {
	args := m.Called(ctx, ids)

	var res []models.User
	if args.Get(0) != nil {
		res = args.Get(0).([]models.User)
	}
	return res, args.Error(1)
}

func (m *UserRepository) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	args := m.Called(ctx, query, limit)

	var res []models.User
	if args.Get(0) != nil {
		res = args.Get(0).([]models.User)
	}
	return res, args.Error(1)
}

type BadgeRepository struct {
	mock.Mock
}

func (m *BadgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	args := m.Called(ctx, badge)
	return args.Error(0)
}

func (m *BadgeRepository) GetByID(ctx context.Context, id int) (*models.Badge, error) {
	args := m.Called(ctx, id)

	var res *models.Badge
	if args.Get(0) != nil {
		// копия, чтобы сервис не менял объект из настроек мока
		b := *args.Get(0).(*models.Badge)
		res = &b
	}
	return res, args.Error(1)
}

func (m *BadgeRepository) List(ctx context.Context) ([]models.Badge, error) {
	args := m.Called(ctx)

	var res []models.Badge
	if args.Get(0) != nil {
		res = args.Get(0).([]models.Badge)
	}
	return res, args.Error(1)
}

func (m *BadgeRepository) ListManagedBy(ctx context.Context, userID int) ([]models.Badge, error) {
	args := m.Called(ctx, userID)

	var res []models.Badge
	if args.Get(0) != nil {
		res = args.Get(0).([]models.Badge)
	}
	return res, args.Error(1)
}

func (m *BadgeRepository) UpdateImageKey(ctx context.Context, id int, imageKey *string) error {
	args := m.Called(ctx, id, imageKey)
	return args.Error(0)
}

func (m *BadgeRepository) ListManagers(ctx context.Context, badgeID int) ([]models.BadgeManager, error) {
	args := m.Called(ctx, badgeID)

	var res []models.BadgeManager
	if args.Get(0) != nil {
		res = args.Get(0).([]models.BadgeManager)
	}
	return res, args.Error(1)
}

func (m *BadgeRepository) ListOwners(ctx context.Context, badgeID int) ([]models.BadgeOwner, error) {
	args := m.Called(ctx, badgeID)

	var res []models.BadgeOwner
	if args.Get(0) != nil {
		res = args.Get(0).([]models.BadgeOwner)
	}
	return res, args.Error(1)
}

func (m *BadgeRepository) ReplaceManagers(ctx context.Context, badgeID int, userIDs []int) error {
	args := m.Called(ctx, badgeID, userIDs)
	return args.Error(0)
}

func (m *BadgeRepository) ReplaceOwners(ctx context.Context, badgeID int, owners []models.BadgeOwner) error {
	args := m.Called(ctx, badgeID, owners)
	return args.Error(0)
}

type TournamentRepository struct {
	mock.Mock
}

func (m *TournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	args := m.Called(ctx, tournament)
	return args.Error(0)
}

func (m *TournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	args := m.Called(ctx, id)

	var res *models.Tournament
	if args.Get(0) != nil {
		res = args.Get(0).(*models.Tournament)
	}
	return res, args.Error(1)
}

func (m *TournamentRepository) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type TeamRepository struct {
	mock.Mock
}

func (m *TeamRepository) CreateWithOwner(ctx context.Context, team *models.Team, ownerID int) error {
	args := m.Called(ctx, team, ownerID)
	return args.Error(0)
}

func (m *TeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	args := m.Called(ctx, id)
	return copyTeam(args.Get(0)), args.Error(1)
}

func (m *TeamRepository) GetByInviteCode(ctx context.Context, code string) (*models.Team, error) {
	args := m.Called(ctx, code)
	return copyTeam(args.Get(0)), args.Error(1)
}

func (m *TeamRepository) GetByTournamentMember(ctx context.Context, tournamentID, userID int) (*models.Team, error) {
	args := m.Called(ctx, tournamentID, userID)
	return copyTeam(args.Get(0)), args.Error(1)
}

func (m *TeamRepository) ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	args := m.Called(ctx, teamID)

	var res []models.TeamMember
	if args.Get(0) != nil {
		res = args.Get(0).([]models.TeamMember)
	}
	return res, args.Error(1)
}

func (m *TeamRepository) AddMember(ctx context.Context, teamID, userID, maxMembers int) error {
	args := m.Called(ctx, teamID, userID, maxMembers)
	return args.Error(0)
}

func (m *TeamRepository) RemoveMember(ctx context.Context, teamID, userID int) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *TeamRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func copyTeam(v interface{}) *models.Team {
	if v == nil {
		return nil
	}
	t := *v.(*models.Team)
	return &t
}
