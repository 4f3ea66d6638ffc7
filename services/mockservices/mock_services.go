package mockservices

import (
	"context"
	"io"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/Dosada05/tournament-badges/roster"
	"github.com/Dosada05/tournament-badges/services"
	"github.com/stretchr/testify/mock"
)

type BadgeService struct {
	mock.Mock
}

func (m *BadgeService) ListBadges(ctx context.Context) ([]models.Badge, error) {
	args := m.Called(ctx)

	var res []models.Badge
	if args.Get(0) != nil {
		res = args.Get(0).([]models.Badge)
	}
	return res, args.Error(1)
}

func (m *BadgeService) ListManagedBadges(ctx context.Context, userID int) ([]models.Badge, error) {
	args := m.Called(ctx, userID)

	var res []models.Badge
	if args.Get(0) != nil {
		res = args.Get(0).([]models.Badge)
	}
	return res, args.Error(1)
}

func (m *BadgeService) GetBadge(ctx context.Context, badgeID int) (*models.Badge, error) {
	args := m.Called(ctx, badgeID)
	return badgeResult(args)
}

func (m *BadgeService) PreviewChanges(ctx context.Context, badgeID int, draft roster.Draft) (*roster.Summary, error) {
	args := m.Called(ctx, badgeID, draft)

	var res *roster.Summary
	if args.Get(0) != nil {
		res = args.Get(0).(*roster.Summary)
	}
	return res, args.Error(1)
}

func (m *BadgeService) EditManagers(ctx context.Context, actorID, badgeID int, managerIDs []int) (*models.Badge, error) {
	args := m.Called(ctx, actorID, badgeID, managerIDs)
	return badgeResult(args)
}

func (m *BadgeService) EditOwners(ctx context.Context, actorID, badgeID int, ownerIDs []int) (*models.Badge, error) {
	args := m.Called(ctx, actorID, badgeID, ownerIDs)
	return badgeResult(args)
}

func (m *BadgeService) UploadImage(ctx context.Context, actorID, badgeID int, contentType string, reader io.Reader) (*models.Badge, error) {
	args := m.Called(ctx, actorID, badgeID, contentType, reader)
	return badgeResult(args)
}

func badgeResult(args mock.Arguments) (*models.Badge, error) {
	var res *models.Badge
	if args.Get(0) != nil {
		res = args.Get(0).(*models.Badge)
	}
	return res, args.Error(1)
}

type TeamService struct {
	mock.Mock
}

func (m *TeamService) CreateTeam(ctx context.Context, input services.CreateTeamInput) (*models.Team, error) {
	args := m.Called(ctx, input)
	return teamResult(args)
}

func (m *TeamService) GetRegistration(ctx context.Context, tournamentID, userID int) (*models.TeamRegistration, error) {
	args := m.Called(ctx, tournamentID, userID)

	var res *models.TeamRegistration
	if args.Get(0) != nil {
		res = args.Get(0).(*models.TeamRegistration)
	}
	return res, args.Error(1)
}

func (m *TeamService) DeleteTeam(ctx context.Context, tournamentID, teamID, actorID int) error {
	args := m.Called(ctx, tournamentID, teamID, actorID)
	return args.Error(0)
}

func (m *TeamService) LeaveTeam(ctx context.Context, tournamentID, teamID, userID int) error {
	args := m.Called(ctx, tournamentID, teamID, userID)
	return args.Error(0)
}

func (m *TeamService) JoinTeam(ctx context.Context, tournamentID int, inviteCode string, userID int) (*models.Team, error) {
	args := m.Called(ctx, tournamentID, inviteCode, userID)
	return teamResult(args)
}

func teamResult(args mock.Arguments) (*models.Team, error) {
	var res *models.Team
	if args.Get(0) != nil {
		res = args.Get(0).(*models.Team)
	}
	return res, args.Error(1)
}

type UserService struct {
	mock.Mock
}

func (m *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)

	var res *models.User
	if args.Get(0) != nil {
		res = args.Get(0).(*models.User)
	}
	return res, args.Error(1)
}

func (m *UserService) SearchUsers(ctx context.Context, query string) ([]models.UserOption, error) {
	args := m.Called(ctx, query)

	var res []models.UserOption
	if args.Get(0) != nil {
		res = args.Get(0).([]models.UserOption)
	}
	return res, args.Error(1)
}

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, input)

	var res *models.User
	if args.Get(0) != nil {
		res = args.Get(0).(*models.User)
	}
	return res, args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, input services.LoginInput) (*models.User, string, error) {
	args := m.Called(ctx, input)

	var res *models.User
	if args.Get(0) != nil {
		res = args.Get(0).(*models.User)
	}
	return res, args.String(1), args.Error(2)
}
