package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/Dosada05/tournament-badges/repositories"
	"github.com/Dosada05/tournament-badges/utils"
)

const (
	maxTeamNameLength = 100
	// inviteCodeAttempts - сколько раз пробуем сгенерировать код при коллизии уникального индекса.
	inviteCodeAttempts = 3
)

type CreateTeamInput struct {
	TournamentID int
	OwnerID      int
	Name         string
}

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetRegistration(ctx context.Context, tournamentID, userID int) (*models.TeamRegistration, error)
	DeleteTeam(ctx context.Context, tournamentID, teamID, actorID int) error
	LeaveTeam(ctx context.Context, tournamentID, teamID, userID int) error
	JoinTeam(ctx context.Context, tournamentID int, inviteCode string, userID int) (*models.Team, error)
}

type teamService struct {
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	userRepo       repositories.UserRepository
	events         EventPublisher
	logger         *slog.Logger

	generateCode func() (string, error)
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	userRepo repositories.UserRepository,
	events EventPublisher,
	logger *slog.Logger,
) TeamService {
	if logger == nil {
		logger = slog.Default()
	}
	return &teamService{
		teamRepo:       teamRepo,
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		events:         events,
		logger:         logger,
		generateCode:   utils.GenerateInviteCode,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if utf8.RuneCountInString(name) > maxTeamNameLength {
		return nil, ErrTeamNameTooLong
	}

	owner, err := s.userRepo.GetByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", input.OwnerID, err)
	}
	if name == "" {
		name = fmt.Sprintf("%s's team", owner.DisplayName())
	}

	if _, err := s.openTournament(ctx, input.TournamentID); err != nil {
		return nil, err
	}
	if err := s.ensureNotRegistered(ctx, input.TournamentID, input.OwnerID); err != nil {
		return nil, err
	}

	var team *models.Team
	for attempt := 1; attempt <= inviteCodeAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInviteCodeGeneration, err)
		}

		candidate := &models.Team{
			TournamentID: input.TournamentID,
			Name:         name,
			InviteCode:   code,
		}
		err = s.teamRepo.CreateWithOwner(ctx, candidate, input.OwnerID)
		if err == nil {
			team = candidate
			break
		}
		switch {
		case errors.Is(err, repositories.ErrInviteCodeConflict):
			s.logger.WarnContext(ctx, "invite code collision, retrying",
				slog.Int("tournament_id", input.TournamentID),
				slog.Int("attempt", attempt))
			continue
		case errors.Is(err, repositories.ErrTeamTournamentInvalid):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("failed to create team: %w", err)
		}
	}
	if team == nil {
		return nil, ErrInviteCodeGeneration
	}

	for i := range team.Members {
		team.Members[i].Username = owner.Username
	}

	s.logger.InfoContext(ctx, "team created",
		slog.Int("team_id", team.ID),
		slog.Int("tournament_id", team.TournamentID),
		slog.Int("owner_id", input.OwnerID))
	publish(s.events, TournamentRoom(team.TournamentID), EventTeamUpdated, map[string]int{"team_id": team.ID})

	return team, nil
}

func (s *teamService) GetRegistration(ctx context.Context, tournamentID, userID int) (*models.TeamRegistration, error) {
	tournament, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	reg := &models.TeamRegistration{Tournament: tournament}

	team, err := s.teamRepo.GetByTournamentMember(ctx, tournamentID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			reg.CanJoin = tournament.RegistrationOpen()
			return reg, nil
		}
		return nil, fmt.Errorf("failed to get team of user %d in tournament %d: %w", userID, tournamentID, err)
	}

	members, err := s.teamRepo.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of team %d: %w", team.ID, err)
	}
	team.Members = members

	if owner := team.Owner(); owner != nil && owner.UserID == userID {
		reg.IsOwner = true
	} else {
		// Код приглашения видит только капитан
		team.InviteCode = ""
	}
	reg.Team = team
	return reg, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, tournamentID, teamID, actorID int) error {
	team, err := s.getTeamInTournament(ctx, tournamentID, teamID)
	if err != nil {
		return err
	}

	members, err := s.teamRepo.ListMembers(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("failed to list members of team %d: %w", team.ID, err)
	}
	team.Members = members

	if owner := team.Owner(); owner == nil || owner.UserID != actorID {
		return ErrTeamOwnerOnly
	}

	if err := s.teamRepo.Delete(ctx, team.ID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", team.ID, err)
	}

	s.logger.InfoContext(ctx, "team deleted", slog.Int("team_id", team.ID), slog.Int("actor_id", actorID))
	publish(s.events, TournamentRoom(tournamentID), EventTeamUpdated, map[string]int{"team_id": team.ID})
	return nil
}

func (s *teamService) LeaveTeam(ctx context.Context, tournamentID, teamID, userID int) error {
	team, err := s.getTeamInTournament(ctx, tournamentID, teamID)
	if err != nil {
		return err
	}

	members, err := s.teamRepo.ListMembers(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("failed to list members of team %d: %w", team.ID, err)
	}
	team.Members = members

	if !team.HasMember(userID) {
		return ErrNotTeamMember
	}
	if owner := team.Owner(); owner != nil && owner.UserID == userID {
		return ErrOwnerCannotLeave
	}

	if err := s.teamRepo.RemoveMember(ctx, team.ID, userID); err != nil {
		if errors.Is(err, repositories.ErrTeamMemberNotFound) {
			return ErrNotTeamMember
		}
		return fmt.Errorf("failed to remove user %d from team %d: %w", userID, team.ID, err)
	}

	s.logger.InfoContext(ctx, "user left team", slog.Int("team_id", team.ID), slog.Int("user_id", userID))
	publish(s.events, TournamentRoom(tournamentID), EventTeamUpdated, map[string]int{"team_id": team.ID})
	return nil
}

func (s *teamService) JoinTeam(ctx context.Context, tournamentID int, inviteCode string, userID int) (*models.Team, error) {
	inviteCode = strings.TrimSpace(inviteCode)
	if inviteCode == "" {
		return nil, ErrTeamNotFound
	}

	if _, err := s.openTournament(ctx, tournamentID); err != nil {
		return nil, err
	}

	team, err := s.teamRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by invite code: %w", err)
	}
	if team.TournamentID != tournamentID {
		return nil, ErrTeamNotFound
	}

	if err := s.ensureNotRegistered(ctx, tournamentID, userID); err != nil {
		return nil, err
	}

	if err := s.teamRepo.AddMember(ctx, team.ID, userID, models.MaxTeamMembers); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamFull):
			return nil, ErrTeamFull
		case errors.Is(err, repositories.ErrTeamMemberConflict):
			return nil, ErrAlreadyRegistered
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("failed to add user %d to team %d: %w", userID, team.ID, err)
		}
	}

	members, err := s.teamRepo.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of team %d: %w", team.ID, err)
	}
	team.Members = members
	team.InviteCode = ""

	s.logger.InfoContext(ctx, "user joined team", slog.Int("team_id", team.ID), slog.Int("user_id", userID))
	publish(s.events, TournamentRoom(tournamentID), EventTeamUpdated, map[string]int{"team_id": team.ID})

	return team, nil
}

func (s *teamService) getTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}
	return tournament, nil
}

func (s *teamService) openTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.getTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if !tournament.RegistrationOpen() {
		return nil, ErrRegistrationNotOpen
	}
	return tournament, nil
}

func (s *teamService) ensureNotRegistered(ctx context.Context, tournamentID, userID int) error {
	_, err := s.teamRepo.GetByTournamentMember(ctx, tournamentID, userID)
	switch {
	case err == nil:
		return ErrAlreadyRegistered
	case errors.Is(err, repositories.ErrTeamNotFound):
		return nil
	default:
		return fmt.Errorf("failed to check registration of user %d: %w", userID, err)
	}
}

func (s *teamService) getTeamInTournament(ctx context.Context, tournamentID, teamID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}
	if team.TournamentID != tournamentID {
		return nil, ErrTeamNotFound
	}
	return team, nil
}
