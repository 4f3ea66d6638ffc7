package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-badges/models"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrInviteCodeConflict    = errors.New("team invite code conflict")
	ErrTeamTournamentInvalid = errors.New("team tournament conflict or invalid")
	ErrTeamMemberNotFound    = errors.New("team member not found")
	ErrTeamMemberConflict    = errors.New("user is already a member of the team")
	ErrTeamFull              = errors.New("team is full")
)

type TeamRepository interface {
	// CreateWithOwner атомарно создает команду и запись о членстве владельца.
	// Заполняет ID и CreatedAt у team.
	CreateWithOwner(ctx context.Context, team *models.Team, ownerID int) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Team, error)
	// GetByTournamentMember ищет команду пользователя в рамках турнира.
	GetByTournamentMember(ctx context.Context, tournamentID, userID int) (*models.Team, error)
	ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error)
	// AddMember добавляет участника, если в команде меньше maxMembers человек.
	AddMember(ctx context.Context, teamID, userID, maxMembers int) error
	RemoveMember(ctx context.Context, teamID, userID int) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `t.id, t.tournament_id, t.name, t.invite_code, t.created_at`

func scanTeam(row interface{ Scan(dest ...interface{}) error }, team *models.Team) error {
	return row.Scan(&team.ID, &team.TournamentID, &team.Name, &team.InviteCode, &team.CreatedAt)
}

func (r *postgresTeamRepository) CreateWithOwner(ctx context.Context, team *models.Team, ownerID int) error {
	return RunInTx(ctx, r.db, func(tx SQLExecutor) error {
		query := `
			INSERT INTO tournament_teams (tournament_id, name, invite_code)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`

		err := tx.QueryRowContext(ctx, query, team.TournamentID, team.Name, team.InviteCode).
			Scan(&team.ID, &team.CreatedAt)
		if err != nil {
			if code, constraint, ok := pqErrorCode(err); ok {
				switch {
				case code == pqUniqueViolation && constraint == "tournament_teams_invite_code_key":
					return ErrInviteCodeConflict
				case code == pqForeignKeyViolation:
					return ErrTeamTournamentInvalid
				}
			}
			return fmt.Errorf("failed to insert team: %w", err)
		}

		member := models.TeamMember{TeamID: team.ID, UserID: ownerID, IsOwner: true}
		err = tx.QueryRowContext(ctx, `
			INSERT INTO tournament_team_members (team_id, user_id, is_owner)
			VALUES ($1, $2, TRUE)
			RETURNING created_at`, team.ID, ownerID).Scan(&member.CreatedAt)
		if err != nil {
			if code, _, ok := pqErrorCode(err); ok && code == pqForeignKeyViolation {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to insert team owner membership: %w", err)
		}

		team.Members = []models.TeamMember{member}
		return nil
	})
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM tournament_teams t WHERE t.id = $1`
	return r.getOne(ctx, query, id)
}

func (r *postgresTeamRepository) GetByInviteCode(ctx context.Context, code string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM tournament_teams t WHERE t.invite_code = $1`
	return r.getOne(ctx, query, code)
}

func (r *postgresTeamRepository) GetByTournamentMember(ctx context.Context, tournamentID, userID int) (*models.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM tournament_teams t
		JOIN tournament_team_members m ON m.team_id = t.id
		WHERE t.tournament_id = $1 AND m.user_id = $2
		LIMIT 1`
	return r.getOne(ctx, query, tournamentID, userID)
}

func (r *postgresTeamRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Team, error) {
	var team models.Team
	if err := scanTeam(r.db.QueryRowContext(ctx, query, args...), &team); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

func (r *postgresTeamRepository) ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	query := `
		SELECT m.team_id, m.user_id, m.is_owner, m.created_at, u.username
		FROM tournament_team_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1
		ORDER BY m.is_owner DESC, m.created_at, m.user_id`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of team %d: %w", teamID, err)
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0)
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.TeamID, &m.UserID, &m.IsOwner, &m.CreatedAt, &m.Username); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *postgresTeamRepository) AddMember(ctx context.Context, teamID, userID, maxMembers int) error {
	return RunInTx(ctx, r.db, func(tx SQLExecutor) error {
		// Блокируем команду, чтобы параллельные вступления не превысили лимит
		var id int
		err := tx.QueryRowContext(ctx, `SELECT id FROM tournament_teams WHERE id = $1 FOR UPDATE`, teamID).Scan(&id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("failed to lock team %d: %w", teamID, err)
		}

		var count int
		err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournament_team_members WHERE team_id = $1`, teamID).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to count members of team %d: %w", teamID, err)
		}
		if maxMembers > 0 && count >= maxMembers {
			return ErrTeamFull
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO tournament_team_members (team_id, user_id, is_owner)
			VALUES ($1, $2, FALSE)`, teamID, userID)
		if err != nil {
			if code, _, ok := pqErrorCode(err); ok {
				switch code {
				case pqUniqueViolation:
					return ErrTeamMemberConflict
				case pqForeignKeyViolation:
					return ErrUserNotFound
				}
			}
			return fmt.Errorf("failed to add member %d to team %d: %w", userID, teamID, err)
		}
		return nil
	})
}

func (r *postgresTeamRepository) RemoveMember(ctx context.Context, teamID, userID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tournament_team_members WHERE team_id = $1 AND user_id = $2 AND NOT is_owner`,
		teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member %d from team %d: %w", userID, teamID, err)
	}
	return checkAffectedRows(result, ErrTeamMemberNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournament_teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}
