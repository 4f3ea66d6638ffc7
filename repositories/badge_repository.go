package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/lib/pq"
)

var (
	ErrBadgeNotFound          = errors.New("badge not found")
	ErrBadgeCodeConflict      = errors.New("badge code conflict")
	ErrBadgeUserInvalid       = errors.New("badge assignment references unknown user")
	ErrBadgeOwnerCountInvalid = errors.New("badge owner count out of range")
	ErrBadgeAssignmentDup     = errors.New("badge assignment contains duplicate users")
)

type BadgeRepository interface {
	Create(ctx context.Context, badge *models.Badge) error
	GetByID(ctx context.Context, id int) (*models.Badge, error)
	List(ctx context.Context) ([]models.Badge, error)
	ListManagedBy(ctx context.Context, userID int) ([]models.Badge, error)
	UpdateImageKey(ctx context.Context, id int, imageKey *string) error

	ListManagers(ctx context.Context, badgeID int) ([]models.BadgeManager, error)
	ListOwners(ctx context.Context, badgeID int) ([]models.BadgeOwner, error)

	// ReplaceManagers полностью заменяет набор менеджеров бейджа (в одной транзакции).
	ReplaceManagers(ctx context.Context, badgeID int, userIDs []int) error
	// ReplaceOwners полностью заменяет владельцев бейджа вместе с их количеством.
	ReplaceOwners(ctx context.Context, badgeID int, owners []models.BadgeOwner) error
}

type postgresBadgeRepository struct {
	db *sql.DB
}

func NewPostgresBadgeRepository(db *sql.DB) BadgeRepository {
	return &postgresBadgeRepository{db: db}
}

const badgeColumns = `b.id, b.code, b.display_name, b.hue, b.image_key, b.created_at`

func scanBadge(row interface{ Scan(dest ...interface{}) error }, badge *models.Badge) error {
	return row.Scan(
		&badge.ID,
		&badge.Code,
		&badge.DisplayName,
		&badge.Hue,
		&badge.ImageKey,
		&badge.CreatedAt,
	)
}

func (r *postgresBadgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	query := `
		INSERT INTO badges (code, display_name, hue, image_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		badge.Code,
		badge.DisplayName,
		badge.Hue,
		badge.ImageKey,
	).Scan(&badge.ID, &badge.CreatedAt)
	if err != nil {
		if code, constraint, ok := pqErrorCode(err); ok && code == pqUniqueViolation && constraint == "badges_code_key" {
			return ErrBadgeCodeConflict
		}
		return fmt.Errorf("failed to create badge: %w", err)
	}
	return nil
}

func (r *postgresBadgeRepository) GetByID(ctx context.Context, id int) (*models.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges b WHERE b.id = $1`

	var badge models.Badge
	if err := scanBadge(r.db.QueryRowContext(ctx, query, id), &badge); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadgeNotFound
		}
		return nil, fmt.Errorf("failed to get badge %d: %w", id, err)
	}
	return &badge, nil
}

func (r *postgresBadgeRepository) List(ctx context.Context) ([]models.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges b ORDER BY b.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	return collectBadges(rows)
}

func (r *postgresBadgeRepository) ListManagedBy(ctx context.Context, userID int) ([]models.Badge, error) {
	query := `
		SELECT ` + badgeColumns + `
		FROM badges b
		JOIN badge_managers bm ON bm.badge_id = b.id
		WHERE bm.user_id = $1
		ORDER BY b.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges managed by user %d: %w", userID, err)
	}
	defer rows.Close()

	return collectBadges(rows)
}

func (r *postgresBadgeRepository) UpdateImageKey(ctx context.Context, id int, imageKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE badges SET image_key = $1 WHERE id = $2`, imageKey, id)
	if err != nil {
		return fmt.Errorf("failed to update image of badge %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrBadgeNotFound)
}

func (r *postgresBadgeRepository) ListManagers(ctx context.Context, badgeID int) ([]models.BadgeManager, error) {
	query := `
		SELECT bm.badge_id, bm.user_id, u.username
		FROM badge_managers bm
		JOIN users u ON u.id = bm.user_id
		WHERE bm.badge_id = $1
		ORDER BY u.username, bm.user_id`

	rows, err := r.db.QueryContext(ctx, query, badgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers of badge %d: %w", badgeID, err)
	}
	defer rows.Close()

	managers := make([]models.BadgeManager, 0)
	for rows.Next() {
		var m models.BadgeManager
		if err := rows.Scan(&m.BadgeID, &m.UserID, &m.Username); err != nil {
			return nil, fmt.Errorf("failed to scan badge manager: %w", err)
		}
		managers = append(managers, m)
	}
	return managers, rows.Err()
}

func (r *postgresBadgeRepository) ListOwners(ctx context.Context, badgeID int) ([]models.BadgeOwner, error) {
	query := `
		SELECT bo.badge_id, bo.user_id, bo.count, u.username
		FROM badge_owners bo
		JOIN users u ON u.id = bo.user_id
		WHERE bo.badge_id = $1
		ORDER BY bo.count DESC, u.username, bo.user_id`

	rows, err := r.db.QueryContext(ctx, query, badgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners of badge %d: %w", badgeID, err)
	}
	defer rows.Close()

	owners := make([]models.BadgeOwner, 0)
	for rows.Next() {
		var o models.BadgeOwner
		if err := rows.Scan(&o.BadgeID, &o.UserID, &o.Count, &o.Username); err != nil {
			return nil, fmt.Errorf("failed to scan badge owner: %w", err)
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

func (r *postgresBadgeRepository) ReplaceManagers(ctx context.Context, badgeID int, userIDs []int) error {
	return RunInTx(ctx, r.db, func(tx SQLExecutor) error {
		if err := lockBadge(ctx, tx, badgeID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM badge_managers WHERE badge_id = $1`, badgeID); err != nil {
			return fmt.Errorf("failed to clear managers of badge %d: %w", badgeID, err)
		}

		if len(userIDs) == 0 {
			return nil
		}

		query := `
			INSERT INTO badge_managers (badge_id, user_id)
			SELECT $1, u FROM unnest($2::int[]) AS t(u)`
		if _, err := tx.ExecContext(ctx, query, badgeID, pq.Array(userIDs)); err != nil {
			return mapAssignmentError(err, badgeID)
		}
		return nil
	})
}

func (r *postgresBadgeRepository) ReplaceOwners(ctx context.Context, badgeID int, owners []models.BadgeOwner) error {
	userIDs := make([]int, 0, len(owners))
	counts := make([]int, 0, len(owners))
	for _, o := range owners {
		userIDs = append(userIDs, o.UserID)
		counts = append(counts, o.Count)
	}

	return RunInTx(ctx, r.db, func(tx SQLExecutor) error {
		if err := lockBadge(ctx, tx, badgeID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM badge_owners WHERE badge_id = $1`, badgeID); err != nil {
			return fmt.Errorf("failed to clear owners of badge %d: %w", badgeID, err)
		}

		if len(userIDs) == 0 {
			return nil
		}

		query := `
			INSERT INTO badge_owners (badge_id, user_id, count)
			SELECT $1, u, c FROM unnest($2::int[], $3::int[]) AS t(u, c)`
		if _, err := tx.ExecContext(ctx, query, badgeID, pq.Array(userIDs), pq.Array(counts)); err != nil {
			return mapAssignmentError(err, badgeID)
		}
		return nil
	})
}

// lockBadge блокирует строку бейджа до конца транзакции, чтобы параллельные
// замены одного бейджа выполнялись по очереди (побеждает последняя).
func lockBadge(ctx context.Context, tx SQLExecutor, badgeID int) error {
	var id int
	err := tx.QueryRowContext(ctx, `SELECT id FROM badges WHERE id = $1 FOR UPDATE`, badgeID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBadgeNotFound
		}
		return fmt.Errorf("failed to lock badge %d: %w", badgeID, err)
	}
	return nil
}

func mapAssignmentError(err error, badgeID int) error {
	if code, _, ok := pqErrorCode(err); ok {
		switch code {
		case pqForeignKeyViolation:
			return ErrBadgeUserInvalid
		case pqCheckViolation:
			return ErrBadgeOwnerCountInvalid
		case pqUniqueViolation:
			return ErrBadgeAssignmentDup
		}
	}
	return fmt.Errorf("failed to write assignments of badge %d: %w", badgeID, err)
}

func collectBadges(rows *sql.Rows) ([]models.Badge, error) {
	badges := make([]models.Badge, 0)
	for rows.Next() {
		var badge models.Badge
		if err := scanBadge(rows, &badge); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, badge)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return badges, nil
}
