package testutil

import (
	"database/sql"
	"testing"

	"github.com/Dosada05/tournament-badges/models"
)

// CreateTestUser создает пользователя и возвращает его.
func CreateTestUser(t *testing.T, db *sql.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{Username: username, Role: role}
	err := db.QueryRow(`
		INSERT INTO users (username, role, password_hash)
		VALUES ($1, $2, '')
		RETURNING id, created_at`, username, role).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestBadge создает бейдж с заданным кодом.
func CreateTestBadge(t *testing.T, db *sql.DB, code string) *models.Badge {
	t.Helper()

	badge := &models.Badge{Code: code, DisplayName: code}
	err := db.QueryRow(`
		INSERT INTO badges (code, display_name)
		VALUES ($1, $2)
		RETURNING id, created_at`, code, code).Scan(&badge.ID, &badge.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test badge: %v", err)
	}
	return badge
}

// AddTestManagers назначает менеджеров бейджа напрямую в базе.
func AddTestManagers(t *testing.T, db *sql.DB, badgeID int, userIDs ...int) {
	t.Helper()

	for _, id := range userIDs {
		if _, err := db.Exec(`INSERT INTO badge_managers (badge_id, user_id) VALUES ($1, $2)`, badgeID, id); err != nil {
			t.Fatalf("Failed to add test manager: %v", err)
		}
	}
}

// CreateTestTournament создает турнир с указанным статусом.
func CreateTestTournament(t *testing.T, db *sql.DB, name string, status models.TournamentStatus) *models.Tournament {
	t.Helper()

	tournament := &models.Tournament{Name: name, Status: status}
	err := db.QueryRow(`
		INSERT INTO tournaments (name, status)
		VALUES ($1, $2)
		RETURNING id, created_at`, name, status).Scan(&tournament.ID, &tournament.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test tournament: %v", err)
	}
	return tournament
}

// CountRows возвращает количество строк запроса SELECT COUNT(*).
func CountRows(t *testing.T, db *sql.DB, query string, args ...interface{}) int {
	t.Helper()

	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}
