// Package testutil поднимает PostgreSQL в контейнере для интеграционных
// тестов и содержит хелперы для наполнения базы.
package testutil

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/tournament-badges/db"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image      = "postgres:16.3-alpine"
	dbName     = "tournament_badges"
	dbUser     = "tbuser"
	dbPassword = "secret"
)

var (
	containerOnce sync.Once
	sharedDB      *sql.DB
	containerErr  error
)

// SetupTestDB возвращает подключение к общей тестовой базе с пустыми таблицами.
// Тест пропускается при -short или если Docker недоступен.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	containerOnce.Do(func() {
		sharedDB, containerErr = startContainer()
	})
	if containerErr != nil {
		t.Fatalf("failed to start postgres container: %v", containerErr)
	}

	_, err := sharedDB.Exec(`
		TRUNCATE tournament_team_members, tournament_teams, tournaments,
		         badge_owners, badge_managers, badges, users
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}

	return sharedDB
}

func startContainer() (*sql.DB, error) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	// sslmode=disable - контейнер не настроен на TLS
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	conn, err := db.Connect(ctx, connStr, db.PoolOptions{MaxOpenConns: 10, PingTimeout: 10 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.CreateSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
