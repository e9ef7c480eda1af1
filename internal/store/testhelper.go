package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"utm-som/internal/observability"

	"github.com/jmoiron/sqlx"
)

// TestDB wraps a test database instance
type TestDB struct {
	db    *sqlx.DB
	Store Store
}

// SetupTestDB connects to the test PostgreSQL instance and applies the
// migrations. The test is skipped when no database is reachable.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	db, err := setupPostgresDB(t)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}

	if err := runMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{
		db:    db,
		Store: Store{db: db, logger: observability.NewNopLogger()},
	}
}

// setupPostgresDB opens a connection using TEST_DB_* variables, falling back
// to the docker compose defaults.
func setupPostgresDB(t *testing.T) (*sqlx.DB, error) {
	t.Helper()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOr("TEST_DB_USER", "utm_user"),
		envOr("TEST_DB_PASSWORD", "utm_password"),
		envOr("TEST_DB_HOST", "localhost"),
		envOr("TEST_DB_PORT", "5432"),
		envOr("TEST_DB_NAME", "utm_db"),
	)

	db, err := sqlx.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// runMigrations applies all migration files to the database
func runMigrations(db *sqlx.DB) error {
	migrationsDir := "../../migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		migrationsDir = "migrations"
		if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
			return fmt.Errorf("migrations directory not found")
		}
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "V*.sql"))
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", migrationsDir)
	}

	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if _, err = db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filepath.Base(file), err)
		}
	}

	return nil
}

// Truncate clears the given tables, or every table when none are named.
func (tdb *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()

	if len(tables) == 0 {
		tables = []string{"link_records"}
	}
	for _, table := range tables {
		if _, err := tdb.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}
