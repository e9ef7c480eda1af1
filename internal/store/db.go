package store

import (
	"context"
	"fmt"

	"utm-som/internal/observability"

	_ "github.com/jackc/pgx/v5/stdlib" // Import the pgx stdlib for sqlx
	"github.com/jmoiron/sqlx"
)

type Store struct {
	db     *sqlx.DB
	logger *observability.Logger
}

func New(connectionString string, logger *observability.Logger) (Store, error) {
	db, err := sqlx.Open("pgx", connectionString)
	if err != nil {
		return Store{}, fmt.Errorf("failed to open database: %w", err)
	}
	return Store{db: db, logger: logger}, nil
}

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB returns the underlying database connection
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
