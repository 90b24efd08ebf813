// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/simfra/lingod/internal/model"
	"github.com/simfra/lingod/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) UpsertTranslation(ctx context.Context, t *model.Translation) error {
	return queryUpsertTranslation(ctx, s.db, t)
}

func (s *PostgresStore) GetTranslation(ctx context.Context, id int64) (*model.Translation, error) {
	return queryGetTranslation(ctx, s.db, id)
}

func (s *PostgresStore) ListTranslations(ctx context.Context, filter model.TranslationFilter) ([]*model.Translation, error) {
	return queryListTranslations(ctx, s.db, filter)
}

func (s *PostgresStore) DeleteTranslation(ctx context.Context, id int64) error {
	return queryDeleteTranslation(ctx, s.db, id)
}

func (s *PostgresStore) DistinctKeys(ctx context.Context, filter model.KeyFilter) ([]string, error) {
	return queryDistinctKeys(ctx, s.db, filter)
}

func (s *PostgresStore) DistinctGroups(ctx context.Context) ([]string, error) {
	return queryDistinctGroups(ctx, s.db)
}

func (s *PostgresStore) ListLanguages(ctx context.Context, activeOnly bool) ([]*model.Language, error) {
	return queryListLanguages(ctx, s.db, activeOnly)
}

func (s *PostgresStore) UpsertLanguage(ctx context.Context, l *model.Language) error {
	return queryUpsertLanguage(ctx, s.db, l)
}
