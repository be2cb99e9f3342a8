package locations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no user exists for a telegram id.
var ErrNotFound = errors.New("user not found")

// Repository defines data access for user coordinates.
type Repository interface {
	UpsertLocation(ctx context.Context, telegramID int64, req UpdateLocationRequest) (*User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
}

// PostgresRepository implements Repository on PostgreSQL via sqlx.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates the repository.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the users table if it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS users (
			id          BIGSERIAL PRIMARY KEY,
			telegram_id BIGINT UNIQUE NOT NULL,
			username    VARCHAR(255),
			first_name  VARCHAR(255),
			latitude    DOUBLE PRECISION,
			longitude   DOUBLE PRECISION,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_users_telegram_id ON users (telegram_id);`

	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure users schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpsertLocation(ctx context.Context, telegramID int64, req UpdateLocationRequest) (*User, error) {
	const query = `
		INSERT INTO users (telegram_id, username, first_name, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE SET
			username   = COALESCE(EXCLUDED.username, users.username),
			first_name = COALESCE(EXCLUDED.first_name, users.first_name),
			latitude   = EXCLUDED.latitude,
			longitude  = EXCLUDED.longitude,
			updated_at = now()
		RETURNING id, telegram_id, username, first_name, latitude, longitude, created_at, updated_at`

	var user User
	err := r.db.GetContext(ctx, &user, query,
		telegramID, req.Username, req.FirstName, req.Latitude, req.Longitude)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user location: %w", err)
	}
	return &user, nil
}

func (r *PostgresRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	const query = `
		SELECT id, telegram_id, username, first_name, latitude, longitude, created_at, updated_at
		FROM users
		WHERE telegram_id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
