package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbooks-hq/openbooks_backend/internal/apperrors"
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	portsrepo "github.com/openbooks-hq/openbooks_backend/internal/core/ports/repositories"
	"github.com/openbooks-hq/openbooks_backend/internal/models"
	"github.com/openbooks-hq/openbooks_backend/internal/utils/mapping"
)

const userColumns = `user_id, username, name, password_hash, created_at, created_by, last_updated_at, last_updated_by`

// PgxUserRepository persists users.
type PgxUserRepository struct {
	BaseRepository
}

// NewPgxUserRepository creates a new user repository.
func NewPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Username, m.Name, m.PasswordHash,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: username %s", apperrors.ErrDuplicate, m.Username)
		}
		return apperrors.NewAppError(500, "failed to insert user", err)
	}
	return nil
}

func (r *PgxUserRepository) findUser(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` = $1;`
	var m models.User
	err := r.Pool.QueryRow(ctx, query, arg).Scan(
		&m.UserID, &m.Username, &m.Name, &m.PasswordHash,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to query user", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUserByID retrieves a user by primary key.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, "user_id", userID)
}

// FindUserByUsername retrieves a user by username.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUser(ctx, "username", username)
}
