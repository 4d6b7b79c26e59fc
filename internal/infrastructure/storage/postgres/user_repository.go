package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/credential"
	"credvault/internal/domain/user"
)

// UserRepository implements user.Repository and doubles as the
// credential.UserDirectory used to snapshot allow-list members.
type UserRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{
		pool: pool,
		log:  log.With("component", "user_repository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	const query = `
		INSERT INTO users (id, name, email, role, avatar, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.Role, u.Avatar, u.Password, u.CreatedAt)
	if err != nil {
		r.log.Error("failed to create user", "email", u.Email, "error", err)
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	const query = `
		SELECT id, name, email, role, avatar, password_hash, created_at
		FROM users WHERE email = $1`

	u, err := r.scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	const query = `
		SELECT id, name, email, role, avatar, password_hash, created_at
		FROM users WHERE id = $1`

	u, err := r.scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	const query = `
		SELECT id, name, email, role, avatar, password_hash, created_at
		FROM users ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// FindByIDs resolves ids to allow-list snapshots; unknown ids are silently
// dropped, which is how stale references get filtered out at grant time.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]credential.AllowedUser, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	const query = `SELECT id, name, email FROM users WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("failed to resolve user ids", "error", err)
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]credential.AllowedUser, len(ids))
	for rows.Next() {
		var au credential.AllowedUser
		if err := rows.Scan(&au.ID, &au.Name, &au.Email); err != nil {
			return nil, fmt.Errorf("scan allowed user: %w", err)
		}
		byID[au.ID] = au
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// keep the caller's ordering, skip duplicates and unknowns
	var found []credential.AllowedUser
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if au, ok := byID[id]; ok {
			found = append(found, au)
		}
	}
	return found, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Avatar, &u.Password, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
