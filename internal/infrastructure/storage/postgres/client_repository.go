package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/client"
)

type ClientRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewClientRepository(pool *pgxpool.Pool, log *slog.Logger) *ClientRepository {
	return &ClientRepository{
		pool: pool,
		log:  log.With("component", "client_repository"),
	}
}

func (r *ClientRepository) List(ctx context.Context) ([]client.Client, error) {
	const query = `
		SELECT id, name, description, color, initials, credential_count,
		       last_accessed, created_at
		FROM clients
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list clients", "error", err)
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	const query = `
		SELECT id, name, description, color, initials, credential_count,
		       last_accessed, created_at
		FROM clients WHERE id = $1`

	c, err := r.scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, client.ErrNotFound
		}
		r.log.Error("failed to get client", "client_id", id, "error", err)
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) GetByName(ctx context.Context, name string) (*client.Client, error) {
	const query = `
		SELECT id, name, description, color, initials, credential_count,
		       last_accessed, created_at
		FROM clients WHERE name = $1`

	c, err := r.scanClient(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, client.ErrNotFound
		}
		return nil, fmt.Errorf("get client by name: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	const query = `
		INSERT INTO clients (id, name, description, color, initials, credential_count,
		                     last_accessed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.Description, c.Color, c.Initials, c.CredentialCount,
		c.LastAccessed, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", client.ErrDuplicate, c.Name)
		}
		r.log.Error("failed to create client", "name", c.Name, "error", err)
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	const query = `
		UPDATE clients
		SET name = $1, description = $2, color = $3, initials = $4
		WHERE id = $5`

	result, err := r.pool.Exec(ctx, query,
		c.Name, c.Description, c.Color, c.Initials, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", client.ErrDuplicate, c.Name)
		}
		r.log.Error("failed to update client", "client_id", c.ID, "error", err)
		return fmt.Errorf("update client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return client.ErrNotFound
	}
	return nil
}

// Delete removes the client; its credentials and their viewer rows go with
// it via ON DELETE CASCADE.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete client", "client_id", id, "error", err)
		return fmt.Errorf("delete client: %w", err)
	}
	if result.RowsAffected() == 0 {
		return client.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) TouchAccess(ctx context.Context, id string, at time.Time) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE clients SET last_accessed = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("touch client access: %w", err)
	}
	if result.RowsAffected() == 0 {
		return client.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) scanClient(row pgx.Row) (*client.Client, error) {
	var c client.Client
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.Initials,
		&c.CredentialCount, &c.LastAccessed, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
