package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"credvault/internal/domain/credential"
)

type CredentialRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCredentialRepository(pool *pgxpool.Pool, log *slog.Logger) *CredentialRepository {
	return &CredentialRepository{
		pool: pool,
		log:  log.With("component", "credential_repository"),
	}
}

const credentialColumns = `
	id, client_id, name, environment, service_type, username, password,
	url, notes, tags, last_updated, created_at, owner_id, owner_name, is_legacy`

func (r *CredentialRepository) List(ctx context.Context) ([]credential.Credential, error) {
	query := `SELECT ` + credentialColumns + `
		FROM credentials ORDER BY last_updated DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list credentials", "error", err)
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	creds, err := r.scanCredentials(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachViewers(ctx, creds); err != nil {
		return nil, err
	}
	return creds, nil
}

func (r *CredentialRepository) ListByClient(ctx context.Context, clientID string) ([]credential.Credential, error) {
	query := `SELECT ` + credentialColumns + `
		FROM credentials WHERE client_id = $1 ORDER BY last_updated DESC`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		r.log.Error("failed to list credentials", "client_id", clientID, "error", err)
		return nil, fmt.Errorf("list credentials by client: %w", err)
	}
	defer rows.Close()

	creds, err := r.scanCredentials(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachViewers(ctx, creds); err != nil {
		return nil, err
	}
	return creds, nil
}

func (r *CredentialRepository) Get(ctx context.Context, id string) (*credential.Credential, error) {
	query := `SELECT ` + credentialColumns + `
		FROM credentials WHERE id = $1`

	c, err := r.scanCredential(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, credential.ErrNotFound
		}
		r.log.Error("failed to get credential", "credential_id", id, "error", err)
		return nil, fmt.Errorf("get credential: %w", err)
	}

	creds := []credential.Credential{*c}
	if err := r.attachViewers(ctx, creds); err != nil {
		return nil, err
	}
	return &creds[0], nil
}

// Create inserts the credential, its allow-list rows and the client counter
// bump in one transaction, so the denormalized count cannot drift.
func (r *CredentialRepository) Create(ctx context.Context, c *credential.Credential) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const insert = `
		INSERT INTO credentials (id, client_id, name, environment, service_type,
		                         username, password, url, notes, tags,
		                         last_updated, created_at, owner_id, owner_name, is_legacy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = tx.Exec(ctx, insert,
		c.ID, c.ClientID, c.Name, c.Environment, c.ServiceType,
		c.Username, c.Password, c.URL, c.Notes, c.Tags,
		c.LastUpdated, c.CreatedAt, nullable(c.OwnerID), c.OwnerName, c.IsLegacy)
	if err != nil {
		r.log.Error("failed to insert credential", "credential_id", c.ID, "error", err)
		return fmt.Errorf("insert credential: %w", err)
	}

	if err := r.replaceViewers(ctx, tx, c.ID, c.AllowedUsers); err != nil {
		return err
	}

	result, err := tx.Exec(ctx,
		`UPDATE clients SET credential_count = credential_count + 1 WHERE id = $1`,
		c.ClientID)
	if err != nil {
		return fmt.Errorf("increment credential count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return credential.ErrClientNotFound
	}

	return tx.Commit(ctx)
}

func (r *CredentialRepository) Update(ctx context.Context, c *credential.Credential) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	const update = `
		UPDATE credentials
		SET name = $1, environment = $2, service_type = $3, username = $4,
		    password = $5, url = $6, notes = $7, tags = $8, last_updated = $9,
		    owner_id = $10, owner_name = $11, is_legacy = $12
		WHERE id = $13`

	result, err := tx.Exec(ctx, update,
		c.Name, c.Environment, c.ServiceType, c.Username,
		c.Password, c.URL, c.Notes, c.Tags, c.LastUpdated,
		nullable(c.OwnerID), c.OwnerName, c.IsLegacy, c.ID)
	if err != nil {
		r.log.Error("failed to update credential", "credential_id", c.ID, "error", err)
		return fmt.Errorf("update credential: %w", err)
	}
	if result.RowsAffected() == 0 {
		return credential.ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM credential_viewers WHERE credential_id = $1`, c.ID); err != nil {
		return fmt.Errorf("clear credential viewers: %w", err)
	}
	if err := r.replaceViewers(ctx, tx, c.ID, c.AllowedUsers); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes the credential and decrements the client counter in the
// same transaction; the counter is floored at zero.
func (r *CredentialRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var clientID string
	err = tx.QueryRow(ctx,
		`DELETE FROM credentials WHERE id = $1 RETURNING client_id`, id).
		Scan(&clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return credential.ErrNotFound
		}
		r.log.Error("failed to delete credential", "credential_id", id, "error", err)
		return fmt.Errorf("delete credential: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE clients SET credential_count = GREATEST(credential_count - 1, 0) WHERE id = $1`,
		clientID); err != nil {
		return fmt.Errorf("decrement credential count: %w", err)
	}

	return tx.Commit(ctx)
}

// replaceViewers writes the allow-list rows with their position, so reads
// give the list back in grant order.
func (r *CredentialRepository) replaceViewers(ctx context.Context, tx pgx.Tx, credentialID string, viewers []credential.AllowedUser) error {
	for i, v := range viewers {
		_, err := tx.Exec(ctx,
			`INSERT INTO credential_viewers (credential_id, user_id, user_name, user_email, position)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (credential_id, user_id) DO NOTHING`,
			credentialID, v.ID, v.Name, v.Email, i)
		if err != nil {
			return fmt.Errorf("insert credential viewer: %w", err)
		}
	}
	return nil
}

// attachViewers loads the allow-list snapshots for a batch of credentials
// with a single query.
func (r *CredentialRepository) attachViewers(ctx context.Context, creds []credential.Credential) error {
	if len(creds) == 0 {
		return nil
	}

	ids := make([]string, len(creds))
	index := make(map[string]int, len(creds))
	for i := range creds {
		ids[i] = creds[i].ID
		index[creds[i].ID] = i
	}

	rows, err := r.pool.Query(ctx,
		`SELECT credential_id, user_id, user_name, user_email
		 FROM credential_viewers WHERE credential_id = ANY($1)
		 ORDER BY position`, ids)
	if err != nil {
		return fmt.Errorf("load credential viewers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var credID string
		var au credential.AllowedUser
		if err := rows.Scan(&credID, &au.ID, &au.Name, &au.Email); err != nil {
			return fmt.Errorf("scan credential viewer: %w", err)
		}
		i := index[credID]
		creds[i].AllowedUsers = append(creds[i].AllowedUsers, au)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range creds {
		creds[i].ViewerCount = len(creds[i].AllowedUsers)
	}
	return nil
}

func (r *CredentialRepository) scanCredentials(rows pgx.Rows) ([]credential.Credential, error) {
	var creds []credential.Credential
	for rows.Next() {
		c, err := r.scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		creds = append(creds, *c)
	}
	return creds, rows.Err()
}

func (r *CredentialRepository) scanCredential(row pgx.Row) (*credential.Credential, error) {
	var c credential.Credential
	var ownerID, ownerName *string

	err := row.Scan(
		&c.ID, &c.ClientID, &c.Name, &c.Environment, &c.ServiceType,
		&c.Username, &c.Password, &c.URL, &c.Notes, &c.Tags,
		&c.LastUpdated, &c.CreatedAt, &ownerID, &ownerName, &c.IsLegacy,
	)
	if err != nil {
		return nil, err
	}

	if ownerID != nil {
		c.OwnerID = *ownerID
	}
	if ownerName != nil {
		c.OwnerName = *ownerName
	}
	return &c, nil
}

// nullable maps an empty string to NULL so foreign keys stay honest.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
