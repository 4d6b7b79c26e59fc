package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	clientdom "credvault/internal/domain/client"
	"credvault/internal/domain/credential"
)

// SQLiteCache keeps the last server responses on disk so list commands keep
// working while the server is unreachable. Secrets are cached as received.
type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	cache := &SQLiteCache{db: db}
	if err := cache.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache tables: %w", err)
	}
	return cache, nil
}

func (s *SQLiteCache) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS clients (
			id TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			cached_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS credentials (
			id TEXT PRIMARY KEY,
			client_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			cached_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_credentials_client_id ON credentials(client_id);
	`)
	return err
}

func (s *SQLiteCache) SaveClients(clients []clientdom.Client) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM clients`); err != nil {
		return fmt.Errorf("clear client cache: %w", err)
	}

	now := time.Now()
	for _, c := range clients {
		payload, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal client: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO clients (id, payload, cached_at) VALUES (?, ?, ?)`,
			c.ID, string(payload), now); err != nil {
			return fmt.Errorf("cache client: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteCache) LoadClients() ([]clientdom.Client, error) {
	rows, err := s.db.Query(`SELECT payload FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load client cache: %w", err)
	}
	defer rows.Close()

	var clients []clientdom.Client
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan cached client: %w", err)
		}
		var c clientdom.Client
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("unmarshal cached client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *SQLiteCache) SaveCredentials(clientID string, creds []credential.Credential) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer tx.Rollback()

	if clientID == "" {
		_, err = tx.Exec(`DELETE FROM credentials`)
	} else {
		_, err = tx.Exec(`DELETE FROM credentials WHERE client_id = ?`, clientID)
	}
	if err != nil {
		return fmt.Errorf("clear credential cache: %w", err)
	}

	now := time.Now()
	for _, c := range creds {
		payload, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal credential: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO credentials (id, client_id, payload, cached_at)
			 VALUES (?, ?, ?, ?)`,
			c.ID, c.ClientID, string(payload), now); err != nil {
			return fmt.Errorf("cache credential: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteCache) LoadCredentials(clientID string) ([]credential.Credential, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if clientID == "" {
		rows, err = s.db.Query(`SELECT payload FROM credentials ORDER BY id`)
	} else {
		rows, err = s.db.Query(`SELECT payload FROM credentials WHERE client_id = ? ORDER BY id`, clientID)
	}
	if err != nil {
		return nil, fmt.Errorf("load credential cache: %w", err)
	}
	defer rows.Close()

	var creds []credential.Credential
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan cached credential: %w", err)
		}
		var c credential.Credential
		if err := json.Unmarshal([]byte(payload), &c); err != nil {
			return nil, fmt.Errorf("unmarshal cached credential: %w", err)
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

func (s *SQLiteCache) Close() error {
	return s.db.Close()
}
