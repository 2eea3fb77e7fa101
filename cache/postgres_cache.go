package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresCache stores cached fingerprint streams in Postgres, grounded
// on the teacher's db.PostgresClient: sql.Open("pgx", dsn) against the
// stdlib-compatible driver jackc/pgx/v5/stdlib registers, the same
// pattern the teacher's db/postgres.go and db/client.go use for the
// song catalog itself.
type PostgresCache struct {
	db *sql.DB
}

func NewPostgresCache(ctx context.Context, dsn string) (*PostgresCache, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("shazoom: opening postgres cache connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("shazoom: connecting to postgres cache: %w", err)
	}

	const createTable = `
		CREATE TABLE IF NOT EXISTS fingerprint_cache (
			config_hash BIGINT NOT NULL,
			song_hash BIGINT NOT NULL,
			payload JSONB NOT NULL,
			PRIMARY KEY (config_hash, song_hash)
		)`
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return nil, fmt.Errorf("shazoom: creating postgres cache table: %w", err)
	}

	return &PostgresCache{db: db}, nil
}

func (c *PostgresCache) Close() error { return c.db.Close() }

func (c *PostgresCache) Get(ctx context.Context, key Key) ([]Entry, bool, error) {
	const query = `SELECT payload FROM fingerprint_cache WHERE config_hash = $1 AND song_hash = $2`

	var payload []byte
	err := c.db.QueryRowContext(ctx, query, int64(key.ConfigHash), int64(key.SongHash)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("shazoom: postgres cache lookup: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, false, fmt.Errorf("shazoom: postgres cache decode: %w", err)
	}
	return entries, true, nil
}

func (c *PostgresCache) Put(ctx context.Context, key Key, entries []Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("shazoom: postgres cache encode: %w", err)
	}

	const upsert = `
		INSERT INTO fingerprint_cache (config_hash, song_hash, payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (config_hash, song_hash) DO UPDATE SET payload = EXCLUDED.payload`
	_, err = c.db.ExecContext(ctx, upsert, int64(key.ConfigHash), int64(key.SongHash), payload)
	if err != nil {
		return fmt.Errorf("shazoom: postgres cache write: %w", err)
	}
	return nil
}
