package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// PostgresStore legger nøkkel/verdi-parene i én tabell med upsert.
// Tabellen opprettes ved åpning, så det trengs ingen egen migrering.
type PostgresStore struct {
	DB  *sql.DB
	ctx context.Context
}

const createKVTable = `
CREATE TABLE IF NOT EXISTS kontekst_kv (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Kunne ikke åpne PostgreSQL-database", "error", err)
		return nil, fmt.Errorf("kunne ikke åpne PostgreSQL-database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(10 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			slog.Warn("Klarte ikke å lukke database etter ping-feil", "error", cerr)
		}
		return nil, fmt.Errorf("DB ping-feil: %w", err)
	}

	if _, err := db.ExecContext(ctx, createKVTable); err != nil {
		if cerr := db.Close(); cerr != nil {
			slog.Warn("Klarte ikke å lukke database etter skjemafeil", "error", cerr)
		}
		return nil, fmt.Errorf("kunne ikke opprette kv-tabell: %w", err)
	}

	return &PostgresStore{DB: db, ctx: ctx}, nil
}

// SetContext brukes av tester som konstruerer butikken rundt en
// ferdig *sql.DB.
func (p *PostgresStore) SetContext(ctx context.Context) {
	p.ctx = ctx
}

func (p *PostgresStore) Get(key string) ([]byte, error) {
	var value []byte
	err := p.DB.QueryRowContext(p.ctx,
		`SELECT value FROM kontekst_kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Key: key, Op: "lesing", Err: err}
	}
	return value, nil
}

func (p *PostgresStore) Set(key string, value []byte) error {
	_, err := p.DB.ExecContext(p.ctx,
		`INSERT INTO kontekst_kv (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now()`,
		key, value)
	if err != nil {
		return &PersistenceError{Key: key, Op: "skriving", Err: err}
	}
	return nil
}

func (p *PostgresStore) Delete(key string) error {
	_, err := p.DB.ExecContext(p.ctx,
		`DELETE FROM kontekst_kv WHERE key = $1`, key)
	if err != nil {
		return &PersistenceError{Key: key, Op: "sletting", Err: err}
	}
	return nil
}

func (p *PostgresStore) Close() error {
	return p.DB.Close()
}
