package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/katakuxiko/biz-rag-backend/internal/metrics"
)

// PgStore — документы пользователей в таблице documents (только чтение)
type PgStore struct {
	db *sql.DB
}

func NewPgStore(ctx context.Context, conn string) (*PgStore, error) {
	db, err := sql.Open("postgres", conn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PgStore{db: db}, nil
}

// NewPgStoreFromDB — для уже открытого соединения, схема не трогается
func NewPgStoreFromDB(db *sql.DB) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) Fetch(ctx context.Context, userID string) (doc []byte, err error) {
	defer func(start time.Time) {
		metrics.ObserveVendor(metrics.VendorStorage, start, err)
	}(time.Now())

	err = s.db.QueryRowContext(ctx,
		`SELECT content FROM documents WHERE user_id = $1`, userID,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}
	return doc, nil
}

func (s *PgStore) Close() error {
	return s.db.Close()
}
