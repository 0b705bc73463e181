// Package analytics persists a record of every generated artifact for
// usage tracking.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/careerpilot/internal/types"
)

// Record is one stored generation event
type Record struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      types.GenerationKind
	Content   string
	CreatedAt time.Time
}

// Recorder stores generation events. Recording is best-effort from the
// caller's perspective: generation results are returned whether or not the
// record lands.
type Recorder interface {
	Record(ctx context.Context, userID uuid.UUID, kind types.GenerationKind, content string) (uuid.UUID, error)
}

// Store wraps a PostgreSQL connection pool
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Record stores one generation event and returns its ID
func (s *Store) Record(ctx context.Context, userID uuid.UUID, kind types.GenerationKind, content string) (uuid.UUID, error) {
	if !kind.Valid() {
		return uuid.Nil, fmt.Errorf("unknown generation kind: %s", kind)
	}

	var id uuid.UUID
	err := s.pool.QueryRow(ctx,
		`INSERT INTO ai_analytics (user_id, generation_type, content)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, string(kind), content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record generation: %w", err)
	}
	return id, nil
}

// ListRecent returns a user's generation records, newest first
func (s *Store) ListRecent(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, generation_type, content, created
		 FROM ai_analytics
		 WHERE user_id = $1 AND is_active
		 ORDER BY created DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var kind string
		if err := rows.Scan(&r.ID, &r.UserID, &kind, &r.Content, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Kind = types.GenerationKind(kind)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// CountByKind returns per-kind totals for a user
func (s *Store) CountByKind(ctx context.Context, userID uuid.UUID) (map[types.GenerationKind]int, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT generation_type, COUNT(*)
		 FROM ai_analytics
		 WHERE user_id = $1 AND is_active
		 GROUP BY generation_type`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.GenerationKind]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[types.GenerationKind(kind)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read counts: %w", err)
	}
	return counts, nil
}

// NopRecorder discards records, for deployments without a database
type NopRecorder struct{}

// Record returns a fresh ID without storing anything
func (NopRecorder) Record(_ context.Context, _ uuid.UUID, _ types.GenerationKind, _ string) (uuid.UUID, error) {
	return uuid.New(), nil
}
