package library

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Stream is a playable stream registered in the local catalog.
// At least one of KinopoiskID and IMDbID is set.
type Stream struct {
	ID          int64
	KinopoiskID *int64
	IMDbID      *string
	Title       string
	Quality     string
	URL         string
	AddedAt     time.Time
}

// StreamFilter specifies criteria for listing streams.
type StreamFilter struct {
	KinopoiskID *int64
	IMDbID      *string
	Limit       int // 0 = no limit
	Offset      int
}

const streamColumns = "id, kinopoisk_id, imdb_id, title, quality, url, added_at"

func scanStream(scan func(dest ...any) error) (*Stream, error) {
	s := &Stream{}
	if err := scan(&s.ID, &s.KinopoiskID, &s.IMDbID, &s.Title, &s.Quality, &s.URL, &s.AddedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func addStream(ctx context.Context, q querier, s *Stream) error {
	if s.KinopoiskID == nil && s.IMDbID == nil {
		return fmt.Errorf("insert stream: %w: a movie identifier is required", ErrConstraint)
	}
	now := time.Now().UTC().Truncate(time.Second)
	result, err := q.ExecContext(ctx, `
		INSERT INTO streams (kinopoisk_id, imdb_id, title, quality, url, added_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.KinopoiskID, s.IMDbID, s.Title, s.Quality, s.URL, now,
	)
	if err != nil {
		return fmt.Errorf("insert stream: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	s.ID = id
	s.AddedAt = now
	return nil
}

// AddStream inserts a stream. Sets ID and AddedAt on the struct.
// Returns ErrDuplicate if the URL is already registered.
func (s *Store) AddStream(ctx context.Context, st *Stream) error { return addStream(ctx, s.db, st) }

func getStream(ctx context.Context, q querier, id int64) (*Stream, error) {
	row := q.QueryRowContext(ctx, "SELECT "+streamColumns+" FROM streams WHERE id = ?", id)
	s, err := scanStream(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("get stream %d: %w", id, mapSQLiteError(err))
	}
	return s, nil
}

// GetStream retrieves a stream by ID within a transaction.
// Returns ErrNotFound if the stream does not exist.
func (t *Tx) GetStream(ctx context.Context, id int64) (*Stream, error) {
	return getStream(ctx, t.tx, id)
}

func listStreams(ctx context.Context, q querier, f StreamFilter) ([]*Stream, int, error) {
	var conditions []string
	var args []any

	if f.KinopoiskID != nil {
		conditions = append(conditions, "kinopoisk_id = ?")
		args = append(args, *f.KinopoiskID)
	}
	if f.IMDbID != nil {
		conditions = append(conditions, "imdb_id = ?")
		args = append(args, *f.IMDbID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM streams "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count streams: %w", err)
	}

	query := "SELECT " + streamColumns + " FROM streams " + whereClause + " ORDER BY id"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}
	results, err := queryStreams(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// ListStreams returns streams matching the filter with pagination.
// Returns (results, totalCount, error).
func (s *Store) ListStreams(ctx context.Context, f StreamFilter) ([]*Stream, int, error) {
	return listStreams(ctx, s.db, f)
}

// StreamsForMovie returns streams registered under either identifier, in
// insertion order. Zero or empty identifiers are ignored.
func (s *Store) StreamsForMovie(ctx context.Context, kinopoiskID int64, imdbID string) ([]*Stream, error) {
	var conditions []string
	var args []any
	if kinopoiskID > 0 {
		conditions = append(conditions, "kinopoisk_id = ?")
		args = append(args, kinopoiskID)
	}
	if imdbID != "" {
		conditions = append(conditions, "imdb_id = ?")
		args = append(args, imdbID)
	}
	if len(conditions) == 0 {
		return nil, nil
	}
	query := "SELECT " + streamColumns + " FROM streams WHERE " + strings.Join(conditions, " OR ") + " ORDER BY id"
	return queryStreams(ctx, s.db, query, args...)
}

func queryStreams(ctx context.Context, q querier, query string, args ...any) ([]*Stream, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list streams: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Stream
	for rows.Next() {
		s, err := scanStream(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan stream: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate streams: %w", err)
	}
	return results, nil
}

func deleteStream(ctx context.Context, q querier, id int64) error {
	result, err := q.ExecContext(ctx, "DELETE FROM streams WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete stream %d: %w", id, mapSQLiteError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete stream %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteStream removes a stream within a transaction.
// Returns ErrNotFound if it does not exist.
func (t *Tx) DeleteStream(ctx context.Context, id int64) error { return deleteStream(ctx, t.tx, id) }

// RemoveStream deletes a stream and returns what was removed.
// Returns ErrNotFound if the stream does not exist.
func (s *Store) RemoveStream(ctx context.Context, id int64) (*Stream, error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	st, err := tx.GetStream(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.DeleteStream(ctx, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return st, nil
}
