package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/newsspeech/newscrawl"
)

// Compile-time interface verification.
var _ newscrawl.RecordStore = (*Store)(nil)

// Store implements newscrawl.RecordStore using SQLite. Records keep their
// batch order through the position column.
type Store struct {
	db    *DB
	runID string
}

// NewStore creates a Store on an open DB. runID tags every inserted row.
func NewStore(db *DB, runID string) *Store {
	return &Store{db: db, runID: runID}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// ReplaceRecords deletes every row and inserts records in one transaction.
func (s *Store) ReplaceRecords(ctx context.Context, records []*newscrawl.NewsRecord) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return newscrawl.Errorf(newscrawl.ESTORE, "begin: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return newscrawl.Errorf(newscrawl.ESTORE, "delete records: %v", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (position, id, title, content, image, link, timestamp, source, category, content_hash, run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return newscrawl.Errorf(newscrawl.ESTORE, "prepare insert: %v", err)
	}
	defer stmt.Close()

	for i, r := range records {
		var image sql.NullString
		if r.Image != nil {
			image = sql.NullString{String: *r.Image, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, r.ID, r.Title, r.Content, image, r.Link,
			r.Timestamp, string(r.Source), r.Category, hashContent(r.Content), s.runID); err != nil {
			return newscrawl.Errorf(newscrawl.ESTORE, "insert record %s: %v", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return newscrawl.Errorf(newscrawl.ESTORE, "commit: %v", err)
	}
	return nil
}

// FindRecords retrieves records matching the filter in batch order.
func (s *Store) FindRecords(ctx context.Context, filter newscrawl.RecordFilter) ([]*newscrawl.NewsRecord, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id, title, content, image, link, timestamp, source, category
		FROM records
		WHERE 1 = 1`)

	var args []any
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, string(*filter.Source))
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, *filter.Category)
	}
	query.WriteString(" ORDER BY position")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, newscrawl.Errorf(newscrawl.ESTORE, "query records: %v", err)
	}
	defer rows.Close()

	records := make([]*newscrawl.NewsRecord, 0)
	for rows.Next() {
		var r newscrawl.NewsRecord
		var image sql.NullString
		var source string
		if err := rows.Scan(&r.ID, &r.Title, &r.Content, &image, &r.Link, &r.Timestamp, &source, &r.Category); err != nil {
			return nil, newscrawl.Errorf(newscrawl.ESTORE, "scan record: %v", err)
		}
		if image.Valid {
			r.Image = &image.String
		}
		r.Source = newscrawl.Source(source)
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, newscrawl.Errorf(newscrawl.ESTORE, "read records: %v", err)
	}

	return records, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
