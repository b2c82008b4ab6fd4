package newscrawl

import "context"

// RecordFinder queries collected records.
type RecordFinder interface {
	// FindRecords returns records matching the filter in insertion order.
	// Store-internal identifiers are never exposed.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*NewsRecord, error)
}

// RecordStore persists records in a document collection.
type RecordStore interface {
	RecordFinder

	// ReplaceRecords deletes every existing document and inserts records.
	// Failures return ESTORE.
	ReplaceRecords(ctx context.Context, records []*NewsRecord) error

	// Close releases the connection.
	Close() error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	Source   *Source `json:"source"`
	Category *string `json:"category"`

	Limit int `json:"limit"`
}

// Match reports whether r passes the filter. Limit is not considered.
func (f RecordFilter) Match(r *NewsRecord) bool {
	if f.Source != nil && r.Source != *f.Source {
		return false
	}
	if f.Category != nil && r.Category != *f.Category {
		return false
	}
	return true
}

// Apply returns the records of rs passing the filter, at most Limit of them
// when Limit is positive.
func (f RecordFilter) Apply(rs []*NewsRecord) []*NewsRecord {
	out := make([]*NewsRecord, 0, len(rs))
	for _, r := range rs {
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
