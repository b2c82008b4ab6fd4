package newscrawl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// Source identifies where a record was collected.
type Source string

// Source values. The strings are read by the mobile app and must not change.
const (
	SourceFeed  Source = "VnExpress"
	SourceForum Source = "Otofun"
)

// TimestampLayout is the ISO-8601 layout used for NewsRecord.Timestamp.
const TimestampLayout = time.RFC3339

// NewsRecord is a normalized article collected from either source.
type NewsRecord struct {
	ID        string  `json:"id" bson:"id"`
	Title     string  `json:"title" bson:"title"`
	Content   string  `json:"content" bson:"content"`
	Image     *string `json:"image" bson:"image"`
	Link      string  `json:"link" bson:"link"`
	Timestamp string  `json:"timestamp" bson:"timestamp"`
	Source    Source  `json:"source" bson:"source"`
	Category  string  `json:"category" bson:"category"`
}

// Validate returns an error if the record contains invalid fields.
func (r *NewsRecord) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return Errorf(EINVALID, "record title required")
	}
	if LooksLikeLink(r.Title) {
		return Errorf(EINVALID, "record title looks like a link: %q", r.Title)
	}
	if r.Link == "" {
		return Errorf(EINVALID, "record link required")
	}
	return nil
}

// LooksLikeLink reports whether a title is a raw link or markup fragment
// rather than a headline. Malformed feed entries sometimes carry one.
func LooksLikeLink(title string) bool {
	return strings.Contains(title, "http") || strings.Contains(strings.ToLower(title), "href")
}

// RecordID derives a record ID from the first capture group of pattern
// matched against link. When the link does not match, the ID is prefix
// followed by the first 16 hex characters of the SHA-256 of the link, which
// is stable across runs.
func RecordID(link string, pattern *regexp.Regexp, prefix string) string {
	if pattern != nil {
		if m := pattern.FindStringSubmatch(link); len(m) > 1 && m[1] != "" {
			return m[1]
		}
	}
	sum := sha256.Sum256([]byte(link))
	return prefix + hex.EncodeToString(sum[:])[:16]
}

// FormatTimestamp formats t for NewsRecord.Timestamp.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// RecordWriter writes a full batch of records, replacing prior contents.
type RecordWriter interface {
	WriteRecords(ctx context.Context, records []*NewsRecord) error
}

// RecordReader reads a previously written batch of records.
type RecordReader interface {
	ReadRecords(ctx context.Context) ([]*NewsRecord, error)
}
