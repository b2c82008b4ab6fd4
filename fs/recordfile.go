// Package fs provides file-based storage for collected records.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/newsspeech/newscrawl"
)

// Ensure RecordFile implements the record interfaces at compile time.
var (
	_ newscrawl.RecordWriter = (*RecordFile)(nil)
	_ newscrawl.RecordReader = (*RecordFile)(nil)
	_ newscrawl.RecordFinder = (*RecordFile)(nil)
)

// RecordFile stores a batch of records as one UTF-8 JSON array.
// Writes go to a temporary file in the same directory which is renamed over
// the target, so readers see either the previous batch or the new one.
type RecordFile struct {
	path string
}

// NewRecordFile creates a RecordFile at path.
func NewRecordFile(path string) *RecordFile {
	return &RecordFile{path: path}
}

// Path returns the target file path.
func (f *RecordFile) Path() string {
	return f.path
}

// WriteRecords replaces the file with records, creating parent directories
// as needed. The output is indented two spaces with non-ASCII text and HTML
// characters left unescaped.
func (f *RecordFile) WriteRecords(ctx context.Context, records []*newscrawl.NewsRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []*newscrawl.NewsRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// ReadRecords returns the records of the file in stored order.
// Returns ENOTFOUND when the file does not exist and EPARSE when it does
// not hold a JSON array of records.
func (f *RecordFile) ReadRecords(ctx context.Context) ([]*newscrawl.NewsRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, newscrawl.Errorf(newscrawl.ENOTFOUND, "record file %s not found", f.path)
	} else if err != nil {
		return nil, err
	}

	var records []*newscrawl.NewsRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, newscrawl.Errorf(newscrawl.EPARSE, "decode %s: %v", f.path, err)
	}
	return records, nil
}

// FindRecords reads the file and applies filter.
func (f *RecordFile) FindRecords(ctx context.Context, filter newscrawl.RecordFilter) ([]*newscrawl.NewsRecord, error) {
	records, err := f.ReadRecords(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(records), nil
}
