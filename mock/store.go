package mock

import (
	"context"

	"github.com/newsspeech/newscrawl"
)

var (
	_ newscrawl.RecordStore  = (*RecordStore)(nil)
	_ newscrawl.RecordFinder = (*RecordFinder)(nil)
	_ newscrawl.RecordWriter = (*RecordWriter)(nil)
	_ newscrawl.RecordReader = (*RecordReader)(nil)
)

// RecordStore is a mock implementation of newscrawl.RecordStore.
type RecordStore struct {
	ReplaceRecordsFn func(ctx context.Context, records []*newscrawl.NewsRecord) error
	FindRecordsFn    func(ctx context.Context, filter newscrawl.RecordFilter) ([]*newscrawl.NewsRecord, error)
	CloseFn          func() error
}

func (s *RecordStore) ReplaceRecords(ctx context.Context, records []*newscrawl.NewsRecord) error {
	return s.ReplaceRecordsFn(ctx, records)
}

func (s *RecordStore) FindRecords(ctx context.Context, filter newscrawl.RecordFilter) ([]*newscrawl.NewsRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordStore) Close() error {
	return s.CloseFn()
}

// RecordFinder is a mock implementation of newscrawl.RecordFinder.
type RecordFinder struct {
	FindRecordsFn func(ctx context.Context, filter newscrawl.RecordFilter) ([]*newscrawl.NewsRecord, error)
}

func (f *RecordFinder) FindRecords(ctx context.Context, filter newscrawl.RecordFilter) ([]*newscrawl.NewsRecord, error) {
	return f.FindRecordsFn(ctx, filter)
}

// RecordWriter is a mock implementation of newscrawl.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []*newscrawl.NewsRecord) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []*newscrawl.NewsRecord) error {
	return w.WriteRecordsFn(ctx, records)
}

// RecordReader is a mock implementation of newscrawl.RecordReader.
type RecordReader struct {
	ReadRecordsFn func(ctx context.Context) ([]*newscrawl.NewsRecord, error)
}

func (r *RecordReader) ReadRecords(ctx context.Context) ([]*newscrawl.NewsRecord, error) {
	return r.ReadRecordsFn(ctx)
}
