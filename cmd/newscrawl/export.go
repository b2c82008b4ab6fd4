package main

import (
	"fmt"

	"github.com/newsspeech/newscrawl"
	"github.com/newsspeech/newscrawl/crawl"
	"github.com/newsspeech/newscrawl/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	store := deps.Store
	if store == nil {
		var err error
		if store, err = openStore(deps.Ctx, deps.Config, deps.RunID, deps.Logger); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newscrawl.ErrorMessage(err))
			return err
		}
		if store == nil {
			fmt.Fprintln(deps.Stderr, "Hint: set --store or NEWSCRAWL_STORE to a reachable document store")
			return newscrawl.Errorf(newscrawl.EUNAVAILABLE, "document store unavailable")
		}
		defer closeStore(store, deps.Logger)
	}

	records, err := store.FindRecords(deps.Ctx, newscrawl.RecordFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newscrawl.ErrorMessage(err))
		return err
	}

	var file newscrawl.RecordWriter = deps.File
	if deps.File == nil {
		file = fs.NewRecordFile(deps.Config.OutputPath)
	}

	sink := &crawl.Sink{File: file, Logger: deps.Logger}
	result := sink.Persist(deps.Ctx, records)
	switch {
	case result.Skipped:
		fmt.Fprintln(deps.Stdout, "Document store is empty, nothing exported")
	case result.FileErr != nil:
		fmt.Fprintf(deps.Stderr, "error writing file: %v\n", result.FileErr)
		return result.FileErr
	default:
		fmt.Fprintf(deps.Stdout, "Exported %d records to %s\n", len(records), deps.Config.OutputPath)
	}
	return nil
}
