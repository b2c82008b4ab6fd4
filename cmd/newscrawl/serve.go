package main

import (
	"fmt"

	"github.com/newsspeech/newscrawl"
	"github.com/newsspeech/newscrawl/fs"
	newshttp "github.com/newsspeech/newscrawl/http"
)

// Run executes the serve command. Records come from the document store
// when it is reachable, else from the JSON file.
func (c *ServeCmd) Run(deps *Dependencies) error {
	var finder newscrawl.RecordFinder
	if !c.FromFile {
		store := deps.Store
		if store == nil {
			var err error
			if store, err = openStore(deps.Ctx, deps.Config, deps.RunID, deps.Logger); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", newscrawl.ErrorMessage(err))
				return err
			}
			defer closeStore(store, deps.Logger)
		}
		if store != nil {
			finder = store
		}
	}
	if finder == nil {
		if deps.File != nil {
			finder = deps.File
		} else {
			finder = fs.NewRecordFile(deps.Config.OutputPath)
		}
		deps.Logger.Info("serving JSON file", "path", deps.Config.OutputPath)
	}

	server := newshttp.NewServer(finder, deps.Logger)
	if err := server.ListenAndServe(deps.Ctx, c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
