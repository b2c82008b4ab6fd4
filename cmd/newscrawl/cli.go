package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/newsspeech/newscrawl"
)

// Dependencies holds all services and configuration for command execution.
// Nil services are wired by the command that needs them.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	RunID  string

	// Config holds the global options; commands add their own.
	Config newscrawl.Config

	Feed  newscrawl.FeedIngester
	Forum newscrawl.ForumIngester
	Store newscrawl.RecordStore
	File  RecordFile
}

// RecordFile is the JSON artifact.
type RecordFile interface {
	newscrawl.RecordWriter
	newscrawl.RecordFinder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   kong.ConfigFlag `help:"Load options from a JSON file" env:"NEWSCRAWL_CONFIG"`
	LogLevel string          `name:"log-level" default:"info" enum:"debug,info,warn,error" env:"NEWSCRAWL_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`

	Output          string        `short:"o" default:"${output}" env:"NEWSCRAWL_OUTPUT" help:"JSON output path"`
	Store           string        `default:"${store}" env:"NEWSCRAWL_STORE" help:"Document store: mongodb://..., sqlite:<path>, or empty for file only"`
	StoreDatabase   string        `default:"${storeDatabase}" env:"NEWSCRAWL_STORE_DATABASE" help:"MongoDB database"`
	StoreCollection string        `default:"${storeCollection}" env:"NEWSCRAWL_STORE_COLLECTION" help:"MongoDB collection"`
	StoreTimeout    time.Duration `default:"${storeTimeout}" env:"NEWSCRAWL_STORE_TIMEOUT" help:"Document store connectivity check timeout"`

	Run    RunCmd    `cmd:"" default:"withargs" help:"Collect all categories and replace the stored records (default)"`
	Export ExportCmd `cmd:"" help:"Write the document store contents to the JSON file"`
	Serve  ServeCmd  `cmd:"" help:"Serve the collected records over HTTP"`
}

// config returns the global options over DefaultConfig.
func (c *CLI) config() newscrawl.Config {
	cfg := newscrawl.DefaultConfig()
	cfg.OutputPath = c.Output
	cfg.StoreConnectionString = c.Store
	cfg.StoreDatabase = c.StoreDatabase
	cfg.StoreCollection = c.StoreCollection
	cfg.StoreConnectTimeout = c.StoreTimeout
	return cfg
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	FeedCategories  []string      `sep:"," default:"${feedCategories}" env:"NEWSCRAWL_FEED_CATEGORIES" help:"Feed categories, in order"`
	ForumCategories []string      `sep:"," default:"${forumCategories}" env:"NEWSCRAWL_FORUM_CATEGORIES" help:"Forum categories, in order"`
	SkipForum       bool          `env:"NEWSCRAWL_SKIP_FORUM" help:"Collect feed categories only"`
	FeedLimit       int           `default:"${feedLimit}" env:"NEWSCRAWL_FEED_LIMIT" help:"Records per feed category"`
	ForumLimit      int           `default:"${forumLimit}" env:"NEWSCRAWL_FORUM_LIMIT" help:"Records per forum category"`
	Headless        bool          `negatable:"" default:"${headless}" env:"NEWSCRAWL_HEADLESS" help:"Run the browser without a window"`
	Extractor       string        `default:"${extractor}" enum:"readability,trafilatura,none" env:"NEWSCRAWL_EXTRACTOR" help:"Generic article extractor (readability, trafilatura, none)"`
	Timeout         time.Duration `env:"NEWSCRAWL_TIMEOUT" help:"Stop starting new categories after this long (0 for none)"`
	FetchTimeout    time.Duration `default:"10s" env:"NEWSCRAWL_FETCH_TIMEOUT" help:"Per-request HTTP timeout"`
	UserAgent       string        `env:"NEWSCRAWL_USER_AGENT" help:"Browser user agent override"`
	MaxPages        int           `default:"20" env:"NEWSCRAWL_MAX_PAGES" help:"Forum listing pages per category"`
}

// config returns base with the run options applied.
func (c *RunCmd) config(base newscrawl.Config) newscrawl.Config {
	cfg := base
	cfg.FeedCategories = c.FeedCategories
	cfg.ForumCategories = c.ForumCategories
	if c.SkipForum {
		cfg.ForumCategories = nil
	}
	cfg.FeedLimitPerCategory = c.FeedLimit
	cfg.ForumLimitPerCategory = c.ForumLimit
	cfg.Headless = c.Headless
	cfg.Extractor = c.Extractor
	cfg.RunTimeout = c.Timeout
	return cfg
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr     string `default:":8080" env:"NEWSCRAWL_ADDR" help:"Listen address"`
	FromFile bool   `help:"Serve the JSON file even when the document store is reachable"`
}
