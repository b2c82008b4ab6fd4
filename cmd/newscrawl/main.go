package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/newsspeech/newscrawl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// EnvFile is loaded into the environment before flags are parsed.
	// Empty disables it. A missing file is ignored.
	EnvFile string

	// Ingesters for end-to-end testing. Nil wires the real ones.
	Feed  newscrawl.FeedIngester
	Forum newscrawl.ForumIngester
	Store newscrawl.RecordStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if m.EnvFile != "" {
		if err := godotenv.Load(m.EnvFile); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", m.EnvFile, err)
		}
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Feed:   m.Feed,
		Forum:  m.Forum,
		Store:  m.Store,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newscrawl"),
		kong.Description("Collect news from VnExpress and the Otofun forum into a JSON file and a document store."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(kong.JSON),
		kong.Vars(defaultVars()),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 {
		switch args[0] {
		case "help", "--help", "-h":
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.RunID = uuid.NewString()
	deps.Logger = newLogger(stderr, cli.LogLevel).With(slog.String("run", deps.RunID))
	deps.Config = cli.config()

	return kongCtx.Run(deps)
}

// newLogger returns a text logger writing to w at the named level.
// Unknown levels fall back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// defaultVars exposes DefaultConfig to flag defaults.
func defaultVars() kong.Vars {
	cfg := newscrawl.DefaultConfig()
	return kong.Vars{
		"feedCategories":  strings.Join(cfg.FeedCategories, ","),
		"forumCategories": strings.Join(cfg.ForumCategories, ","),
		"feedLimit":       fmt.Sprint(cfg.FeedLimitPerCategory),
		"forumLimit":      fmt.Sprint(cfg.ForumLimitPerCategory),
		"headless":        fmt.Sprint(cfg.Headless),
		"output":          cfg.OutputPath,
		"store":           cfg.StoreConnectionString,
		"storeDatabase":   cfg.StoreDatabase,
		"storeCollection": cfg.StoreCollection,
		"storeTimeout":    cfg.StoreConnectTimeout.String(),
		"extractor":       cfg.Extractor,
	}
}
