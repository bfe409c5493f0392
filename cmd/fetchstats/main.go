package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"

	"github.com/marsworks/marsblog/internal/stats"
)

var CLI struct {
	Out       string        `short:"o" help:"Path of the stats cache to write" default:"stats.json"`
	APIBase   string        `name:"api-base" help:"Mempool API base URL" env:"MARSBLOG_API_BASE" default:"https://mempool.space/api"`
	APIV1Base string        `name:"api-v1-base" help:"Mempool v1 API base URL" env:"MARSBLOG_API_V1_BASE" default:"https://mempool.space/api/v1"`
	Every     time.Duration `help:"Refresh interval, 0 fetches once and exits" default:"0"`
	Verbose   bool          `short:"v" help:"Enable verbose logging"`
}

func main() {
	// Optional .env for the API overrides.
	_ = godotenv.Load()

	kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	client := stats.NewClient(CLI.APIBase, CLI.APIV1Base)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if CLI.Every <= 0 {
		if err := fetchOnce(ctx, client); err != nil {
			slog.Error("Fetch failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runEvery(ctx, client, CLI.Every); err != nil {
		slog.Error("Stats refresh failed", "error", err)
		os.Exit(1)
	}
}

// fetchOnce gathers whatever the API answers, caches it and echoes the
// document to stdout. Endpoints that fail are logged and left out, only a
// cache write failure is an error.
func fetchOnce(ctx context.Context, client *stats.Client) error {
	slog.Info("Fetching network stats")
	snap := client.Fetch(ctx)

	slog.Info("Writing stats", "path", CLI.Out)
	data, err := stats.Write(CLI.Out, snap)
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}

func runEvery(ctx context.Context, client *stats.Client, every time.Duration) error {
	// First fetch happens right away, the scheduler handles the rest.
	if err := fetchOnce(ctx, client); err != nil {
		slog.Error("Fetch failed", "error", err)
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			if err := fetchOnce(ctx, client); err != nil {
				slog.Error("Fetch failed", "error", err)
			}
		}),
		gocron.WithName("fetch-stats"),
	)
	if err != nil {
		return fmt.Errorf("scheduling stats fetch: %w", err)
	}

	s.Start()
	slog.Info("Refreshing stats on interval", "every", every)

	<-ctx.Done()
	return s.Shutdown()
}
