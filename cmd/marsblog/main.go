package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/radovskyb/watcher"

	"github.com/marsworks/marsblog/internal/config"
	"github.com/marsworks/marsblog/internal/site"
)

var CLI struct {
	Config  string `short:"c" help:"Path to the site configuration file" default:"site.yml"`
	Local   bool   `help:"Build with an empty base URL for local preview"`
	Watch   bool   `help:"Keep running and rebuild the site on input changes"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`
}

func main() {
	kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	conf, err := config.Load(CLI.Config)
	if err != nil {
		slog.Error("Failed to load site config", "error", err)
		os.Exit(1)
	}

	if CLI.Local {
		conf.Site.BaseURL = ""
		slog.Info("Building in local mode", "base_url", "")
	}

	if err := renderSite(conf); err != nil {
		slog.Error("Build failed", "error", err)
		os.Exit(1)
	}

	if CLI.Watch {
		rerenderOnChange(conf)
	}
}

func renderSite(conf *config.Config) error {
	s, err := site.ReadSite(conf)
	if err != nil {
		return err
	}

	slog.Info("Writing site", "output", conf.Content.OutDir)
	return s.RenderAll()
}

// rerenderOnChange blocks, rebuilding the whole site whenever the posts,
// templates, assets or the stats cache change. A failed rebuild leaves the
// previous output in place and keeps watching.
func rerenderOnChange(conf *config.Config) {
	slog.Info("Watching for changes",
		"posts", conf.Content.PostsDir,
		"templates", conf.Content.TemplatesDir,
		"assets", conf.Content.AssetsDir)

	w := watcher.New()
	w.SetMaxEvents(1)

	go func() {
		for {
			select {
			case <-w.Event:
				if err := renderSite(conf); err != nil {
					slog.Error("Rebuild failed", "error", err)
				}
			case err := <-w.Error:
				slog.Error("Watcher error", "error", err)
			case <-w.Closed:
				return
			}
		}
	}()

	for _, dir := range []string{conf.Content.PostsDir, conf.Content.TemplatesDir, conf.Content.AssetsDir} {
		if err := w.AddRecursive(dir); err != nil {
			slog.Error("Failed to watch directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}
	// The stats cache is optional, it may not exist yet.
	if err := w.Add(conf.Content.StatsFile); err != nil {
		slog.Debug("Not watching stats cache", "path", conf.Content.StatsFile, "error", err)
	}

	if err := w.Start(time.Millisecond * 200); err != nil {
		slog.Error("Watcher failed to start", "error", err)
		os.Exit(1)
	}
}
