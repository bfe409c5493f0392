package site

import (
	"fmt"
	"log/slog"
	"os"
)

// beginStaging creates the directory a build renders into. A stale staging
// directory from an interrupted build is discarded first.
func (s *Site) beginStaging() (string, error) {
	stage := s.conf.Content.OutDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return "", fmt.Errorf("clearing staging directory: %w", err)
	}
	if err := os.MkdirAll(stage, 0o775); err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}
	slog.Debug("Created staging directory", "path", stage)
	return stage, nil
}

// finalizeStaging promotes the staging directory to the output directory.
// The previous output is moved aside first so the swap is a rename, not a
// delete-then-rebuild window.
func (s *Site) finalizeStaging(stage string) error {
	out := s.conf.Content.OutDir
	prev := out + ".prev"

	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("removing old backup %v: %w", prev, err)
	}
	if _, err := os.Stat(out); err == nil {
		if err := os.Rename(out, prev); err != nil {
			return fmt.Errorf("backing up existing output %v: %w", out, err)
		}
	}
	if err := os.Rename(stage, out); err != nil {
		return fmt.Errorf("promoting staging directory %v: %w", stage, err)
	}
	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Could not remove backup of previous output", "path", prev, "error", err)
	}

	slog.Info("Wrote site", "output", out)
	return nil
}

// abortStaging discards a failed build, leaving the previous output as is.
func (s *Site) abortStaging(stage string) {
	if err := os.RemoveAll(stage); err != nil {
		slog.Warn("Could not remove staging directory", "path", stage, "error", err)
	}
}
