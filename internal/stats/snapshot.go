// Package stats fetches Bitcoin and Lightning network statistics from a
// mempool.space compatible API and caches them as JSON for the site build.
package stats

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
)

// Group is one flat set of named stats. Values are numbers or preformatted
// strings; templates pick fields by name and skip the ones that are absent.
type Group map[string]any

// Snapshot is the cache document, one group per network.
type Snapshot struct {
	Bitcoin   Group `json:"bitcoin"`
	Lightning Group `json:"lightning"`
}

func emptySnapshot() Snapshot {
	return Snapshot{Bitcoin: Group{}, Lightning: Group{}}
}

// Load reads a previously written snapshot. The cache is best effort: a
// missing, unreadable or corrupt file yields empty groups, never an error.
func Load(path string) Snapshot {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Ignoring unreadable stats cache", "path", path, "error", err)
		}
		return emptySnapshot()
	}

	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.Warn("Ignoring corrupt stats cache", "path", path, "error", err)
		return emptySnapshot()
	}
	if s.Bitcoin == nil {
		s.Bitcoin = Group{}
	}
	if s.Lightning == nil {
		s.Lightning = Group{}
	}
	return s
}

// Write overwrites the cache file in place and returns the encoded
// document. The cache is not transactional, so no temp-file dance here.
func Write(path string, s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o664); err != nil {
		return nil, err
	}
	return data, nil
}
