// Package config loads the site-wide settings file. Every field is optional
// and carries a documented default, so a minimal site.yml only needs the
// site section.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Site identifies the published site and its URL layout. BaseURL is the
// path prefix the site is served under ("/blog" on a project page, "" at
// the root); URL is the absolute origin used for feed links.
type Site struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	AuthorURL   string `yaml:"author_url"`
	URL         string `yaml:"url"`
	BaseURL     string `yaml:"base_url"`
}

// Content holds the build inputs and outputs. Relative paths are resolved
// against the directory of the config file.
type Content struct {
	PostsDir     string `yaml:"posts_dir"`     // default content/posts
	TemplatesDir string `yaml:"templates_dir"` // default templates
	AssetsDir    string `yaml:"assets_dir"`    // default assets
	OutDir       string `yaml:"output_dir"`    // default dist
	StatsFile    string `yaml:"stats_file"`    // default stats.json

	ExcerptLimit int `yaml:"excerpt_limit"` // default 180 characters
	HomePosts    int `yaml:"home_posts"`    // default 12
	FeedPosts    int `yaml:"feed_posts"`    // default 20

	DefaultCategory string `yaml:"default_category"` // default "mining"
	DefaultLevel    string `yaml:"default_level"`    // default "1-1"
}

type Config struct {
	Site    Site           `yaml:"site"`
	Theme   map[string]any `yaml:"theme"`
	Content Content        `yaml:"content"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading site config: %w", err)
	}

	conf := Config{}
	if err := yaml.Unmarshal(raw, &conf); err != nil {
		return nil, fmt.Errorf("invalid site config %v: %w", path, err)
	}

	// Populate with defaults.
	if conf.Theme == nil {
		conf.Theme = map[string]any{}
	}
	if conf.Content.PostsDir == "" {
		conf.Content.PostsDir = filepath.Join("content", "posts")
	}
	if conf.Content.TemplatesDir == "" {
		conf.Content.TemplatesDir = "templates"
	}
	if conf.Content.AssetsDir == "" {
		conf.Content.AssetsDir = "assets"
	}
	if conf.Content.OutDir == "" {
		conf.Content.OutDir = "dist"
	}
	if conf.Content.StatsFile == "" {
		conf.Content.StatsFile = "stats.json"
	}
	if conf.Content.ExcerptLimit == 0 {
		conf.Content.ExcerptLimit = 180
	}
	if conf.Content.HomePosts == 0 {
		conf.Content.HomePosts = 12
	}
	if conf.Content.FeedPosts == 0 {
		conf.Content.FeedPosts = 20
	}
	if conf.Content.DefaultCategory == "" {
		conf.Content.DefaultCategory = "mining"
	}
	if conf.Content.DefaultLevel == "" {
		conf.Content.DefaultLevel = "1-1"
	}

	// Normalize relative paths because the binary can be invoked from anywhere.
	baseDir := filepath.Dir(path)
	conf.Content.PostsDir = normalizePath(conf.Content.PostsDir, baseDir)
	conf.Content.TemplatesDir = normalizePath(conf.Content.TemplatesDir, baseDir)
	conf.Content.AssetsDir = normalizePath(conf.Content.AssetsDir, baseDir)
	conf.Content.OutDir = normalizePath(conf.Content.OutDir, baseDir)
	conf.Content.StatsFile = normalizePath(conf.Content.StatsFile, baseDir)

	return &conf, nil
}

func normalizePath(path, baseDir string) string {
	if !filepath.IsAbs(path) {
		return filepath.Join(baseDir, path)
	}
	return path
}
