package post

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Defaults supplies fallbacks for optional front matter fields and the
// excerpt budget. Zero values fall back to the standard site defaults.
type Defaults struct {
	Category     string
	Level        string
	ExcerptLimit int
}

const dateStamp = "2006-01-02"

var fileDateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-`)

// ReadDir parses every Markdown file under dir and returns the posts newest
// first. Two posts resolving to the same slug would silently overwrite one
// another's output directory, so a collision aborts the read.
func ReadDir(dir string, d Defaults) (Posts, error) {
	if d.Category == "" {
		d.Category = "mining"
	}
	if d.Level == "" {
		d.Level = "1-1"
	}
	if d.ExcerptLimit <= 0 {
		d.ExcerptLimit = 180
	}

	files, err := findPostFiles(dir)
	if err != nil {
		return nil, err
	}

	md := newMarkdownRenderer()
	all := make(Posts, 0, len(files))
	bySlug := make(map[string]string, len(files))

	for _, f := range files {
		p, err := readPostFromFile(f, md, d)
		if err != nil {
			return nil, err
		}
		if prev, ok := bySlug[p.Slug]; ok {
			return nil, fmt.Errorf("duplicate slug %q in %v and %v", p.Slug, prev, f)
		}
		bySlug[p.Slug] = f
		all = append(all, p)
	}

	// Newest first.
	sort.SliceStable(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })

	return all, nil
}

func findPostFiles(dir string) ([]string, error) {
	files := make([]string, 0, 100)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			slog.Warn("Skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(path, ".md") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func readPostFromFile(path string, md renderer, d Defaults) (*Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fields, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid YAML front matter in %v: %w", path, err)
	}

	base := filepath.Base(path)
	title := fieldString(fields, "title")
	if title == "" {
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	date, err := resolveDate(fields["date"], base, path)
	if err != nil {
		return nil, err
	}

	slug := fieldString(fields, "slug")
	if slug == "" {
		slug = Slugify(title)
	}

	category := fieldString(fields, "category")
	if category == "" {
		category = d.Category
	}
	level := fieldString(fields, "level")
	if level == "" {
		level = d.Level
	}

	rendered, err := md.render(body)
	if err != nil {
		return nil, fmt.Errorf("rendering %v: %w", path, err)
	}

	return &Post{
		Title:    title,
		Slug:     slug,
		URL:      "/posts/" + slug + "/",
		Category: category,
		Level:    level,
		Hero:     fieldString(fields, "hero"),
		Date:     date,
		Tags:     tagList(fields["tags"]),
		HTML:     template.HTML(rendered),
		Excerpt:  extractExcerpt(rendered, d.ExcerptLimit),
	}, nil
}

// resolveDate prefers an explicit front matter date and falls back to a
// YYYY-MM-DD- filename prefix. Having neither is a fatal content error.
func resolveDate(v any, filename, path string) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		if s := strings.TrimSpace(d); s != "" {
			t, err := time.Parse(dateStamp, s)
			if err != nil {
				return time.Time{}, fmt.Errorf("post %v has invalid date %q, want YYYY-MM-DD", path, d)
			}
			return t, nil
		}
	case nil:
		// fall back to the filename
	default:
		return time.Time{}, fmt.Errorf("post %v has invalid date %v, want YYYY-MM-DD", path, v)
	}

	m := fileDateRe.FindStringSubmatch(filename)
	if m == nil {
		return time.Time{}, fmt.Errorf("post %v needs a date in front matter or a YYYY-MM-DD- filename prefix", path)
	}
	t, err := time.Parse(dateStamp, m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("post %v has invalid filename date %q: %w", path, m[1], err)
	}
	return t, nil
}

// fieldString coerces a scalar front matter value to a string, "" if absent.
func fieldString(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// tagList accepts either a comma separated string, split and trimmed with
// empty entries dropped, or a YAML list with every entry coerced to a
// string.
func tagList(v any) []string {
	switch t := v.(type) {
	case string:
		parts := strings.Split(t, ",")
		tags := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				tags = append(tags, p)
			}
		}
		return tags
	case []any:
		tags := make([]string, 0, len(t))
		for _, e := range t {
			tags = append(tags, fmt.Sprint(e))
		}
		return tags
	}
	return nil
}
