// Package post turns Markdown files with YAML front matter into fully
// rendered posts: HTML body, slug, URL, date, tags and a plain-text excerpt.
package post

import (
	"html/template"
	"time"
)

// Post is one published article, immutable once parsed.
type Post struct {
	Title    string
	Slug     string
	URL      string
	Category string
	Level    string
	Hero     string
	Date     time.Time
	Tags     []string
	HTML     template.HTML
	Excerpt  string
}

// Called from templates.
func (p *Post) FormatDate() string {
	return p.Date.Format("January 2, 2006")
}

func (p *Post) FormatDateShort() string {
	return p.Date.Format("Jan 2, 2006")
}

// FormatDateRFC822 renders the date the way RSS readers expect, always UTC.
func (p *Post) FormatDateRFC822() string {
	return p.Date.UTC().Format("Mon, 02 Jan 2006 15:04:05 +0000")
}

type Posts []*Post

func (ps Posts) latestDate() time.Time {
	var t time.Time
	for _, p := range ps {
		if p.Date.After(t) {
			t = p.Date
		}
	}
	return t
}
