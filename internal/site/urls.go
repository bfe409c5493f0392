package site

import (
	"html/template"
	"strings"
	"time"
)

// makeURL prefixes a site-relative path with the base URL, so the same
// templates work at the domain root and under a subpath like /blog.
func makeURL(baseURL, path string) string {
	base := strings.TrimRight(baseURL, "/")
	if path == "/" {
		return base + "/"
	}
	return base + path
}

// Called from templates.
func (s *Site) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"url": func(path string) string {
			return makeURL(s.conf.Site.BaseURL, path)
		},
		"now": func() string {
			return time.Now().UTC().Format("2006")
		},
	}
}
