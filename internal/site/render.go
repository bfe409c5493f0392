package site

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/marsworks/marsblog/internal/config"
	"github.com/marsworks/marsblog/internal/post"
	"github.com/marsworks/marsblog/internal/stats"
)

const baseTemplate = "base.html"

// baseParam carries the context every template sees.
type baseParam struct {
	Site    config.Site
	Theme   map[string]any
	BaseURL string
	Stats   stats.Snapshot
}

type listParam struct {
	baseParam
	Posts post.Posts
}

type postParam struct {
	baseParam
	Post *post.Post
}

type feedParam struct {
	baseParam
	Posts     post.Posts
	BuildDate string
}

type templateEngine struct {
	templateDir   string
	funcs         template.FuncMap
	templateCache map[string]*template.Template
}

func newTemplateEngine(templateDir string, funcs template.FuncMap) *templateEngine {
	return &templateEngine{
		templateDir:   templateDir,
		funcs:         funcs,
		templateCache: make(map[string]*template.Template),
	}
}

func (e *templateEngine) renderIndex(p listParam, w io.Writer) error {
	return e.renderPage("index.html", p, w)
}

func (e *templateEngine) renderArchive(p listParam, w io.Writer) error {
	return e.renderPage("archive.html", p, w)
}

func (e *templateEngine) renderAbout(p baseParam, w io.Writer) error {
	return e.renderPage("about.html", p, w)
}

func (e *templateEngine) renderPost(p postParam, w io.Writer) error {
	return e.renderPage("post.html", p, w)
}

// renderPage executes the base template, which pulls in the page template
// through its content block.
func (e *templateEngine) renderPage(name string, data any, w io.Writer) error {
	t, err := e.getTemplate(name, true)
	if err != nil {
		return err
	}
	if err := t.ExecuteTemplate(w, baseTemplate, data); err != nil {
		return fmt.Errorf("rendering template %v: %w", name, err)
	}
	return nil
}

// The feed stands alone, it shares no markup with the pages.
func (e *templateEngine) renderFeed(p feedParam, w io.Writer) error {
	t, err := e.getTemplate("feed.xml", false)
	if err != nil {
		return err
	}
	if err := t.ExecuteTemplate(w, "feed.xml", p); err != nil {
		return fmt.Errorf("rendering template feed.xml: %w", err)
	}
	return nil
}

func (e *templateEngine) getTemplate(name string, withBase bool) (*template.Template, error) {
	if t, ok := e.templateCache[name]; ok {
		return t, nil
	}

	files := []string{filepath.Join(e.templateDir, name)}
	if withBase {
		files = append(files, filepath.Join(e.templateDir, baseTemplate))
	}
	t, err := template.New(name).Funcs(e.funcs).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("loading template %v: %w", name, err)
	}

	e.templateCache[name] = t
	return t, nil
}
