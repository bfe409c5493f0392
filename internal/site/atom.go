package site

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	atom "github.com/thomas11/atomgenerator"

	"github.com/marsworks/marsblog/internal/post"
)

// renderAtom writes the site-wide Atom feed plus one feed per category.
func (s *Site) renderAtom(stage string) error {
	sitePath := filepath.Join(stage, "atom.xml")
	if err := s.renderAndSaveFeed(s.conf.Site.Title, "/", sitePath, s.posts); err != nil {
		return err
	}

	for _, c := range post.GroupByCategory(s.posts) {
		title := s.conf.Site.Title + ` category "` + c.Category + `"`
		slug := post.Slugify(c.Category)
		path := filepath.Join(stage, "categories", slug+".xml")
		if err := s.renderAndSaveFeed(title, "/categories/"+slug+"/", path, c.Posts); err != nil {
			return err
		}
	}
	return nil
}

func (s *Site) buildFeed(title, relURL string, posts post.Posts) ([]byte, error) {
	feed := atom.Feed{
		Title:   title,
		Link:    s.absoluteURL(relURL),
		PubDate: time.Now(),
	}
	feed.AddAuthor(atom.Author{
		Name: s.conf.Site.Author,
		Uri:  s.conf.Site.AuthorURL,
	})

	for _, p := range posts {
		feed.AddEntry(s.entryForPost(p))
	}

	errs := feed.Validate()
	if len(errs) > 0 {
		slog.Error("Atom feed is not valid", "feed", title)
		for _, e := range errs {
			slog.Error(e.Error())
		}
		return nil, errs[0]
	}

	return feed.GenXml()
}

func (s *Site) entryForPost(p *post.Post) *atom.Entry {
	e := &atom.Entry{
		Title:       p.Title,
		Description: p.Excerpt,
		Link:        s.absoluteURL(p.URL),
		PubDate:     p.Date,
		Content:     string(p.HTML),
	}

	e.AddCategory(atom.Category{Term: p.Category})
	for _, tag := range p.Tags {
		e.AddCategory(atom.Category{Term: tag})
	}

	return e
}

func (s *Site) renderAndSaveFeed(title, relURL, path string, posts post.Posts) error {
	atomXML, err := s.buildFeed(title, relURL, posts)
	if err != nil {
		return err
	}
	return writeFile(path, atomXML)
}

// Feed links must be absolute, so the site URL joins the base URL here.
func (s *Site) absoluteURL(rel string) string {
	return strings.TrimRight(s.conf.Site.URL, "/") + makeURL(s.conf.Site.BaseURL, rel)
}
