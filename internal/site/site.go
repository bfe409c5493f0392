// Package site renders the fixed output set of the blog: the home page
// with the most recent posts, the archive, the about page, one directory
// per post, an RSS feed from the template set, and Atom feeds for the site
// and each category, plus a verbatim copy of the static assets.
//
// A build renders into a staging directory that replaces the previous
// output only after every page rendered, so a failed build never leaves a
// half-built tree behind.
package site

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/otiai10/copy"

	"github.com/marsworks/marsblog/internal/config"
	"github.com/marsworks/marsblog/internal/post"
	"github.com/marsworks/marsblog/internal/stats"
)

const rfc822BuildDate = "Mon, 02 Jan 2006 15:04:05 +0000"

// Site is everything one build needs: the configuration, the parsed posts
// newest first, and the stats snapshot if one was fetched.
type Site struct {
	conf  *config.Config
	posts post.Posts
	stats stats.Snapshot
}

func ReadSite(conf *config.Config) (*Site, error) {
	ps, err := post.ReadDir(conf.Content.PostsDir, post.Defaults{
		Category:     conf.Content.DefaultCategory,
		Level:        conf.Content.DefaultLevel,
		ExcerptLimit: conf.Content.ExcerptLimit,
	})
	if err != nil {
		return nil, err
	}

	return &Site{
		conf:  conf,
		posts: ps,
		stats: stats.Load(conf.Content.StatsFile),
	}, nil
}

// RenderAll builds the whole site into a staging directory and swaps it
// into place.
func (s *Site) RenderAll() error {
	stage, err := s.beginStaging()
	if err != nil {
		return err
	}

	if err := s.renderStage(stage); err != nil {
		s.abortStaging(stage)
		return err
	}

	return s.finalizeStaging(stage)
}

func (s *Site) renderStage(stage string) error {
	if err := s.copyStaticFiles(stage); err != nil {
		return err
	}
	if err := s.renderHTML(stage); err != nil {
		return err
	}
	return s.renderAtom(stage)
}

func (s *Site) renderHTML(stage string) error {
	engine := newTemplateEngine(s.conf.Content.TemplatesDir, s.templateFuncs())

	base := baseParam{
		Site:    s.conf.Site,
		Theme:   s.conf.Theme,
		BaseURL: s.conf.Site.BaseURL,
		Stats:   s.stats,
	}

	// Home page with the most recent posts.
	home := s.posts
	if len(home) > s.conf.Content.HomePosts {
		home = home[:s.conf.Content.HomePosts]
	}
	var b bytes.Buffer
	if err := engine.renderIndex(listParam{base, home}, &b); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(stage, "index.html"), b.Bytes()); err != nil {
		return err
	}

	// The archive lists everything.
	b.Reset()
	if err := engine.renderArchive(listParam{base, s.posts}, &b); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(stage, "archive", "index.html"), b.Bytes()); err != nil {
		return err
	}

	// The about page carries no post data.
	b.Reset()
	if err := engine.renderAbout(base, &b); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(stage, "about", "index.html"), b.Bytes()); err != nil {
		return err
	}

	// One directory per post, addressed by slug.
	for _, p := range s.posts {
		b.Reset()
		if err := engine.renderPost(postParam{base, p}, &b); err != nil {
			return err
		}
		if err := writeFile(filepath.Join(stage, "posts", p.Slug, "index.html"), b.Bytes()); err != nil {
			return err
		}
	}

	return s.renderFeed(stage, engine, base)
}

// renderFeed writes the RSS document from the template set with the most
// recent posts and a build timestamp.
func (s *Site) renderFeed(stage string, engine *templateEngine, base baseParam) error {
	feed := s.posts
	if len(feed) > s.conf.Content.FeedPosts {
		feed = feed[:s.conf.Content.FeedPosts]
	}

	var b bytes.Buffer
	p := feedParam{
		baseParam: base,
		Posts:     feed,
		BuildDate: time.Now().UTC().Format(rfc822BuildDate),
	}
	if err := engine.renderFeed(p, &b); err != nil {
		return err
	}
	return writeFile(filepath.Join(stage, "feed.xml"), b.Bytes())
}

func (s *Site) copyStaticFiles(stage string) error {
	src := s.conf.Content.AssetsDir
	dest := filepath.Join(stage, "assets")
	slog.Debug("Copying static files", "from", src, "to", dest)
	return copy.Copy(src, dest)
}

// writeFile creates parent directories as needed; the output tree nests
// archive/, about/ and posts/<slug>/.
func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o775); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o664)
}
