package post

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

type renderer interface {
	render(in []byte) (string, error)
}

// newMarkdownRenderer builds the converter for post bodies: tables,
// strikethrough and task lists on top of CommonMark, with raw inline HTML
// passed through. Front matter is stripped before the body gets here.
func newMarkdownRenderer() renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	return &goldmarkRenderer{md}
}

type goldmarkRenderer struct {
	md goldmark.Markdown
}

func (g *goldmarkRenderer) render(in []byte) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(in, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
