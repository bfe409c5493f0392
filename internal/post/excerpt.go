package post

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// extractExcerpt reduces rendered HTML to plain text: tags dropped, script
// and style subtrees skipped, whitespace runs collapsed to single spaces.
// Text over the limit is cut at limit-1 runes and closed with an ellipsis,
// so the result never exceeds limit.
func extractExcerpt(rendered string, limit int) string {
	root, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	text := strings.Join(strings.Fields(b.String()), " ")
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:limit-1]), " ") + "…"
}
