package post

import (
	"regexp"

	"gopkg.in/yaml.v3"
)

// A front matter block is a "---" line, YAML, another "---" line, then the
// body. Documents without a complete block are all body, never an error.
var frontMatterRe = regexp.MustCompile(`(?s)\A---\s*\n(.*?)\n---\s*\n(.*)\z`)

// splitFrontMatter separates the YAML header from the Markdown body. An
// absent or unterminated header yields empty fields and the raw text as
// body; only YAML that fails to parse is an error.
func splitFrontMatter(raw []byte) (map[string]any, []byte, error) {
	m := frontMatterRe.FindSubmatch(raw)
	if m == nil {
		return map[string]any{}, raw, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(m[1], &fields); err != nil {
		return nil, nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, m[2], nil
}
