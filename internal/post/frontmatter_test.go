package post

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitFrontMatter_NoBlock_AllBody(t *testing.T) {
	raw := []byte("# Heading\n\nJust markdown.\n")

	fields, body, err := splitFrontMatter(raw)

	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, raw, body)
}

func TestSplitFrontMatter_ValidBlock_SplitsFields(t *testing.T) {
	raw := []byte("---\ntitle: Hello\ntags: a, b\n---\nbody text\n")

	fields, body, err := splitFrontMatter(raw)

	require.NoError(t, err)
	require.Equal(t, "Hello", fields["title"])
	require.Equal(t, "a, b", fields["tags"])
	require.Equal(t, "body text\n", string(body))
}

func TestSplitFrontMatter_UnclosedBlock_AllBody(t *testing.T) {
	raw := []byte("---\ntitle: Hello\n\nbody without a closing fence\n")

	fields, body, err := splitFrontMatter(raw)

	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, raw, body)
}

func TestSplitFrontMatter_EmptyBlock_EmptyFields(t *testing.T) {
	fields, body, err := splitFrontMatter([]byte("---\n\n---\nbody\n"))

	require.NoError(t, err)
	require.NotNil(t, fields)
	require.Empty(t, fields)
	require.Equal(t, "body\n", string(body))
}

func TestSplitFrontMatter_FencesWithoutContent_AllBody(t *testing.T) {
	raw := []byte("---\n---\nbody\n")

	fields, body, err := splitFrontMatter(raw)

	require.NoError(t, err)
	require.Empty(t, fields)
	require.Equal(t, raw, body)
}

func TestSplitFrontMatter_MalformedYAML_ReturnsError(t *testing.T) {
	raw := []byte("---\ntitle: [unclosed\n---\nbody\n")

	_, _, err := splitFrontMatter(raw)

	require.Error(t, err)
}
