package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="title">Title</h1>`)
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderGFM(t *testing.T) {
	out, err := Render("| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n\n- [x] done")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<del>gone</del>")
	assert.Contains(t, out, `type="checkbox"`)
}

func TestRenderDropsRawHTML(t *testing.T) {
	out, err := Render("<script>alert(1)</script>\n\nok")
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "<script>"))
	assert.Contains(t, string(RenderHTML("ok")), "<p>ok</p>")
}
