package web

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererParsesEveryPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Len(t, r.pages, len(Pages))
}

func TestRenderBlogPost(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	published := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	post := struct {
		Title, Content, Author, CoverImage string
		PublishedAt                        *time.Time
		Tags                               []string
	}{Title: "Hello", Content: "Some **bold** words", Author: "Ann", PublishedAt: &published, Tags: []string{"go"}}

	w := httptest.NewRecorder()
	require.NoError(t, r.Instance("blog_post", gin.H{"Title": "Hello", "Post": post}).Render(w))
	body := w.Body.String()
	assert.Contains(t, body, "<title>Hello | Dinoverse</title>")
	assert.Contains(t, body, "<strong>bold</strong>")
	assert.Contains(t, body, "5 Mar 2024")
	assert.Contains(t, body, `href="/blog?tag=go"`)
}

func TestUnknownPageFallsBackToNotFound(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	w := httptest.NewRecorder()
	require.NoError(t, r.Instance("missing", gin.H{}).Render(w))
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestFuncs(t *testing.T) {
	money := funcs["money"].(func(any) string)
	d := decimal.RequireFromString("12.5")
	assert.Equal(t, "12.50", money(d))
	assert.Equal(t, "12.50", money(&d))
	assert.Equal(t, "", money((*decimal.Decimal)(nil)))

	date := funcs["date"].(func(any) string)
	assert.Equal(t, "", date((*time.Time)(nil)))
}

func TestSection(t *testing.T) {
	assert.Equal(t, "Hi", Section([]byte(`{"title":"Hi"}`))["title"])
	assert.Empty(t, Section([]byte(`not json`)))
	assert.Empty(t, Section(nil))
}
