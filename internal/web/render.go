// Package web holds the server-rendered public pages.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/gin-gonic/gin/render"
	"github.com/shopspring/decimal"

	"dinoverse/internal/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages lists every page template. Each is parsed together with layout.html.
var Pages = []string{
	"home",
	"blog_list",
	"blog_post",
	"portfolio",
	"services",
	"store",
	"contact",
	"thanks",
	"not_found",
}

// Renderer implements gin's HTMLRender with one template set per page, so
// every page can define its own "content" block.
type Renderer struct {
	pages map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	layout, err := fs.ReadFile(templateFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, name := range Pages {
		body, err := fs.ReadFile(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		t, err := template.New("layout").Funcs(funcs).Parse(string(layout))
		if err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
		if _, err := t.Parse(string(body)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages["not_found"]
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}

var funcs = template.FuncMap{
	"markdown": markdown.RenderHTML,
	"date": func(t any) string {
		switch v := t.(type) {
		case time.Time:
			return v.Format("2 Jan 2006")
		case *time.Time:
			if v == nil {
				return ""
			}
			return v.Format("2 Jan 2006")
		}
		return ""
	},
	"money": func(d any) string {
		switch v := d.(type) {
		case decimal.Decimal:
			return v.StringFixed(2)
		case *decimal.Decimal:
			if v == nil {
				return ""
			}
			return v.StringFixed(2)
		}
		return ""
	},
	"year": func() int { return time.Now().Year() },
}

// Section decodes a site content payload for templates. Malformed payloads
// decode to an empty map.
func Section(raw json.RawMessage) map[string]any {
	out := map[string]any{}
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
