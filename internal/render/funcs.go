package render

import (
	"context"
	"html/template"
	"strings"
	"time"

	"statehouse_site/internal/richtext"
)

// Funcs is the template function map. media resolves image blocks.
func Funcs(media richtext.MediaFunc) template.FuncMap {
	blocks := richtext.Renderer{Media: media}
	return template.FuncMap{
		"blocks": func(b []richtext.Block) template.HTML {
			return blocks.HTML(context.Background(), b)
		},
		"hasBlocks": func(b []richtext.Block) bool {
			return len(b) > 0
		},
		"plain":    richtext.PlainText,
		"markdown": richtext.Markdown,
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"year": func() int {
			return time.Now().Year()
		},
		"lower": strings.ToLower,
	}
}
