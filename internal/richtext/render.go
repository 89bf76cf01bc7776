package richtext

import (
	"context"
	"html/template"
	"io"
	"iter"
	"strconv"

	"github.com/a-h/templ"
)

// MediaFunc resolves an image block's media value to an absolute URL.
type MediaFunc func(v any) string

// Renderer turns blocks into templ components.
type Renderer struct {
	Media MediaFunc
}

// Render yields one component per block, in order. The sequence is lazy and
// single-pass: ranging over it again resumes where the previous range
// stopped, so a fully consumed sequence yields nothing.
func (r Renderer) Render(blocks []Block) iter.Seq[templ.Component] {
	next := 0
	return func(yield func(templ.Component) bool) {
		for next < len(blocks) {
			b := blocks[next]
			next++
			c := r.block(b)
			if c == nil {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Document renders every block inside a rich-text container.
func (r Renderer) Document(blocks []Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(blocks) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, `<div class="rich-text">`); err != nil {
			return err
		}
		for c := range r.Render(blocks) {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// HTML renders blocks for html/template pages. Rendering errors yield "".
func (r Renderer) HTML(ctx context.Context, blocks []Block) template.HTML {
	out, err := templ.ToGoHTML(ctx, r.Document(blocks))
	if err != nil {
		return ""
	}
	return out
}

func (r Renderer) block(b Block) templ.Component {
	switch b.Type {
	case "paragraph":
		return element("p", b.Children)
	case "heading":
		level := b.Level
		if level < 1 || level > 6 {
			level = 2
		}
		return element("h"+strconv.Itoa(level), b.Children)
	case "list":
		return list(b.Format, b.Children)
	case "quote":
		return element("blockquote", b.Children)
	case "code":
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			hw := &htmlWriter{w: w}
			hw.raw("<pre><code>")
			hw.text(plain(b.Children))
			hw.raw("</code></pre>")
			return hw.err
		})
	case "image":
		if r.Media == nil {
			return nil
		}
		src := r.Media(b.Image)
		if src == "" {
			return nil
		}
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			hw := &htmlWriter{w: w}
			hw.raw(`<figure><img src="`)
			hw.text(string(templ.URL(src)))
			hw.raw(`" alt="`)
			hw.text(b.Alt)
			hw.raw(`" loading="lazy"></figure>`)
			return hw.err
		})
	default:
		return element("div", b.Children)
	}
}

func element(tag string, children []Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw("<" + tag + ">")
		hw.inline(children)
		hw.raw("</" + tag + ">")
		return hw.err
	})
}

func list(format string, items []Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.list(format, items)
		return hw.err
	})
}

type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) list(format string, items []Node) {
	tag := "ul"
	if format == "ordered" {
		tag = "ol"
	}
	h.raw("<" + tag + ">")
	for _, item := range items {
		if item.Type == "list" {
			h.list(item.Format, item.Children)
			continue
		}
		h.raw("<li>")
		h.inline(item.Children)
		h.raw("</li>")
	}
	h.raw("</" + tag + ">")
}

// inline writes text nodes with every style flag applied at once, innermost
// first: strong, em, u, s, code.
func (h *htmlWriter) inline(nodes []Node) {
	for _, n := range nodes {
		switch {
		case n.Type == "text":
			start, end := marks(n)
			h.raw(start)
			h.text(n.Text)
			h.raw(end)
		case n.Type == "link":
			h.raw(`<a href="`)
			h.text(string(templ.URL(n.URL)))
			h.raw(`">`)
			h.inline(n.Children)
			h.raw("</a>")
		case len(n.Children) > 0:
			h.raw("<span>")
			h.inline(n.Children)
			h.raw("</span>")
		}
	}
}

func marks(n Node) (start, end string) {
	wrap := func(on bool, tag string) {
		if on {
			start = "<" + tag + ">" + start
			end += "</" + tag + ">"
		}
	}
	wrap(n.Bold, "strong")
	wrap(n.Italic, "em")
	wrap(n.Underline, "u")
	wrap(n.Strikethrough, "s")
	wrap(n.Code, "code")
	return start, end
}

func plain(nodes []Node) string {
	var out string
	for _, n := range nodes {
		out += n.Text + plain(n.Children)
	}
	return out
}
