package content

import "statehouse_site/internal/cms"

// Media resolves media fields to absolute URLs against the CMS origin.
type Media struct {
	Base string
}

// URL resolves a media value of any supported shape: {data: {attributes:
// {url}}}, {data: {url}}, {url}, a list of those, or a bare path. The result
// is "" when nothing resolves.
func (m Media) URL(v any) string {
	return cms.MediaURL(m.Base, mediaPath(v, 0))
}

func mediaPath(v any, depth int) string {
	if depth > maxDepth {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) == 0 {
			return ""
		}
		return mediaPath(t[0], depth+1)
	case map[string]any:
		if data, ok := t["data"]; ok {
			if p := mediaPath(data, depth+1); p != "" {
				return p
			}
		}
		if attrs, ok := t["attributes"].(map[string]any); ok {
			if p := mediaPath(attrs, depth+1); p != "" {
				return p
			}
		}
		if u, ok := t["url"].(string); ok {
			return u
		}
	}
	return ""
}
