package content

import (
	"strconv"
	"strings"
)

// Slugify lower-cases s, collapses every run of characters outside [a-z0-9]
// into one hyphen and trims hyphens from both ends.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// IsBlankSlug reports slugs that must be regenerated.
func IsBlankSlug(slug string) bool {
	switch strings.TrimSpace(slug) {
	case "", "null", "undefined":
		return true
	}
	return false
}

// ResolveSlug keeps a usable slug, otherwise derives one from the title, and
// finally falls back to "<prefix>-<id>". Feeding the result back in returns it
// unchanged.
func ResolveSlug(raw, title, prefix string, id int) string {
	if !IsBlankSlug(raw) {
		return strings.TrimSpace(raw)
	}
	if s := Slugify(title); s != "" {
		return s
	}
	return prefix + "-" + strconv.Itoa(id)
}
