package cms

import (
	"net/url"
	"strings"
)

// Query builds Strapi REST query parameters. Parameters are encoded in the
// order they were added so the same query always produces the same URL,
// which is also the cache key.
type Query struct {
	params [][2]string
}

// NewQuery returns an empty query.
func NewQuery() Query {
	return Query{}
}

func (q Query) with(key, value string) Query {
	params := make([][2]string, len(q.params), len(q.params)+1)
	copy(params, q.params)
	q.params = append(params, [2]string{key, value})
	return q
}

// Populate adds populate=<value>, usually "*".
func (q Query) Populate(value string) Query {
	return q.with("populate", value)
}

// PopulateDeep populates every field of a relation: populate[rel][populate]=*.
func (q Query) PopulateDeep(relation string) Query {
	return q.with("populate["+relation+"][populate]", "*")
}

// Sort adds sort=<a>,<b>; fields use Strapi's "field:asc" notation.
func (q Query) Sort(fields ...string) Query {
	if len(fields) == 0 {
		return q
	}
	return q.with("sort", strings.Join(fields, ","))
}

// Filter adds filters[field][op]=value, for example Filter("Published", "$eq", "true").
func (q Query) Filter(field, op, value string) Query {
	return q.with("filters["+field+"]["+op+"]", value)
}

// Encode renders the query string without the leading "?".
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q.params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeKey(p[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
	}
	return b.String()
}

// escapeKey leaves Strapi's bracket syntax readable; brackets are legal in a
// query string and Strapi's qs parser accepts them either way.
func escapeKey(key string) string {
	escaped := url.QueryEscape(key)
	return strings.NewReplacer("%5B", "[", "%5D", "]", "%24", "$").Replace(escaped)
}

// Request is a relative API path plus its query.
type Request struct {
	Path  string
	Query Query
}

// String is the path and query as it appears after /api.
func (r Request) String() string {
	path := "/" + strings.TrimLeft(r.Path, "/")
	if qs := r.Query.Encode(); qs != "" {
		return path + "?" + qs
	}
	return path
}
