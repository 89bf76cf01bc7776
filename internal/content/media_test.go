package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedia_URLShapesAgree(t *testing.T) {
	m := Media{Base: "https://cms.example.org"}
	const want = "https://cms.example.org/uploads/hall.jpg"

	shapes := map[string]string{
		"nested attributes": `{"data":{"attributes":{"url":"/uploads/hall.jpg"}}}`,
		"nested data url":   `{"data":{"url":"/uploads/hall.jpg"}}`,
		"flat object":       `{"url":"/uploads/hall.jpg"}`,
		"array of flat":     `[{"url":"/uploads/hall.jpg"},{"url":"/uploads/other.jpg"}]`,
		"array of nested":   `[{"attributes":{"url":"/uploads/hall.jpg"}}]`,
		"wrapped array":     `{"data":[{"id":1,"attributes":{"url":"/uploads/hall.jpg"}}]}`,
	}
	for name, src := range shapes {
		t.Run(name, func(t *testing.T) {
			var v any
			require.NoError(t, json.Unmarshal([]byte(src), &v))
			assert.Equal(t, want, m.URL(v))
		})
	}
}

func TestMedia_URLMissing(t *testing.T) {
	m := Media{Base: "https://cms.example.org"}
	for _, src := range []string{`null`, `{"data":null}`, `[]`, `{"data":[]}`, `{"url":null}`, `42`} {
		var v any
		require.NoError(t, json.Unmarshal([]byte(src), &v))
		assert.Equal(t, "", m.URL(v), src)
	}
}

func TestMedia_AbsoluteKept(t *testing.T) {
	m := Media{Base: "https://cms.example.org"}
	assert.Equal(t, "https://cdn.example.org/a.png", m.URL(map[string]any{"url": "https://cdn.example.org/a.png"}))
}
