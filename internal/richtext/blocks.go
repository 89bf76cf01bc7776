// Package richtext renders the CMS's structured blocks format.
package richtext

import "strings"

// Block is one top-level node of a blocks document.
type Block struct {
	Type     string
	Level    int
	Format   string
	Image    any
	Alt      string
	Children []Node
}

// Node is an inline node, a list item, or a nested list.
type Node struct {
	Type          string
	Text          string
	URL           string
	Format        string
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Code          bool
	Children      []Node
}

// Parse reads decoded JSON into blocks. Anything that is not a list,
// including nil and plain strings, yields nil. Elements that are not objects
// are skipped.
func Parse(v any) []Block {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	blocks := make([]Block, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		blocks = append(blocks, parseBlock(obj))
	}
	return blocks
}

func parseBlock(obj map[string]any) Block {
	b := Block{
		Type:     str(obj["type"]),
		Level:    num(obj["level"]),
		Format:   str(obj["format"]),
		Children: parseNodes(obj["children"]),
	}
	if img, ok := obj["image"]; ok && img != nil {
		b.Image = img
		if m, ok := img.(map[string]any); ok {
			b.Alt = str(m["alternativeText"])
		}
	}
	return b
}

func parseNodes(v any) []Node {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	nodes := make([]Node, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		nodes = append(nodes, Node{
			Type:          str(obj["type"]),
			Text:          str(obj["text"]),
			URL:           str(obj["url"]),
			Format:        str(obj["format"]),
			Bold:          flag(obj["bold"]),
			Italic:        flag(obj["italic"]),
			Underline:     flag(obj["underline"]),
			Strikethrough: flag(obj["strikethrough"]),
			Code:          flag(obj["code"]),
			Children:      parseNodes(obj["children"]),
		})
	}
	return nodes
}

// PlainText flattens blocks to their text, one line per block.
func PlainText(blocks []Block) string {
	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		var sb strings.Builder
		writeText(&sb, b.Children)
		if s := strings.TrimSpace(sb.String()); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

func writeText(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		sb.WriteString(n.Text)
		writeText(sb, n.Children)
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) int {
	f, _ := v.(float64)
	return int(f)
}

func flag(v any) bool {
	b, _ := v.(bool)
	return b
}
