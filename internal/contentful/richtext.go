// File: internal/contentful/richtext.go
package contentful

import (
	"encoding/json"
	"strings"
)

const (
	nodeDocument  = "document"
	nodeParagraph = "paragraph"
	nodeText      = "text"
)

// Node is a rich-text tree node in the remote store's document format.
type Node struct {
	NodeType string                 `json:"nodeType"`
	Data     map[string]interface{} `json:"data"`
	Content  []Node                 `json:"content,omitempty"`
	Value    string                 `json:"value,omitempty"`
	Marks    []interface{}          `json:"marks,omitempty"`
}

// Document is the root of a rich-text tree.
type Document struct {
	NodeType string                 `json:"nodeType"`
	Data     map[string]interface{} `json:"data"`
	Content  []Node                 `json:"content"`
}

// EncodeDocument converts plain multi-line text to a rich-text document.
// Each non-blank line becomes one paragraph with a single text node
// holding the line's trimmed content; blank lines are dropped, which
// makes the round trip lossy for them. Empty input encodes as a single
// "No description provided." paragraph; input that trims away entirely
// encodes as a single "No description" paragraph (two distinct fallback
// literals, kept from the original behavior).
func EncodeDocument(text string) Document {
	if text == "" {
		text = "No description provided."
	}

	var nodes []Node
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nodes = append(nodes, paragraphNode(trimmed))
	}

	if len(nodes) == 0 {
		nodes = []Node{paragraphNode("No description")}
	}

	return Document{
		NodeType: nodeDocument,
		Data:     map[string]interface{}{},
		Content:  nodes,
	}
}

func paragraphNode(text string) Node {
	return Node{
		NodeType: nodeParagraph,
		Data:     map[string]interface{}{},
		Content: []Node{{
			NodeType: nodeText,
			Data:     map[string]interface{}{},
			Value:    text,
			Marks:    []interface{}{},
		}},
	}
}

// DecodeDocument walks a rich-text document and extracts the plain text:
// one line per paragraph, joined with newlines. Unrecognized node shapes
// are skipped; a malformed document decodes to "".
func DecodeDocument(doc Document) string {
	if doc.NodeType != nodeDocument {
		return ""
	}
	var lines []string
	for _, node := range doc.Content {
		if node.NodeType != nodeParagraph {
			continue
		}
		var parts []string
		for _, child := range node.Content {
			if child.NodeType == nodeText && child.Value != "" {
				parts = append(parts, child.Value)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, ""))
		}
	}
	return strings.Join(lines, "\n")
}

// DecodeRichText decodes a raw rich-text JSON value to plain text.
// Malformed JSON degrades to "" rather than failing.
func DecodeRichText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ""
	}
	return DecodeDocument(doc)
}
