// Package metadata scans a Diregram document for fenced JSON metadata blocks
// and ingests the recognized ones into typed lookup structures. Malformed
// entries are skipped individually; a malformed block is reported and
// omitted, never fatal.
package metadata

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Recognized block type labels and label prefixes.
const (
	LabelTagStore    = "tag-store"
	LabelDataObjects = "data-objects"

	PrefixExpandedMetadata = "expanded-metadata-"
	PrefixExpandedGrid     = "expanded-grid-"
	PrefixSwimlane         = "flowtab-swimlane-"
)

// Required tag-group ids.
const (
	GroupActors    = "tg-actors"
	GroupUISurface = "tg-uiSurface"
)

// blockRe matches "fence, optional type label, body, fence" anywhere in the
// document, with a non-greedy multi-line body.
var blockRe = regexp.MustCompile("(?s)```([^\n]*)\n(.*?)\n```")

// Block is one labeled fenced block with a successfully parsed JSON body.
type Block struct {
	Label string
	Body  string
	Value any
}

// ParseError records a labeled block whose body was not valid JSON.
type ParseError struct {
	Label string
	Err   error
}

// Table holds all parsed blocks, keyed by type label. A later block with the
// same label overwrites an earlier one (last-wins, an explicit policy), but
// keeps its first-seen position in iteration order.
type Table struct {
	order  []string
	blocks map[string]*Block
}

// Scan extracts every labeled fenced block from the full document text and
// parses each body as JSON. Blocks with an empty label are ignored. Parse
// failures are returned in scan order; the failed block is omitted from the
// table and scanning continues.
func Scan(text string) (*Table, []ParseError) {
	t := &Table{blocks: make(map[string]*Block)}
	var perrs []ParseError
	for _, m := range blockRe.FindAllStringSubmatch(text, -1) {
		label := strings.TrimSpace(m[1])
		if label == "" {
			continue
		}
		body := m[2]
		var v any
		if err := json.Unmarshal([]byte(body), &v); err != nil {
			perrs = append(perrs, ParseError{Label: label, Err: err})
			continue
		}
		if _, exists := t.blocks[label]; !exists {
			t.order = append(t.order, label)
		}
		t.blocks[label] = &Block{Label: label, Body: body, Value: v}
	}
	return t, perrs
}

// Blocks returns the parsed blocks in first-seen label order.
func (t *Table) Blocks() []*Block {
	out := make([]*Block, 0, len(t.order))
	for _, label := range t.order {
		out = append(out, t.blocks[label])
	}
	return out
}

// Get returns the parsed value for a type label.
func (t *Table) Get(label string) (any, bool) {
	b, ok := t.blocks[label]
	if !ok {
		return nil, false
	}
	return b.Value, true
}

// Len returns the number of distinct block labels.
func (t *Table) Len() int { return len(t.order) }
