package metadata

import "strings"

// ExpandedEntry is the data-object binding carried by an expanded-metadata-*
// block or one node of an expanded-grid-* block.
type ExpandedEntry struct {
	// DataObjectID is the trimmed dataObjectId, or "" when the field is
	// absent, non-string or blank.
	DataObjectID string
	// AttrIDs are the trimmed, non-empty string entries of
	// dataObjectAttributeIds. Non-string entries are skipped.
	AttrIDs []string
	// HasAttrs reports that dataObjectAttributeIds is a non-empty list;
	// only then does the entry participate in attribute checks.
	HasAttrs bool
}

// GridEntry is one object node of an expanded-grid-* block. Index is the
// 1-based position in the raw list; non-object list entries keep their slot
// in the numbering but are not returned.
type GridEntry struct {
	Index int
	ExpandedEntry
}

// ParseExpanded reads an expanded-metadata-* block value. ok is false when
// the value is not a JSON object.
func ParseExpanded(v any) (ExpandedEntry, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return ExpandedEntry{}, false
	}
	return expandedEntry(obj), true
}

// ParseGrid reads an expanded-grid-* block value. ok is false when the value
// is not a JSON array.
func ParseGrid(v any) ([]GridEntry, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	var out []GridEntry
	for i, n := range list {
		obj, ok := n.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, GridEntry{Index: i + 1, ExpandedEntry: expandedEntry(obj)})
	}
	return out, true
}

func expandedEntry(obj map[string]any) ExpandedEntry {
	var e ExpandedEntry
	if id, ok := obj["dataObjectId"].(string); ok {
		e.DataObjectID = strings.TrimSpace(id)
	}
	if attrs, ok := obj["dataObjectAttributeIds"].([]any); ok && len(attrs) > 0 {
		e.HasAttrs = true
		for _, a := range attrs {
			if s, ok := a.(string); ok && strings.TrimSpace(s) != "" {
				e.AttrIDs = append(e.AttrIDs, strings.TrimSpace(s))
			}
		}
	}
	return e
}
