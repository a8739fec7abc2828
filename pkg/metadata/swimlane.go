package metadata

import (
	"encoding/json"
	"strings"
)

// Swimlane is the lane/placement structure of a flowtab-swimlane-* block.
type Swimlane struct {
	// Lanes maps lane id to its display label.
	Lanes map[string]string
	// Placement lists placed nodes in document order. Verification output
	// must be byte-deterministic, so the JSON object's key order is
	// preserved instead of going through a Go map.
	Placement []Placement
}

// Placement binds a node id to the lane it was placed in.
type Placement struct {
	NodeID string
	LaneID string
}

// ParseSwimlane reads a flowtab-swimlane-* block. ok is false when the block
// value is not a JSON object. Lane entries without string id and label, and
// placement entries without an object value carrying a string laneId, are
// skipped individually.
func ParseSwimlane(b *Block) (*Swimlane, bool) {
	obj, ok := b.Value.(map[string]any)
	if !ok {
		return nil, false
	}
	sl := &Swimlane{Lanes: make(map[string]string)}
	if lanes, ok := obj["lanes"].([]any); ok {
		for _, l := range lanes {
			lm, ok := l.(map[string]any)
			if !ok {
				continue
			}
			id, okID := lm["id"].(string)
			label, okLabel := lm["label"].(string)
			if okID && okLabel {
				sl.Lanes[id] = label
			}
		}
	}
	sl.Placement = placementEntries(b.Body)
	return sl, true
}

// placementEntries re-reads the raw block body token by token to recover the
// placement object's keys in document order.
func placementEntries(body string) []Placement {
	raw := placementRaw(body)
	if raw == nil {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}
	// First pass collects keys in first-occurrence order with last-wins
	// values (JSON object duplicate-key semantics), then invalid entries
	// are filtered out.
	var keys []string
	vals := make(map[string]json.RawMessage)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			break
		}
		key, _ := keyTok.(string)
		var rawVal json.RawMessage
		if err := dec.Decode(&rawVal); err != nil {
			break
		}
		if _, dup := vals[key]; !dup {
			keys = append(keys, key)
		}
		vals[key] = rawVal
	}
	var out []Placement
	for _, key := range keys {
		var val map[string]any
		if json.Unmarshal(vals[key], &val) != nil {
			continue
		}
		laneID, ok := val["laneId"].(string)
		if !ok {
			continue
		}
		out = append(out, Placement{NodeID: key, LaneID: laneID})
	}
	return out
}

// placementRaw extracts the raw JSON of the top-level "placement" field,
// honoring last-wins for a duplicated key.
func placementRaw(body string) json.RawMessage {
	dec := json.NewDecoder(strings.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}
	var placement json.RawMessage
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return placement
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return placement
		}
		if key == "placement" {
			placement = raw
		}
	}
	return placement
}
