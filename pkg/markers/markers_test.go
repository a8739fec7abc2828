package markers

import (
	"reflect"
	"strings"
	"testing"
)

func TestTagIDs_DedupePreservesOrder(t *testing.T) {
	got := TagIDs("- step <!-- tags:a,a,b,a -->")
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagIDs = %v, want %v", got, want)
	}
}

func TestTagIDs_SanitizesIDs(t *testing.T) {
	got := TagIDs("- step <!-- tags: a--b , c , , <d  -->")
	want := []string{"ab", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagIDs = %v, want %v", got, want)
	}
}

func TestTagIDs_NoMarker(t *testing.T) {
	if got := TagIDs("- plain step"); got != nil {
		t.Errorf("TagIDs = %v, want nil", got)
	}
}

// A comment whose body crosses a bare '>' is not a marker, but a later
// well-formed comment on the same line still is.
func TestTagIDs_SkipsMalformedCandidate(t *testing.T) {
	got := TagIDs("- x <!-- tags:a> oops <!-- tags:b -->")
	want := []string{"b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagIDs = %v, want %v", got, want)
	}
}

func TestDoAttrIDs_TruncatedAfterSanitize(t *testing.T) {
	long := strings.Repeat("x", 70)
	m := Extract("- s <!-- do:obj --> <!-- doattrs:" + long + " -->")
	if len(m.DoAttrIDs) != 1 {
		t.Fatalf("len(DoAttrIDs) = %d, want 1", len(m.DoAttrIDs))
	}
	if len(m.DoAttrIDs[0]) != 64 {
		t.Errorf("len(DoAttrIDs[0]) = %d, want 64", len(m.DoAttrIDs[0]))
	}
}

// Truncation happens before de-duplication: two long ids that agree on the
// first 64 runes collapse into one.
func TestDoAttrIDs_TruncationThenDedupe(t *testing.T) {
	prefix := strings.Repeat("x", 64)
	m := Extract("- s <!-- doattrs:" + prefix + "a," + prefix + "b -->")
	if len(m.DoAttrIDs) != 1 {
		t.Errorf("len(DoAttrIDs) = %d, want 1: %v", len(m.DoAttrIDs), m.DoAttrIDs)
	}
}

func TestDoID_FirstMarkerWins(t *testing.T) {
	m := Extract("- s <!-- do:first --> <!-- do:second -->")
	if m.DoID != "first" {
		t.Errorf("DoID = %q, want %q", m.DoID, "first")
	}
}

// An empty do: body does not count as a marker.
func TestDoID_EmptyBodyIgnored(t *testing.T) {
	m := Extract("- s <!-- do:-->")
	if m.DoID != "" {
		t.Errorf("DoID = %q, want empty", m.DoID)
	}
	// whitespace-only body is non-empty pre-trim, so the marker matches and
	// trims to empty
	m = Extract("- s <!-- do: -->")
	if m.DoID != "" {
		t.Errorf("DoID = %q, want empty after trim", m.DoID)
	}
}

func TestHasExpid(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"- s <!-- expid:42 -->", true},
		{"- s <!--expid:7-->", true},
		{"- s <!-- expid: 42 -->", false}, // digits must follow the colon immediately
		{"- s <!-- expid:abc -->", false},
		{"- s <!-- expid:42x -->", false},
		{"- s <!-- expid: -->", false},
		{"- s no marker", false},
	}
	for _, tt := range tests {
		if got := hasExpid(tt.line); got != tt.want {
			t.Errorf("hasExpid(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestExtract_FlowLiteral(t *testing.T) {
	if !Extract("- step #flow#").IsFlow {
		t.Error("IsFlow = false, want true")
	}
	if Extract("- step #flowtab#").IsFlow {
		// #flowtab# contains no #flow# literal
		t.Error("IsFlow = true for #flowtab#, want false")
	}
}

func TestNormalizedTitle(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"  - System: do a thing <!-- tags:a --> #flow#", "- System: do a thing"},
		{"- plain", "- plain"},
		{"\t- a  #flowtab#  b", "- a b"},
		{"- unterminated <!-- tags:a", "- unterminated <!-- tags:a"},
	}
	for _, tt := range tests {
		if got := NormalizedTitle(tt.line); got != tt.want {
			t.Errorf("NormalizedTitle(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
