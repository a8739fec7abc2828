package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nexusmap/diregram/pkg/verify"
)

func TestWrite_ExactFormat(t *testing.T) {
	issues := []verify.Issue{
		{Severity: verify.SeverityWarning, Code: "CROSS_TIMEFRAME_SIGNAL", Message: "w1"},
		{Severity: verify.SeverityError, Code: "MISSING_TAG_STORE", Message: "e1"},
		{Severity: verify.SeverityError, Code: "UNKNOWN_TAG_ID", Message: "e2"},
	}

	var buf bytes.Buffer
	errors, warnings := Write(&buf, issues)
	if errors != 2 || warnings != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", errors, warnings)
	}

	want := "ERROR   MISSING_TAG_STORE: e1\n" +
		"ERROR   UNKNOWN_TAG_ID: e2\n" +
		"WARNING CROSS_TIMEFRAME_SIGNAL: w1\n" +
		"\nSummary: errors=2, warnings=1\n"
	if buf.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWrite_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	errors, warnings := Write(&buf, nil)
	if errors != 0 || warnings != 0 {
		t.Errorf("counts = (%d, %d), want (0, 0)", errors, warnings)
	}
	if buf.String() != "\nSummary: errors=0, warnings=0\n" {
		t.Errorf("output = %q", buf.String())
	}
}

// Errors come first, but discovery order is preserved within each class.
func TestWrite_StableWithinClass(t *testing.T) {
	issues := []verify.Issue{
		{Severity: verify.SeverityWarning, Code: "W_FIRST", Message: "m"},
		{Severity: verify.SeverityWarning, Code: "W_SECOND", Message: "m"},
		{Severity: verify.SeverityError, Code: "E_FIRST", Message: "m"},
		{Severity: verify.SeverityError, Code: "E_SECOND", Message: "m"},
	}

	var buf bytes.Buffer
	Write(&buf, issues)
	lines := strings.Split(buf.String(), "\n")
	wantPrefixes := []string{
		"ERROR   E_FIRST:",
		"ERROR   E_SECOND:",
		"WARNING W_FIRST:",
		"WARNING W_SECOND:",
	}
	for i, p := range wantPrefixes {
		if !strings.HasPrefix(lines[i], p) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], p)
		}
	}
}

func TestPretty_SameContentAndCounts(t *testing.T) {
	issues := []verify.Issue{
		{Severity: verify.SeverityError, Code: "MISSING_TAG_STORE", Message: "the store is gone"},
		{Severity: verify.SeverityWarning, Code: "CROSS_TIMEFRAME_SIGNAL", Message: "wait appears"},
	}

	var buf bytes.Buffer
	errors, warnings := Pretty(&buf, issues)
	if errors != 1 || warnings != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", errors, warnings)
	}
	out := buf.String()
	for _, s := range []string{"MISSING_TAG_STORE", "the store is gone", "CROSS_TIMEFRAME_SIGNAL", "errors=1, warnings=1"} {
		if !strings.Contains(out, s) {
			t.Errorf("pretty output missing %q:\n%s", s, out)
		}
	}
}

func TestPretty_Clean(t *testing.T) {
	var buf bytes.Buffer
	Pretty(&buf, nil)
	if !strings.Contains(buf.String(), "clean") {
		t.Errorf("clean output = %q", buf.String())
	}
}
