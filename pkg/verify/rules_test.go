package verify

import (
	"strings"
	"testing"

	"github.com/nexusmap/diregram/pkg/config"
)

func TestCompileRules_BadExpressionReported(t *testing.T) {
	compiled, issues := CompileRules([]config.Rule{
		{Code: "OK_RULE", Message: "fine", When: "isFlow"},
		{Code: "BAD_RULE", Message: "broken", When: "isFlow &&"},
	})
	if len(compiled) != 1 {
		t.Fatalf("len(compiled) = %d, want 1", len(compiled))
	}
	if len(issues) != 1 || issues[0].Code != CodeInvalidRule {
		t.Fatalf("issues = %v, want one INVALID_RULE", issues)
	}
	if !strings.Contains(issues[0].Message, "BAD_RULE") {
		t.Errorf("message should name the rule: %s", issues[0].Message)
	}
}

func TestApplyRules_MatchesPerLine(t *testing.T) {
	compiled, issues := CompileRules([]config.Rule{
		{Code: "FLOW_NEEDS_EXPID", Severity: "warning", Message: "flow line without expid", When: "isFlow && !hasExpid"},
	})
	if len(issues) != 0 {
		t.Fatalf("unexpected compile issues: %v", issues)
	}

	r := Text(doc(
		"- With expid <!-- tags:actor-staff,ui-form --> #flow# <!-- expid:1 -->\n"+
			"- Without <!-- tags:actor-staff --> #flow#\n",
		tagStoreBlock))
	before := len(r.Issues)
	r.ApplyRules(compiled)

	var hits []Issue
	for _, is := range r.Issues[before:] {
		if is.Code == "FLOW_NEEDS_EXPID" {
			hits = append(hits, is)
		}
	}
	if len(hits) != 1 {
		t.Fatalf("rule hits = %d, want 1 (issues: %v)", len(hits), codes(r))
	}
	if hits[0].Severity != SeverityWarning {
		t.Errorf("Severity = %s, want warning", hits[0].Severity)
	}
	if !strings.Contains(hits[0].Message, "Line 2:") {
		t.Errorf("message should carry the line number: %s", hits[0].Message)
	}
}

func TestApplyRules_SkipsFenceInteriorAndBlanks(t *testing.T) {
	compiled, _ := CompileRules([]config.Rule{
		{Code: "ANY", Message: "hit", When: "true"},
	})
	r := Text("- visible\n```\nfenced\n```\n\n---\n")
	r.ApplyRules(compiled)
	n := 0
	for _, is := range r.Issues {
		if is.Code == "ANY" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("rule hits = %d, want 1 (only the visible line)", n)
	}
}

func TestApplyConfig(t *testing.T) {
	issues := []Issue{
		{Severity: SeverityError, Code: CodeMissingActorTag, Message: "a"},
		{Severity: SeverityWarning, Code: CodeCrossTimeframeSignal, Message: "b"},
		{Severity: SeverityError, Code: CodeUnknownTagID, Message: "c"},
	}
	cfg := &config.Config{
		Suppress: []string{CodeUnknownTagID},
		Severity: map[string]string{
			CodeMissingActorTag:      "warning",
			CodeCrossTimeframeSignal: config.SeverityOff,
		},
	}

	out := ApplyConfig(issues, cfg)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1: %v", len(out), out)
	}
	if out[0].Code != CodeMissingActorTag || out[0].Severity != SeverityWarning {
		t.Errorf("out[0] = %+v, want downgraded MISSING_ACTOR_TAG", out[0])
	}

	if got := ApplyConfig(issues, nil); len(got) != len(issues) {
		t.Errorf("nil config must pass issues through, got %d", len(got))
	}
}
