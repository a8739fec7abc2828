package verify

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nexusmap/diregram/pkg/config"
	"github.com/nexusmap/diregram/pkg/document"
	"github.com/nexusmap/diregram/pkg/markers"
)

// CompiledRule is a config-supplied lint rule with its compiled condition.
type CompiledRule struct {
	Code     string
	Severity Severity
	Message  string
	program  *vm.Program
}

// ruleEnv is the fact set a rule condition sees for one tree line.
func ruleEnv(num int, line string, m markers.LineMarkers) map[string]any {
	return map[string]any{
		"line":     num,
		"text":     line,
		"title":    m.Title,
		"tags":     m.TagIDs,
		"isFlow":   m.IsFlow,
		"hasExpid": m.HasExpid,
		"doId":     m.DoID,
		"doAttrs":  m.DoAttrIDs,
	}
}

// CompileRules compiles the config rules. A rule that fails to compile is
// reported as an INVALID_RULE error and excluded from the returned set.
func CompileRules(rules []config.Rule) ([]CompiledRule, []Issue) {
	var compiled []CompiledRule
	var issues []Issue
	for _, r := range rules {
		sev := SeverityWarning
		if r.Severity == string(SeverityError) {
			sev = SeverityError
		}
		program, err := expr.Compile(r.When,
			expr.Env(ruleEnv(0, "", markers.LineMarkers{})),
			expr.AsBool(),
		)
		if err != nil {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeInvalidRule,
				Message:  fmt.Sprintf("rule %q: cannot compile condition %q: %v", r.Code, r.When, err),
			})
			continue
		}
		compiled = append(compiled, CompiledRule{
			Code:     r.Code,
			Severity: sev,
			Message:  r.Message,
			program:  program,
		})
	}
	return compiled, issues
}

// ApplyRules evaluates each compiled rule against every tree line, using
// the same fence and blank-line classification as pass one, and appends a
// finding per matching line. Evaluation errors skip the line; matching only
// depends on the line facts, so runs stay deterministic.
func (r *Result) ApplyRules(rules []CompiledRule) {
	if len(rules) == 0 {
		return
	}
	inFence := false
	for i, line := range r.Doc.TreeLines() {
		if document.IsFenceLine(line) {
			inFence = !inFence
			continue
		}
		if inFence || strings.TrimSpace(line) == "" {
			continue
		}
		env := ruleEnv(i+1, line, markers.Extract(line))
		for _, rule := range rules {
			out, err := expr.Run(rule.program, env)
			if err != nil {
				continue
			}
			if hit, ok := out.(bool); ok && hit {
				r.report(rule.Severity, rule.Code, fmt.Sprintf("Line %d: %s", i+1, rule.Message))
			}
		}
	}
}

// ApplyConfig filters and re-classifies the collected issues according to
// the config's suppress list and per-code severity overrides. With a nil
// config the issues pass through untouched.
func ApplyConfig(issues []Issue, cfg *config.Config) []Issue {
	if cfg == nil {
		return issues
	}
	suppressed := make(map[string]bool, len(cfg.Suppress))
	for _, code := range cfg.Suppress {
		suppressed[code] = true
	}
	out := make([]Issue, 0, len(issues))
	for _, is := range issues {
		if suppressed[is.Code] {
			continue
		}
		switch cfg.Severity[is.Code] {
		case config.SeverityOff:
			continue
		case string(SeverityError):
			is.Severity = SeverityError
		case string(SeverityWarning):
			is.Severity = SeverityWarning
		}
		out = append(out, is)
	}
	return out
}
