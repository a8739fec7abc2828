// Package report prints the issue list. The plain writer is the compatible
// surface: errors before warnings in discovery order, one fixed-format line
// per issue, then a summary. The pretty writer adds terminal styling on top
// of the same ordering.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nexusmap/diregram/pkg/verify"
)

// ordered returns errors first, then warnings, preserving discovery order
// within each class.
func ordered(issues []verify.Issue) []verify.Issue {
	out := make([]verify.Issue, 0, len(issues))
	for _, is := range issues {
		if is.Severity == verify.SeverityError {
			out = append(out, is)
		}
	}
	for _, is := range issues {
		if is.Severity == verify.SeverityWarning {
			out = append(out, is)
		}
	}
	return out
}

// Counts tallies errors and warnings.
func Counts(issues []verify.Issue) (errors, warnings int) {
	for _, is := range issues {
		switch is.Severity {
		case verify.SeverityError:
			errors++
		case verify.SeverityWarning:
			warnings++
		}
	}
	return
}

// Write prints the plain report. The format is fixed for compatibility:
// "<SEVERITY padded to 7> <CODE>: <message>" per issue, a blank line, and
// "Summary: errors=<n>, warnings=<m>".
func Write(w io.Writer, issues []verify.Issue) (errors, warnings int) {
	for _, is := range ordered(issues) {
		fmt.Fprintf(w, "%-7s %s: %s\n", strings.ToUpper(string(is.Severity)), is.Code, is.Message)
	}
	errors, warnings = Counts(issues)
	fmt.Fprintf(w, "\nSummary: errors=%d, warnings=%d\n", errors, warnings)
	return
}

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	summaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cleanStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40"))
)

// Pretty prints a styled report with an aligned code column. Content and
// ordering match the plain writer; only presentation differs.
func Pretty(w io.Writer, issues []verify.Issue) (errors, warnings int) {
	sorted := ordered(issues)

	codeWidth := 0
	for _, is := range sorted {
		if n := runewidth.StringWidth(is.Code); n > codeWidth {
			codeWidth = n
		}
	}

	for _, is := range sorted {
		sev := errorStyle.Render("✗ ERROR  ")
		if is.Severity == verify.SeverityWarning {
			sev = warningStyle.Render("⚠ WARNING")
		}
		code := codeStyle.Render(runewidth.FillRight(is.Code, codeWidth))
		fmt.Fprintf(w, "%s %s  %s\n", sev, code, is.Message)
	}

	errors, warnings = Counts(issues)
	if len(sorted) > 0 {
		fmt.Fprintln(w)
	}
	if errors == 0 && warnings == 0 {
		fmt.Fprintln(w, cleanStyle.Render("✓ clean")+summaryStyle.Render("  errors=0, warnings=0"))
	} else {
		fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf("Summary: errors=%d, warnings=%d", errors, warnings)))
	}
	return
}
