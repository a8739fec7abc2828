// Package verify is the Diregram cross-reference validation engine. It
// consumes the marker stream and metadata lookup tables and checks tag
// existence, actor and UI-surface cardinality, data-object attribute links,
// and swimlane/actor agreement, collecting severity-tagged issues. Every
// finding is reported, never thrown: one run surfaces the maximal set of
// problems instead of stopping at the first.
package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nexusmap/diregram/pkg/document"
	"github.com/nexusmap/diregram/pkg/markers"
	"github.com/nexusmap/diregram/pkg/metadata"
)

// actorIDPrefix classifies a tag as an actor tag by id shape when the
// tag-store does not place it in a group.
const actorIDPrefix = "actor-"

var (
	actorPrefixRe = regexp.MustCompile(`(?i)^(system|staff|applicant|partner)\s*:\s*`)
	nodeIDRe      = regexp.MustCompile(`^node-(\d+)$`)

	// timeframeRe is the fixed lexical vocabulary flagging flow lines that
	// likely span session boundaries.
	timeframeRe = regexp.MustCompile(`(?i)\b(await|waiting|wait|queued|queue|2-4\s*weeks|weeks?|months?|within\s+one\s+month|mail|postal|partner\s+assessment|assessment|ica)\b`)

	staffLaneRe     = regexp.MustCompile(`\b(staff|admin|reviewer|operator|agent)\b`)
	applicantLaneRe = regexp.MustCompile(`\b(applicant|customer|user|visitor|student)\b`)
)

// Result is the outcome of one verification run.
type Result struct {
	Doc    *document.Document
	Table  *metadata.Table
	Issues []Issue
}

// ErrorCount returns the number of error-severity issues.
func (r *Result) ErrorCount() int { return countSeverity(r.Issues, SeverityError) }

// WarningCount returns the number of warning-severity issues.
func (r *Result) WarningCount() int { return countSeverity(r.Issues, SeverityWarning) }

func countSeverity(issues []Issue, sev Severity) int {
	n := 0
	for _, is := range issues {
		if is.Severity == sev {
			n++
		}
	}
	return n
}

// Text runs the full verification pipeline over raw document text. The
// passes are deterministic functions of the text: identical input yields a
// byte-identical issue list.
func Text(raw string) *Result {
	doc := document.New(raw)
	r := &Result{Doc: doc}

	if start, open := doc.UnclosedFence(); open {
		r.report(SeverityError, CodeUnclosedCodeBlock,
			fmt.Sprintf("Unclosed fenced code block starting near line %d.", start))
	}

	table, perrs := metadata.Scan(doc.Text)
	r.Table = table
	for _, pe := range perrs {
		r.report(SeverityError, CodeInvalidJSON,
			fmt.Sprintf("Invalid JSON in ```%s```: %v", pe.Label, pe.Err))
	}

	store, storePresent := table.TagStore()
	c := &checker{
		r:            r,
		store:        store,
		storePresent: storePresent,
		catalog:      table.DataObjects(),
		required:     make(map[int]bool),
	}
	c.checkTree(doc)
	c.checkTimeframes(doc)
	c.checkExpanded()
	c.checkSwimlanes(doc)
	return r
}

func (r *Result) report(sev Severity, code, message string) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Code: code, Message: message})
}

// checker threads the lookup tables and the tag-store requirement state
// through the validation passes.
type checker struct {
	r            *Result
	store        *metadata.TagStore
	storePresent bool
	catalog      metadata.Catalog
	required     map[int]bool
}

// requireTagStore records the missing-tag-store violation at most once per
// triggering line.
func (c *checker) requireTagStore(lineIdx int) {
	if c.storePresent || c.required[lineIdx] {
		return
	}
	c.required[lineIdx] = true
	c.r.report(SeverityError, CodeMissingTagStore,
		"Missing ```tag-store``` block (required when using tags and for actor enforcement).")
}

// actorTags classifies the line's tag ids as actor tags, by declared group
// membership or by the actor id-prefix fallback.
func (c *checker) actorTags(tagIDs []string) []string {
	var out []string
	for _, tid := range tagIDs {
		if c.store.TagGroup[tid] == metadata.GroupActors || strings.HasPrefix(tid, actorIDPrefix) {
			out = append(out, tid)
		}
	}
	return out
}

// checkTree is pass one: it walks tree-region lines in order, skipping
// fence interiors and blanks, and applies the per-line marker checks.
func (c *checker) checkTree(doc *document.Document) {
	inFence := false
	for i, line := range doc.TreeLines() {
		if document.IsFenceLine(line) {
			inFence = !inFence
			continue
		}
		if inFence || strings.TrimSpace(line) == "" {
			continue
		}

		m := markers.Extract(line)
		num := i + 1

		if actorPrefixRe.MatchString(m.Title) {
			c.r.report(SeverityError, CodeActorPrefixInTitle,
				fmt.Sprintf("Line %d encodes an actor in the title ('System:/Staff:/Applicant:/Partner:'). Use actor tags + swimlanes instead.", num))
		}

		if len(m.TagIDs) > 0 {
			c.requireTagStore(i)
			if c.storePresent {
				for _, tid := range m.TagIDs {
					if _, known := c.store.TagGroup[tid]; !known {
						c.r.report(SeverityError, CodeUnknownTagID,
							fmt.Sprintf("Line %d references unknown tag id %q (not present in tag-store).", num, tid))
					}
				}
			}
		}

		if m.IsFlow {
			c.requireTagStore(i)
			if c.storePresent && !c.store.Groups[metadata.GroupActors] {
				c.r.report(SeverityError, CodeMissingRequiredGroup,
					fmt.Sprintf("tag-store missing required group %q.", metadata.GroupActors))
			}
			switch actors := c.actorTags(m.TagIDs); len(actors) {
			case 0:
				c.r.report(SeverityError, CodeMissingActorTag,
					fmt.Sprintf("Line %d is #flow# but has no actor tag (group %s).", num, metadata.GroupActors))
			case 1:
				// exactly one actor: valid
			default:
				c.r.report(SeverityError, CodeMultipleActorTags,
					fmt.Sprintf("Line %d is #flow# but has multiple actor tags: %s", num, strings.Join(actors, ", ")))
			}
		}

		if len(m.DoAttrIDs) > 0 {
			if m.DoID == "" {
				c.r.report(SeverityError, CodeDoattrsWithoutDo,
					fmt.Sprintf("Line %d uses <!-- doattrs:... --> but has no <!-- do:... --> on the same line.", num))
			} else if len(c.catalog) > 0 {
				if allowed := c.catalog[m.DoID]; allowed != nil {
					for _, aid := range m.DoAttrIDs {
						if !allowed[aid] {
							c.r.report(SeverityWarning, CodeUnknownDataObjectAttr,
								fmt.Sprintf("Line %d references unknown attribute %q for data object %q.", num, aid, m.DoID))
						}
					}
				}
			}
		}

		if m.HasExpid {
			c.requireTagStore(i)
			if c.storePresent && !c.store.Groups[metadata.GroupUISurface] {
				c.r.report(SeverityError, CodeMissingRequiredGroup,
					fmt.Sprintf("tag-store missing required group %q.", metadata.GroupUISurface))
			}
			surface := 0
			for _, tid := range m.TagIDs {
				if c.store.TagGroup[tid] == metadata.GroupUISurface {
					surface++
				}
			}
			// No multiple-surface-tags variant exists; zero is the only
			// reported cardinality.
			if surface == 0 {
				c.r.report(SeverityError, CodeMissingUISurfaceTag,
					fmt.Sprintf("Line %d has expid but no ui-surface tag (group %s).", num, metadata.GroupUISurface))
			}
		}
	}
}

// checkTimeframes scans flow lines for cross-timeframe/async vocabulary.
// The heuristic is lexical, never time-based.
func (c *checker) checkTimeframes(doc *document.Document) {
	for i, line := range doc.TreeLines() {
		if !strings.Contains(line, markers.FlowLiteral) {
			continue
		}
		if timeframeRe.MatchString(line) {
			c.r.report(SeverityWarning, CodeCrossTimeframeSignal,
				fmt.Sprintf("Line %d (#flow#) contains a cross-timeframe/async signal. Non-swimlane #flow# processes should be session-scoped; consider splitting via Flowtab/lifecycle hubs.", i+1))
		}
	}
}

// checkExpanded is pass two: it re-applies the data-object attribute checks
// to expanded-metadata-* and expanded-grid-* blocks. The catalog mapping is
// best-effort, so unknown attributes are warnings.
func (c *checker) checkExpanded() {
	if len(c.catalog) == 0 {
		return
	}
	for _, b := range c.r.Table.Blocks() {
		if strings.HasPrefix(b.Label, metadata.PrefixExpandedMetadata) {
			if e, ok := metadata.ParseExpanded(b.Value); ok && e.HasAttrs {
				if e.DataObjectID == "" {
					c.r.report(SeverityError, CodeDoattrsWithoutDo,
						fmt.Sprintf("```%s``` includes dataObjectAttributeIds but has no dataObjectId.", b.Label))
				} else if allowed := c.catalog[e.DataObjectID]; allowed != nil {
					for _, aid := range e.AttrIDs {
						if !allowed[aid] {
							c.r.report(SeverityWarning, CodeUnknownDataObjectAttr,
								fmt.Sprintf("```%s``` references unknown attribute %q for data object %q.", b.Label, aid, e.DataObjectID))
						}
					}
				}
			}
		}
		if strings.HasPrefix(b.Label, metadata.PrefixExpandedGrid) {
			entries, ok := metadata.ParseGrid(b.Value)
			if !ok {
				continue
			}
			for _, e := range entries {
				if !e.HasAttrs {
					continue
				}
				if e.DataObjectID == "" {
					c.r.report(SeverityError, CodeDoattrsWithoutDo,
						fmt.Sprintf("```%s``` grid node #%d includes dataObjectAttributeIds but has no dataObjectId.", b.Label, e.Index))
					continue
				}
				allowed := c.catalog[e.DataObjectID]
				if allowed == nil {
					continue
				}
				for _, aid := range e.AttrIDs {
					if !allowed[aid] {
						c.r.report(SeverityWarning, CodeUnknownDataObjectAttr,
							fmt.Sprintf("```%s``` grid node #%d references unknown attribute %q for data object %q.", b.Label, e.Index, aid, e.DataObjectID))
					}
				}
			}
		}
	}
}

// checkSwimlanes compares each placed node's expected actor category,
// inferred from its lane label, against the actor tag actually present on
// the referenced tree line. Disagreement is a warning: lane labels are prose.
func (c *checker) checkSwimlanes(doc *document.Document) {
	for _, b := range c.r.Table.Blocks() {
		if !strings.HasPrefix(b.Label, metadata.PrefixSwimlane) {
			continue
		}
		sl, ok := metadata.ParseSwimlane(b)
		if !ok {
			continue
		}
		for _, p := range sl.Placement {
			label := sl.Lanes[p.LaneID]
			expected := expectedActorForLane(label)
			if expected == "" {
				continue
			}
			m := nodeIDRe.FindStringSubmatch(p.NodeID)
			if m == nil {
				continue
			}
			li, err := strconv.Atoi(m[1])
			if err != nil || li < 0 || li >= len(doc.Lines) {
				continue
			}
			actors := c.actorTags(markers.TagIDs(doc.Lines[li]))
			if len(actors) == 0 {
				c.r.report(SeverityWarning, CodeSwimlaneNodeMissingTag,
					fmt.Sprintf("%s places %s in lane %q but node has no actor tag.", b.Label, p.NodeID, label))
			} else if len(actors) == 1 && actors[0] != expected {
				c.r.report(SeverityWarning, CodeSwimlaneActorMismatch,
					fmt.Sprintf("%s places %s in lane %q (implies %s) but node actor tag is %q.", b.Label, p.NodeID, label, expected, actors[0]))
			}
		}
	}
}

// expectedActorForLane derives an expected actor tag id from a lane label
// using a fixed, ordered keyword policy; first match wins, no match means no
// expectation.
func expectedActorForLane(label string) string {
	s := strings.ToLower(label)
	switch {
	case s == "":
		return ""
	case strings.Contains(s, "system"):
		return "actor-system"
	case staffLaneRe.MatchString(s):
		return "actor-staff"
	case strings.Contains(s, "partner"):
		return "actor-partner"
	case applicantLaneRe.MatchString(s):
		return "actor-applicant"
	}
	return ""
}
