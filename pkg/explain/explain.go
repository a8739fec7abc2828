// Package explain holds the human documentation for each issue code and
// renders it for the terminal.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/nexusmap/diregram/pkg/verify"
)

var docs = map[string]string{
	verify.CodeUnclosedCodeBlock: `# UNCLOSED_CODE_BLOCK (error)

A fenced code block was opened with three backticks but never closed before
the end of the document. Everything after the opening fence is treated as
code, so markers and metadata blocks below it are invisible to the importer.

**Fix:** add the missing closing fence. The reported line number points near
the opening fence.`,

	verify.CodeInvalidJSON: `# INVALID_JSON (error)

A labeled fenced block could not be parsed as JSON. The block is ignored
entirely, which usually cascades into missing-store or unknown-reference
errors elsewhere.

**Fix:** repair the JSON body. Trailing commas and unquoted keys are the
usual culprits.`,

	verify.CodeMissingTagStore: "# MISSING_TAG_STORE (error)\n\n" +
		"A tree line uses tags, a flow marker or an expid marker, but the document\n" +
		"has no ```tag-store``` block to resolve them against.\n\n" +
		"**Fix:** add a ```tag-store``` block declaring `groups` and `tags`.",

	verify.CodeActorPrefixInTitle: `# ACTOR_PREFIX_IN_TITLE (error)

The line title starts with a role name and a colon (System:, Staff:,
Applicant:, Partner:). Actor information belongs in actor tags and
swimlanes, not in prose titles.

**Fix:** drop the prefix and tag the line with the matching actor tag.`,

	verify.CodeUnknownTagID: `# UNKNOWN_TAG_ID (error)

A tags: marker references an id that the tag-store does not declare.

**Fix:** declare the tag in the tag-store, or correct the id.`,

	verify.CodeMissingRequiredGroup: "# MISSING_REQUIRED_TAG_GROUP (error)\n\n" +
		"The tag-store lacks a group the document relies on: `tg-actors` is required\n" +
		"once any #flow# line exists, `tg-uiSurface` once any expid marker exists.\n\n" +
		"**Fix:** declare the group in the tag-store's `groups` list.",

	verify.CodeMissingActorTag: `# MISSING_ACTOR_TAG (error)

A #flow# line carries no actor tag. Every flow step must name exactly one
actor, via a tag in the tg-actors group or an actor- prefixed tag id.

**Fix:** add exactly one actor tag to the line.`,

	verify.CodeMultipleActorTags: `# MULTIPLE_ACTOR_TAGS (error)

A #flow# line carries more than one actor tag; a flow step has exactly one
responsible actor.

**Fix:** keep one actor tag. If two actors genuinely participate, split the
step or model the hand-off in a swimlane.`,

	verify.CodeMissingUISurfaceTag: `# MISSING_UI_SURFACE_TAG (error)

A line carries an expid: marker but no tag from the tg-uiSurface group, so
the UI-surface expansion cannot be attached anywhere.

**Fix:** tag the line with the matching UI-surface tag.`,

	verify.CodeDoattrsWithoutDo: `# DOATTRS_WITHOUT_DO (error)

A doattrs: marker (or a dataObjectAttributeIds field in an expanded block)
appeared without the do: binding (dataObjectId) that gives the attribute ids
an object to resolve against.

**Fix:** add the do: marker or dataObjectId naming the data object.`,

	verify.CodeUnknownDataObjectAttr: `# UNKNOWN_DATA_OBJECT_ATTRIBUTE_ID (warning)

An attribute id does not appear in the referenced data object's declared
attribute set. The catalog mapping is best-effort, so this is a warning.

**Fix:** declare the attribute on the object in the data-objects block, or
correct the id.`,

	verify.CodeCrossTimeframeSignal: `# CROSS_TIMEFRAME_SIGNAL (warning)

A #flow# line contains wording that suggests waiting, queues or multi-week
timeframes. Flow lines model session-scoped steps; long-running hand-offs
belong in Flowtab/lifecycle hubs.

**Fix:** split the step so the asynchronous wait happens between flows, not
inside one.`,

	verify.CodeSwimlaneNodeMissingTag: `# SWIMLANE_NODE_MISSING_ACTOR_TAG (warning)

A swimlane places a node in a lane whose label implies an actor, but the
referenced tree line carries no actor tag.

**Fix:** tag the line with the actor the lane implies.`,

	verify.CodeSwimlaneActorMismatch: `# SWIMLANE_ACTOR_MISMATCH (warning)

The actor tag on a tree line disagrees with the actor implied by the lane
its node is placed in.

**Fix:** move the node to the matching lane or fix the line's actor tag.`,

	verify.CodeInvalidRule: `# INVALID_RULE (error)

A custom rule in .diregram.yaml failed to compile. The rule is skipped for
the whole run.

**Fix:** correct the rule's when expression.`,

	verify.CodeMetadataSchema: `# METADATA_SCHEMA (warning)

Strict mode only: a metadata block parsed as JSON but does not match the
declared schema for its block type.

**Fix:** align the block body with the schema (see: diregram schema <type>).`,
}

// Codes returns all documented issue codes, sorted.
func Codes() []string {
	out := make([]string, 0, len(docs))
	for code := range docs {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Text returns the raw markdown documentation for a code.
func Text(code string) (string, bool) {
	md, ok := docs[code]
	return md, ok
}

// Render converts a code's documentation to styled terminal output. It
// falls back to the raw markdown if rendering fails.
func Render(code string) (string, error) {
	md, ok := docs[code]
	if !ok {
		return "", fmt.Errorf("unknown issue code %q (known: %s)", code, strings.Join(Codes(), ", "))
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md, nil
	}
	out, err := r.Render(md)
	if err != nil {
		return md, nil
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}
