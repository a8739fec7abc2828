package blockschema

import (
	"fmt"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/nexusmap/diregram/pkg/metadata"
	"github.com/nexusmap/diregram/pkg/verify"
)

// kindForLabel resolves a block type label to a schema kind, or "" for
// labels the strict pass does not cover.
func kindForLabel(label string) string {
	switch {
	case label == metadata.LabelTagStore:
		return "tag-store"
	case label == metadata.LabelDataObjects:
		return "data-objects"
	case strings.HasPrefix(label, metadata.PrefixExpandedMetadata):
		return "expanded-metadata"
	case strings.HasPrefix(label, metadata.PrefixExpandedGrid):
		return "expanded-grid"
	case strings.HasPrefix(label, metadata.PrefixSwimlane):
		return "flowtab-swimlane"
	}
	return ""
}

// Check validates every recognized metadata block against its generated
// schema. Findings are warnings — like the catalog checks, the pass is
// best-effort and never changes the exit status on its own.
func Check(table *metadata.Table) ([]verify.Issue, error) {
	compiled := make(map[string]*sjsonschema.Schema)
	var issues []verify.Issue

	for _, b := range table.Blocks() {
		kind := kindForLabel(b.Label)
		if kind == "" {
			continue
		}
		sch, ok := compiled[kind]
		if !ok {
			var err error
			sch, err = compile(kind)
			if err != nil {
				return issues, fmt.Errorf("compile %s schema: %w", kind, err)
			}
			compiled[kind] = sch
		}
		err := sch.Validate(b.Value)
		if err == nil {
			continue
		}
		if ve, ok := err.(*sjsonschema.ValidationError); ok {
			for _, cause := range flatten(ve) {
				at := "/" + strings.Join(cause.InstanceLocation, "/")
				issues = append(issues, verify.Issue{
					Severity: verify.SeverityWarning,
					Code:     verify.CodeMetadataSchema,
					Message:  fmt.Sprintf("```%s``` does not match the %s schema: %v (at %s)", b.Label, kind, cause.ErrorKind, at),
				})
			}
		} else {
			issues = append(issues, verify.Issue{
				Severity: verify.SeverityWarning,
				Code:     verify.CodeMetadataSchema,
				Message:  fmt.Sprintf("```%s``` does not match the %s schema: %v", b.Label, kind, err),
			})
		}
	}
	return issues, nil
}

// compile generates the schema document for a kind and compiles it.
func compile(kind string) (*sjsonschema.Schema, error) {
	data, err := Generate(kind)
	if err != nil {
		return nil, err
	}
	doc, err := sjsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	name := kind + ".json"
	c := sjsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return c.Compile(name)
}

// flatten recursively collects all leaf validation errors.
func flatten(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flatten(cause)...)
	}
	return flat
}
