package blockschema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nexusmap/diregram/pkg/metadata"
	"github.com/nexusmap/diregram/pkg/verify"
)

func TestGenerate_KnownKinds(t *testing.T) {
	for _, kind := range Kinds() {
		data, err := Generate(kind)
		if err != nil {
			t.Fatalf("Generate(%s): %v", kind, err)
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("Generate(%s) is not valid JSON: %v", kind, err)
		}
		if doc["$schema"] != "https://json-schema.org/draft/2020-12/schema" {
			t.Errorf("Generate(%s): $schema = %v", kind, doc["$schema"])
		}
	}
}

func TestGenerate_UnknownKind(t *testing.T) {
	if _, err := Generate("bogus"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func scanOne(t *testing.T, label, body string) *metadata.Table {
	t.Helper()
	table, perrs := metadata.Scan("```" + label + "\n" + body + "\n```\n")
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	return table
}

func TestCheck_ValidTagStore(t *testing.T) {
	table := scanOne(t, "tag-store",
		`{"groups":[{"id":"tg-actors"}],"tags":[{"id":"actor-staff","groupId":"tg-actors"}]}`)
	issues, err := Check(table)
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestCheck_MissingRequiredField(t *testing.T) {
	table := scanOne(t, "tag-store", `{"groups":[]}`)
	issues, err := Check(table)
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) == 0 {
		t.Fatal("expected schema issues for missing tags field")
	}
	for _, is := range issues {
		if is.Severity != verify.SeverityWarning || is.Code != verify.CodeMetadataSchema {
			t.Errorf("issue = %+v, want METADATA_SCHEMA warning", is)
		}
		if !strings.Contains(is.Message, "```tag-store```") {
			t.Errorf("message should name the block: %s", is.Message)
		}
	}
}

func TestCheck_WrongTypeInSwimlane(t *testing.T) {
	table := scanOne(t, "flowtab-swimlane-1",
		`{"lanes":[{"id":"l1","label":7}],"placement":{}}`)
	issues, err := Check(table)
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) == 0 {
		t.Error("expected schema issues for non-string lane label")
	}
}

// Labels outside the recognized set are not the strict pass's business.
func TestCheck_IgnoresUnknownLabels(t *testing.T) {
	table := scanOne(t, "something-else", `{"free":"form"}`)
	issues, err := Check(table)
	if err != nil {
		t.Fatal(err)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues for unrecognized label, got %v", issues)
	}
}
