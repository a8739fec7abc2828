package blockschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/invopop/jsonschema"
)

// kinds maps a schema kind name to the Go type describing the block shape.
var kinds = map[string]reflect.Type{
	"tag-store":         reflect.TypeOf(TagStoreBlock{}),
	"data-objects":      reflect.TypeOf(DataObjectsBlock{}),
	"expanded-metadata": reflect.TypeOf(ExpandedMetadataBlock{}),
	"expanded-grid":     reflect.TypeOf(ExpandedGridBlock{}),
	"flowtab-swimlane":  reflect.TypeOf(SwimlaneBlock{}),
}

// Kinds returns the known schema kind names, sorted.
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Generate produces a JSON Schema Draft 2020-12 document for a metadata
// block kind from its Go struct, using invopop/jsonschema.
func Generate(kind string) ([]byte, error) {
	t, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown block kind %q (known: %v)", kind, Kinds())
	}

	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.ReflectFromType(t)
	s.ID = jsonschema.ID(fmt.Sprintf("https://github.com/nexusmap/diregram/schemas/%s.json", kind))
	s.Title = fmt.Sprintf("Diregram %s block", kind)
	s.Description = fmt.Sprintf("Schema for the body of a ```%s``` metadata block (Draft 2020-12)", kind)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
