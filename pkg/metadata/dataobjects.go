package metadata

import "strings"

// ObjectNameAttrID is the synthetic attribute id every data object allows,
// representing the object's own name.
const ObjectNameAttrID = "__objectName__"

// Catalog maps a data-object id to its set of allowed attribute ids.
type Catalog map[string]map[string]bool

// Allows reports whether the object exists in the catalog and permits the
// attribute id.
func (c Catalog) Allows(objectID, attrID string) bool {
	attrs, ok := c[objectID]
	return ok && attrs[attrID]
}

// DataObjects builds the attribute catalog from the data-objects block.
// Every object allows the synthetic own-name attribute plus each string id
// in its nested attribute list. Malformed entries are skipped individually;
// an absent or malformed block yields an empty catalog.
func (t *Table) DataObjects() Catalog {
	catalog := make(Catalog)
	v, found := t.Get(LabelDataObjects)
	obj, isObj := v.(map[string]any)
	if !found || !isObj {
		return catalog
	}
	objs, ok := obj["objects"].([]any)
	if !ok {
		return catalog
	}
	for _, o := range objs {
		om, ok := o.(map[string]any)
		if !ok {
			continue
		}
		id, ok := om["id"].(string)
		if !ok || strings.TrimSpace(id) == "" {
			continue
		}
		attrs := map[string]bool{ObjectNameAttrID: true}
		if data, ok := om["data"].(map[string]any); ok {
			if list, ok := data["attributes"].([]any); ok {
				for _, a := range list {
					am, ok := a.(map[string]any)
					if !ok {
						continue
					}
					if aid, ok := am["id"].(string); ok && strings.TrimSpace(aid) != "" {
						attrs[strings.TrimSpace(aid)] = true
					}
				}
			}
		}
		catalog[strings.TrimSpace(id)] = attrs
	}
	return catalog
}
