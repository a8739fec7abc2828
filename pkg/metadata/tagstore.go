package metadata

// TagStore is the tag taxonomy declared by the tag-store block: the set of
// declared group ids and the tag id → group id table.
type TagStore struct {
	Groups   map[string]bool
	TagGroup map[string]string
}

// TagStore builds the taxonomy from the tag-store block. ok is false when
// the block is absent or its value is not a JSON object; the returned store
// is usable (empty) either way. Entries with a missing or non-string id (or
// groupId) are skipped individually.
func (t *Table) TagStore() (*TagStore, bool) {
	store := &TagStore{
		Groups:   make(map[string]bool),
		TagGroup: make(map[string]string),
	}
	v, found := t.Get(LabelTagStore)
	obj, isObj := v.(map[string]any)
	if !found || !isObj {
		return store, false
	}
	if groups, ok := obj["groups"].([]any); ok {
		for _, g := range groups {
			gm, ok := g.(map[string]any)
			if !ok {
				continue
			}
			if id, ok := gm["id"].(string); ok {
				store.Groups[id] = true
			}
		}
	}
	if tags, ok := obj["tags"].([]any); ok {
		for _, tag := range tags {
			tm, ok := tag.(map[string]any)
			if !ok {
				continue
			}
			id, okID := tm["id"].(string)
			gid, okGID := tm["groupId"].(string)
			if okID && okGID {
				store.TagGroup[id] = gid
			}
		}
	}
	return store, true
}
