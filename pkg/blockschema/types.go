// Package blockschema describes the recognized metadata block shapes as Go
// structs, generates JSON Schema (Draft 2020-12) documents from them, and
// runs the optional strict pass that validates each block's JSON against
// its schema.
package blockschema

// TagGroup declares one tag group.
type TagGroup struct {
	ID    string `json:"id" jsonschema:"required"`
	Label string `json:"label,omitempty"`
}

// Tag declares one tag and its group membership.
type Tag struct {
	ID      string `json:"id" jsonschema:"required"`
	GroupID string `json:"groupId" jsonschema:"required"`
	Label   string `json:"label,omitempty"`
}

// TagStoreBlock is the shape of the tag-store block.
type TagStoreBlock struct {
	Groups []TagGroup `json:"groups" jsonschema:"required"`
	Tags   []Tag      `json:"tags" jsonschema:"required"`
}

// Attribute is one declared data-object attribute.
type Attribute struct {
	ID    string `json:"id" jsonschema:"required"`
	Label string `json:"label,omitempty"`
}

// DataObjectData carries the nested attribute list of a data object.
type DataObjectData struct {
	Attributes []Attribute `json:"attributes,omitempty"`
}

// DataObject is one entry of the data-objects catalog.
type DataObject struct {
	ID   string          `json:"id" jsonschema:"required"`
	Name string          `json:"name,omitempty"`
	Data *DataObjectData `json:"data,omitempty"`
}

// DataObjectsBlock is the shape of the data-objects block.
type DataObjectsBlock struct {
	Objects []DataObject `json:"objects" jsonschema:"required"`
}

// ExpandedMetadataBlock is the shape of an expanded-metadata-* block.
type ExpandedMetadataBlock struct {
	DataObjectID           string   `json:"dataObjectId,omitempty"`
	DataObjectAttributeIDs []string `json:"dataObjectAttributeIds,omitempty"`
}

// ExpandedGridBlock is the shape of an expanded-grid-* block: a list of
// node-like entries.
type ExpandedGridBlock []ExpandedMetadataBlock

// Lane is one swimlane declaration.
type Lane struct {
	ID    string `json:"id" jsonschema:"required"`
	Label string `json:"label" jsonschema:"required"`
}

// PlacementRef places a node in a lane.
type PlacementRef struct {
	LaneID string `json:"laneId" jsonschema:"required"`
}

// SwimlaneBlock is the shape of a flowtab-swimlane-* block. Placement keys
// are node ids of the form "node-<integer>".
type SwimlaneBlock struct {
	Lanes     []Lane                  `json:"lanes" jsonschema:"required"`
	Placement map[string]PlacementRef `json:"placement" jsonschema:"required"`
}
