package verify

// Severity classifies an issue. Structural and taxonomy violations that
// break reference resolution are errors; best-effort and heuristic findings
// are warnings.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding. Issues are immutable once created; the full
// discovery-ordered set is the run's only result besides the exit status.
type Issue struct {
	Severity Severity
	Code     string
	Message  string
}

// Issue codes.
const (
	CodeUnclosedCodeBlock      = "UNCLOSED_CODE_BLOCK"
	CodeInvalidJSON            = "INVALID_JSON"
	CodeMissingTagStore        = "MISSING_TAG_STORE"
	CodeActorPrefixInTitle     = "ACTOR_PREFIX_IN_TITLE"
	CodeUnknownTagID           = "UNKNOWN_TAG_ID"
	CodeMissingRequiredGroup   = "MISSING_REQUIRED_TAG_GROUP"
	CodeMissingActorTag        = "MISSING_ACTOR_TAG"
	CodeMultipleActorTags      = "MULTIPLE_ACTOR_TAGS"
	CodeMissingUISurfaceTag    = "MISSING_UI_SURFACE_TAG"
	CodeDoattrsWithoutDo       = "DOATTRS_WITHOUT_DO"
	CodeUnknownDataObjectAttr  = "UNKNOWN_DATA_OBJECT_ATTRIBUTE_ID"
	CodeCrossTimeframeSignal   = "CROSS_TIMEFRAME_SIGNAL"
	CodeSwimlaneNodeMissingTag = "SWIMLANE_NODE_MISSING_ACTOR_TAG"
	CodeSwimlaneActorMismatch  = "SWIMLANE_ACTOR_MISMATCH"

	// Codes produced by the optional passes, not the core engine.
	CodeInvalidRule    = "INVALID_RULE"
	CodeMetadataSchema = "METADATA_SCHEMA"
)
