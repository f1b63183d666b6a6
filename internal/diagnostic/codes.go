package diagnostic

// Diagnostic codes reported by the mapping validator and the plan resolver.
const (
	CodeTypeNotFound           = "type_not_found"
	CodeInvalidPair            = "invalid_pair"
	CodeMissingConstructor     = "missing_constructor"
	CodeBadConstructor         = "bad_constructor"
	CodeBadLifecycleMethod     = "bad_lifecycle_method"
	CodeDuplicateKey           = "duplicate_key"
	CodeAmbiguousMatch         = "ambiguous_match"
	CodeUnmatchedMethod        = "unmatched_method"
	CodeSkippedMethod          = "skipped_method"
	CodeNameCollision          = "destination_name_collision"
	CodeUnsupportedDirective   = "unsupported_directive"
	CodeUnsupportedDestination = "unsupported_destination"
)
