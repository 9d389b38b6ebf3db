package errors

// Generic error code definitions used as sensible defaults across modules.
const (
	CodeStorageGeneric    = "FS-000"
	CodeValidationGeneric = "VAL-000"
	CodeConfigGeneric     = "CFG-000"
	CodeManifestGeneric   = "DB-000"
	CodeSystemGeneric     = "SYS-000"
)
