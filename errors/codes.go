package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline definition errors
const (
	// ErrCodeInvalidPipeline indicates a malformed stage list.
	ErrCodeInvalidPipeline ErrorCode = "INVALID_PIPELINE"
	// ErrCodeTypeMismatch indicates a stage received an element of an unexpected type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeInvalidKey indicates a grouping key that cannot be used as a map key.
	ErrCodeInvalidKey ErrorCode = "INVALID_KEY"
)

// Lookup and configuration errors
const (
	// ErrCodeNotFound indicates the requested item was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidConfig indicates configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Execution errors
const (
	// ErrCodeCanceled indicates the evaluation was canceled through its context.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeInternal indicates an unexpected failure, such as a recovered panic.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
