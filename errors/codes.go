package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Pipeline authoring errors. These surface at validation or plan time,
// never at task runtime.
const (
	// ErrCodeDuplicateTask indicates two tasks share one name.
	ErrCodeDuplicateTask ErrorCode = "DUPLICATE_TASK"
	// ErrCodeUnknownPredecessor indicates a runAfter entry names an undeclared task.
	ErrCodeUnknownPredecessor ErrorCode = "UNKNOWN_PREDECESSOR"
	// ErrCodeCycleDetected indicates the task graph is not a DAG.
	ErrCodeCycleDetected ErrorCode = "CYCLE_DETECTED"
	// ErrCodeUnboundParameter indicates a $(params.x) reference with no declared parameter.
	ErrCodeUnboundParameter ErrorCode = "UNBOUND_PARAMETER"
	// ErrCodeUnsupportedReference indicates a $(...) expression outside the params family.
	ErrCodeUnsupportedReference ErrorCode = "UNSUPPORTED_REFERENCE"
	// ErrCodeUnknownWorkspace indicates a binding to an undeclared pipeline workspace.
	ErrCodeUnknownWorkspace ErrorCode = "UNKNOWN_WORKSPACE"
	// ErrCodeUnknownExecutor indicates no executor is registered for a task reference.
	ErrCodeUnknownExecutor ErrorCode = "UNKNOWN_EXECUTOR"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Authentication errors
const (
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeTokenExpired indicates the authentication token has expired.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeInvalidToken indicates the authentication token is invalid.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
)

// Internal/transport errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeExternalService indicates an error from an external service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeRateLimited indicates the client exceeded the request rate.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:         true,
	ErrCodeExternalService: true,
	ErrCodeRateLimited:     true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Authoring errors are never retryable: the definition itself is wrong.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
