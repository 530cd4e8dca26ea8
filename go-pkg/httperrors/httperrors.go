package httperrors

const (
	ErrorCodeInternalFailure  = "InternalFailure"
	ErrorCodeInvalidRequest   = "InvalidRequest"
	ErrorCodeValidationError  = "ValidationError"
	ErrorCodeResourceNotFound = "ResourceNotFound"
	ErrorCodeResourceConflict = "ResourceConflict"
	ErrorCodeForbidden        = "Forbidden"
	ErrorCodeUnavailable      = "Unavailable"
)
