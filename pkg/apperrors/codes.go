package apperrors

// ErrorCode identifies the class of an application error.
type ErrorCode string

const (
	// System errors
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError      ErrorCode = "DATABASE_ERROR"
	CodeConfigurationError ErrorCode = "CONFIGURATION_ERROR"

	// Business-logic errors
	CodeNotFound          ErrorCode = "NOT_FOUND"
	CodeAlreadyExists     ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	CodeConflict          ErrorCode = "CONFLICT"
	CodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation  ErrorCode = "INVALID_OPERATION"
	CodeIllegalTransition ErrorCode = "ILLEGAL_TRANSITION"

	// Authentication / authorization
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
)
