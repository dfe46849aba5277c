package apperrors

// ErrorCode identifies an application error class in responses and logs.
type ErrorCode string

const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"

	// Resources
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeProfileNotFound      ErrorCode = "PROFILE_NOT_FOUND"
	CodeVerificationNotFound ErrorCode = "VERIFICATION_NOT_FOUND"
	CodeMessageNotFound      ErrorCode = "MESSAGE_NOT_FOUND"
	CodeConversationNotFound ErrorCode = "CONVERSATION_NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists   ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeProfileAlreadyExists ErrorCode = "PROFILE_ALREADY_EXISTS"
	CodeConflict             ErrorCode = "CONFLICT"
	CodeUserNotActivated     ErrorCode = "USER_NOT_ACTIVATED"
	CodeUserSuspended        ErrorCode = "USER_SUSPENDED"
	CodeUserBanned           ErrorCode = "USER_BANNED"
	CodeInvalidStatus        ErrorCode = "INVALID_STATUS"

	// Files
	CodeFileTooLarge     ErrorCode = "FILE_TOO_LARGE"
	CodeInvalidFileType  ErrorCode = "INVALID_FILE_TYPE"
	CodeFileUploadFailed ErrorCode = "FILE_UPLOAD_FAILED"

	// System
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
