package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error carried from services up to handlers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// MarshalJSON keeps the wrapped error out of responses.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrUserNotActivated   = New(CodeUserNotActivated, "Email address is not activated", http.StatusForbidden)
	ErrUserSuspended      = New(CodeUserSuspended, "User account suspended", http.StatusForbidden)
	ErrUserBanned         = New(CodeUserBanned, "User account banned", http.StatusForbidden)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)

	// Profiles
	ErrProfileNotFound      = New(CodeProfileNotFound, "Profile not found", http.StatusNotFound)
	ErrProfileAlreadyExists = New(CodeProfileAlreadyExists, "Profile already exists for this user", http.StatusConflict)
	ErrAliasExhausted       = New(CodeInternalError, "failed to generate unique name", http.StatusInternalServerError)

	// Verification
	ErrVerificationNotFound = New(CodeVerificationNotFound, "Verification record not found", http.StatusNotFound)
	ErrVerificationPending  = New(CodeConflict, "A verification of this type is already pending", http.StatusConflict)
	ErrVerificationApproved = New(CodeConflict, "A verification of this type is already approved", http.StatusConflict)
	ErrVerificationReviewed = New(CodeInvalidStatus, "Verification has already been reviewed", http.StatusConflict)
	ErrInvalidFileType      = New(CodeInvalidFileType, "Invalid file type", http.StatusBadRequest)
	ErrFileTooLarge         = New(CodeFileTooLarge, "File too large", http.StatusBadRequest)

	// Chat
	ErrConversationNotFound = New(CodeConversationNotFound, "Conversation not found", http.StatusNotFound)
	ErrMessageNotFound      = New(CodeMessageNotFound, "Message not found", http.StatusNotFound)
	ErrNotMessageSender     = New(CodeForbidden, "Only the sender can delete a message", http.StatusForbidden)
	ErrNotParticipant       = New(CodeForbidden, "User is not a participant in this conversation", http.StatusForbidden)

	// Moderation
	ErrBlockAlreadyExists = New(CodeConflict, "User is already blocked", http.StatusConflict)
	ErrReportNotFound     = New(CodeConflict, "Report not found", http.StatusNotFound)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Helpers

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func NewInternalError(message string) *AppError {
	return New(CodeInternalError, message, http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeUserNotFound, message, http.StatusNotFound)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
