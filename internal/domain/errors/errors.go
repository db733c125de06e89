// Package errors defines the data-error taxonomy surfaced by the account
// synchronization layer. Failures fall into two disjoint families: Remote
// (authentication provider, document store, the network between them) and
// Local (on-device cache store). Every facade operation returns an error
// chain that bottoms out in exactly one value from exactly one family;
// unexpected faults are downgraded to the family's UNKNOWN value at the
// outermost boundary.
package errors

import (
	"ecell/internal/errors"
)

// DataError is the classification interface shared by both families.
type DataError interface {
	error
	Code() string       // Business error code, e.g. "DOCUMENT_NOT_FOUND"
	Message() string    // Static user-facing message
	Recoverable() bool  // The caller may retry the same operation
	RequiresAuth() bool // The failure demands re-authentication
}

type baseError struct {
	code         string
	message      string
	recoverable  bool
	requiresAuth bool
}

// Error implements the error interface.
func (e *baseError) Error() string {
	return e.message
}

// Code returns the business error code.
func (e *baseError) Code() string {
	return e.code
}

// Message returns the static user-facing message.
func (e *baseError) Message() string {
	return e.message
}

// Recoverable reports whether the caller may retry the failed operation.
func (e *baseError) Recoverable() bool {
	return e.recoverable
}

// RequiresAuth reports whether the failure demands re-authentication.
func (e *baseError) RequiresAuth() bool {
	return e.requiresAuth
}

// RemoteError marks a failure of the authentication provider, the document
// store, or the network between them.
type RemoteError struct{ baseError }

// WrapMessage wraps the error with additional context message.
func (e *RemoteError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// LocalError marks a failure of the on-device cache store.
type LocalError struct{ baseError }

// WrapMessage wraps the error with additional context message.
func (e *LocalError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// NewRemoteError creates a remote-family error value.
func NewRemoteError(code, message string, recoverable, requiresAuth bool) *RemoteError {
	return &RemoteError{baseError{
		code:         code,
		message:      message,
		recoverable:  recoverable,
		requiresAuth: requiresAuth,
	}}
}

// NewLocalError creates a local-family error value.
func NewLocalError(code, message string, recoverable bool) *LocalError {
	return &LocalError{baseError{
		code:        code,
		message:     message,
		recoverable: recoverable,
	}}
}

// Remote family.
var (
	ErrNoInternet = NewRemoteError(
		"NO_INTERNET",
		"No internet connection. Please check your network.",
		true, false,
	)

	ErrRequestTimeout = NewRemoteError(
		"REQUEST_TIMEOUT",
		"Request timed out. Please try again.",
		true, false,
	)

	ErrTooManyRequests = NewRemoteError(
		"TOO_MANY_REQUESTS",
		"Too many requests. Please wait and try again.",
		false, false,
	)

	ErrServerError = NewRemoteError(
		"SERVER_ERROR",
		"Server error. Please try again later.",
		true, false,
	)

	ErrClientError = NewRemoteError(
		"CLIENT_ERROR",
		"Request failed. Please check your input.",
		false, false,
	)

	ErrUnauthorized = NewRemoteError(
		"UNAUTHORIZED",
		"Session expired. Please login again.",
		false, true,
	)

	ErrForbidden = NewRemoteError(
		"FORBIDDEN",
		"You don't have permission to access this.",
		false, false,
	)

	ErrAuthFailed = NewRemoteError(
		"AUTH_FAILED",
		"Authentication failed. Please login again.",
		false, true,
	)

	ErrEmailAlreadyExists = NewRemoteError(
		"EMAIL_ALREADY_EXISTS",
		"This email is already registered.",
		false, false,
	)

	ErrInvalidCredentials = NewRemoteError(
		"INVALID_CREDENTIALS",
		"Invalid email or password.",
		false, false,
	)

	ErrUserNotFound = NewRemoteError(
		"USER_NOT_FOUND",
		"Account not found. Please login again.",
		false, true,
	)

	ErrStoreFailure = NewRemoteError(
		"STORE_ERROR",
		"Database operation failed. Please try again.",
		false, false,
	)

	ErrDocumentNotFound = NewRemoteError(
		"DOCUMENT_NOT_FOUND",
		"Requested data not found.",
		false, false,
	)

	ErrNoDocumentsFound = NewRemoteError(
		"NO_DOCUMENTS_FOUND",
		"No data available.",
		false, false,
	)

	ErrDuplicateEntry = NewRemoteError(
		"DUPLICATE_ENTRY",
		"This entry already exists.",
		false, false,
	)

	ErrSerialization = NewRemoteError(
		"SERIALIZATION_ERROR",
		"Failed to process server response.",
		false, false,
	)

	ErrOperationCancelled = NewRemoteError(
		"OPERATION_CANCELLED",
		"Operation was cancelled.",
		true, false,
	)

	ErrRemoteUnknown = NewRemoteError(
		"UNKNOWN",
		"An unexpected error occurred. Please try again.",
		false, false,
	)
)

// Local family.
var (
	ErrDatabaseFailure = NewLocalError(
		"DATABASE_ERROR",
		"Local database error occurred.",
		false,
	)

	ErrInsertFailed = NewLocalError(
		"INSERT_FAILED",
		"Failed to save data locally.",
		false,
	)

	ErrUpdateFailed = NewLocalError(
		"UPDATE_FAILED",
		"Failed to update local data.",
		false,
	)

	ErrDeleteFailed = NewLocalError(
		"DELETE_FAILED",
		"Failed to delete local data.",
		false,
	)

	ErrNotFound = NewLocalError(
		"NOT_FOUND",
		"Data not found in local storage.",
		false,
	)

	ErrNullResult = NewLocalError(
		"NULL_RESULT",
		"No local data available.",
		false,
	)

	ErrConstraintViolation = NewLocalError(
		"CONSTRAINT_VIOLATION",
		"Local data constraint violation.",
		false,
	)

	ErrDiskFull = NewLocalError(
		"DISK_FULL",
		"Device storage is full.",
		false,
	)

	ErrCacheFailure = NewLocalError(
		"CACHE_ERROR",
		"Cache operation failed.",
		true,
	)

	ErrCacheCorrupted = NewLocalError(
		"CACHE_CORRUPTED",
		"Local cache is corrupted.",
		false,
	)

	ErrCacheExpired = NewLocalError(
		"CACHE_EXPIRED",
		"Cached data has expired.",
		true,
	)

	ErrMappingFailed = NewLocalError(
		"MAPPING_ERROR",
		"Failed to process stored data.",
		false,
	)

	ErrValidationFailed = NewLocalError(
		"VALIDATION_ERROR",
		"Input validation failed.",
		false,
	)

	ErrLocalUnknown = NewLocalError(
		"UNKNOWN",
		"An unexpected local error occurred.",
		false,
	)
)
