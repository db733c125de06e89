package errors

import (
	"context"
	"net/http"

	"ecell/internal/errors"
)

// FromHTTPStatus maps an HTTP response status to a remote-family error.
// 2xx statuses are the caller's responsibility and map to UNKNOWN here.
func FromHTTPStatus(status int) *RemoteError {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrDocumentNotFound
	case http.StatusRequestTimeout:
		return ErrRequestTimeout
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	}

	switch {
	case status >= 400 && status < 500:
		return ErrClientError
	case status >= 500 && status < 600:
		return ErrServerError
	default:
		return ErrRemoteUnknown
	}
}

// AsRemote extracts the remote-family value from an error chain, downgrading
// anything else to the family's UNKNOWN. Context cancellation and deadline
// expiry classify as OPERATION_CANCELLED and REQUEST_TIMEOUT respectively
// before the downgrade.
func AsRemote(err error) *RemoteError {
	var re *RemoteError
	if errors.As(err, &re) {
		return re
	}
	if errors.Is(err, context.Canceled) {
		return ErrOperationCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrRequestTimeout
	}
	return ErrRemoteUnknown
}

// AsLocal extracts the local-family value from an error chain, downgrading
// anything else to the family's UNKNOWN.
func AsLocal(err error) *LocalError {
	var le *LocalError
	if errors.As(err, &le) {
		return le
	}
	return ErrLocalUnknown
}
