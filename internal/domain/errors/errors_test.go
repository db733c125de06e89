package errors

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecell/internal/errors"
)

func TestWrapMessageKeepsIdentity(t *testing.T) {
	err := ErrInvalidCredentials.WrapMessage("sign in")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	assert.Contains(t, err.Error(), "sign in")

	var re *RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "INVALID_CREDENTIALS", re.Code())
}

func TestFamiliesAreDisjoint(t *testing.T) {
	err := ErrNotFound.WrapMessage("cache read")

	var re *RemoteError
	assert.False(t, errors.As(err, &re))

	var le *LocalError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "NOT_FOUND", le.Code())
}

func TestClassificationFlags(t *testing.T) {
	assert.True(t, ErrNoInternet.Recoverable())
	assert.True(t, ErrServerError.Recoverable())
	assert.True(t, ErrOperationCancelled.Recoverable())
	assert.False(t, ErrInvalidCredentials.Recoverable())

	assert.True(t, ErrUnauthorized.RequiresAuth())
	assert.True(t, ErrAuthFailed.RequiresAuth())
	assert.True(t, ErrUserNotFound.RequiresAuth())
	assert.False(t, ErrForbidden.RequiresAuth())

	assert.True(t, ErrCacheFailure.Recoverable())
	assert.True(t, ErrCacheExpired.Recoverable())
	assert.False(t, ErrDiskFull.Recoverable())
}

func TestFromHTTPStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   *RemoteError
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrDocumentNotFound},
		{"timeout", http.StatusRequestTimeout, ErrRequestTimeout},
		{"rate limited", http.StatusTooManyRequests, ErrTooManyRequests},
		{"other 4xx", http.StatusUnprocessableEntity, ErrClientError},
		{"5xx", http.StatusBadGateway, ErrServerError},
		{"unexpected", http.StatusOK, ErrRemoteUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, FromHTTPStatus(tt.status))
		})
	}
}

func TestAsRemoteDowngrades(t *testing.T) {
	assert.Same(t, ErrEmailAlreadyExists, AsRemote(ErrEmailAlreadyExists.WrapMessage("signup")))
	assert.Same(t, ErrOperationCancelled, AsRemote(context.Canceled))
	assert.Same(t, ErrRequestTimeout, AsRemote(context.DeadlineExceeded))
	assert.Same(t, ErrRemoteUnknown, AsRemote(errors.New("boom")))
}

func TestAsLocalDowngrades(t *testing.T) {
	assert.Same(t, ErrInsertFailed, AsLocal(ErrInsertFailed.WrapMessage("upsert")))
	assert.Same(t, ErrLocalUnknown, AsLocal(errors.New("boom")))
}
