package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"nestview-web/internal/recovery"
	"nestview-web/internal/wishlist"
	"nestview-web/pkg/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorNil(t *testing.T) {
	assert.Nil(t, MapError(nil))
}

func TestMapErrorBackendRejection(t *testing.T) {
	err := &backend.APIError{Message: "no account for that address", StatusCode: http.StatusNotFound}
	appErr := MapError(err)

	require.NotNil(t, appErr)
	assert.Equal(t, "no account for that address", appErr.UserMessage)
	assert.Equal(t, ErrCodeUpstreamRejected, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)
}

func TestMapErrorBackendRejectionWith200(t *testing.T) {
	// success=false on a 2xx response still maps to a client-visible failure
	err := &backend.APIError{Message: "nope", StatusCode: http.StatusOK}
	appErr := MapError(err)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
}

func TestMapErrorTransportFailureIsGeneric(t *testing.T) {
	err := &backend.TransportError{Err: stderrors.New("dial tcp: connection refused")}
	appErr := MapError(err)

	assert.Equal(t, MsgNetworkError, appErr.UserMessage)
	assert.Equal(t, ErrCodeNetwork, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
	assert.NotContains(t, appErr.UserMessage, "dial tcp", "transport detail never reaches the user")
}

func TestMapErrorWrappedErrorsAreRecognized(t *testing.T) {
	err := fmt.Errorf("toggling: %w", wishlist.ErrToggleInFlight)
	appErr := MapError(err)
	assert.Equal(t, ErrCodeConflict, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestMapErrorResendCooldown(t *testing.T) {
	appErr := MapError(recovery.ErrResendCoolingDown)
	assert.Equal(t, ErrCodeRateLimited, appErr.Code)
	assert.Equal(t, http.StatusTooManyRequests, appErr.HTTPStatus)
}

func TestMapErrorLocalValidationKeepsItsMessage(t *testing.T) {
	appErr := MapError(stderrors.New("password must be at least 8 characters"))
	assert.Equal(t, "password must be at least 8 characters", appErr.UserMessage)
	assert.Equal(t, ErrCodeValidation, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

func TestMapErrorPassesThroughAppError(t *testing.T) {
	original := &AppError{UserMessage: "u", Code: ErrCodeInternal, HTTPStatus: http.StatusInternalServerError}
	assert.Same(t, original, MapError(original))
}
