package errors

import (
	stderrors "errors"
	"net/http"

	"nestview-web/internal/recovery"
	"nestview-web/internal/wishlist"
	"nestview-web/pkg/backend"
)

// MapError converts a technical error into a user-facing AppError.
//
// Taxonomy: validation errors are caught before any network call and come
// back 400 with their own message; server-rejected requests carry the
// backend's message; transport failures collapse into a generic network
// message. Nothing here triggers a retry; every retry is user-initiated.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	var apiErr *backend.APIError
	if stderrors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		return &AppError{
			TechnicalMessage: err.Error(),
			UserMessage:      apiErr.Message,
			Code:             ErrCodeUpstreamRejected,
			HTTPStatus:       status,
			OriginalError:    err,
		}
	}

	var transportErr *backend.TransportError
	if stderrors.As(err, &transportErr) {
		return &AppError{
			TechnicalMessage: err.Error(),
			UserMessage:      MsgNetworkError,
			Code:             ErrCodeNetwork,
			HTTPStatus:       http.StatusBadGateway,
			OriginalError:    err,
		}
	}

	switch {
	case stderrors.Is(err, wishlist.ErrToggleInFlight):
		return &AppError{
			TechnicalMessage: err.Error(),
			UserMessage:      MsgToggleInFlight,
			Code:             ErrCodeConflict,
			HTTPStatus:       http.StatusConflict,
			OriginalError:    err,
		}
	case stderrors.Is(err, recovery.ErrResendCoolingDown):
		return &AppError{
			TechnicalMessage: err.Error(),
			UserMessage:      MsgRateLimited,
			Code:             ErrCodeRateLimited,
			HTTPStatus:       http.StatusTooManyRequests,
			OriginalError:    err,
		}
	case stderrors.Is(err, recovery.ErrCodeIncomplete),
		stderrors.Is(err, recovery.ErrWrongStep):
		return &AppError{
			TechnicalMessage: err.Error(),
			UserMessage:      err.Error(),
			Code:             ErrCodeValidation,
			HTTPStatus:       http.StatusBadRequest,
			OriginalError:    err,
		}
	default:
		// Local validation errors reach here as plain errors; their text
		// is already user-facing.
		return &AppError{
			TechnicalMessage: err.Error(),
			UserMessage:      err.Error(),
			Code:             ErrCodeValidation,
			HTTPStatus:       http.StatusBadRequest,
			OriginalError:    err,
		}
	}
}
