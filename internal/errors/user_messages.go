package errors

// User-friendly error messages
const (
	MsgNetworkError   = "We couldn't reach the server. Please check your connection and try again."
	MsgUnauthorized   = "Please sign in to continue."
	MsgRateLimited    = "You're going too fast! Please wait a moment and try again."
	MsgToggleInFlight = "Hang on, we're still saving your last change for this property."
	MsgInternalError  = "Something went wrong on our end. Please try again later."
)
