package backend

import (
	"context"
	"net/http"
)

// IssueRecoveryCode asks the backend to send a one-time recovery code to
// the given address.
func (c *Client) IssueRecoveryCode(ctx context.Context, email string) error {
	_, err := c.do(ctx, "issue_recovery_code", http.MethodPost, "/api/auth/forgot-password", nil, map[string]string{
		"email": email,
	})
	return err
}

// ResetPassword applies a new password given the address, the one-time
// code and the replacement password. The code's correctness is only
// checked here, by the backend.
func (c *Client) ResetPassword(ctx context.Context, email, otp, password string) error {
	_, err := c.do(ctx, "reset_password", http.MethodPost, "/api/auth/reset-password", nil, map[string]string{
		"email":    email,
		"otp":      otp,
		"password": password,
	})
	return err
}

// VerifyRegistration confirms a freshly registered account with the code
// mailed to it.
func (c *Client) VerifyRegistration(ctx context.Context, email, otp string) error {
	_, err := c.do(ctx, "verify_registration", http.MethodPost, "/api/auth/verify-email", nil, map[string]string{
		"email": email,
		"otp":   otp,
	})
	return err
}

// ResendRegistrationCode reissues the registration code. The backend
// contracts on a 2xx status only for this endpoint.
func (c *Client) ResendRegistrationCode(ctx context.Context, email string) error {
	_, err := c.do(ctx, "resend_registration_code", http.MethodPost, "/api/auth/resend-code", nil, map[string]string{
		"email": email,
	})
	return err
}
