// Package recovery drives the password-recovery and registration
// verification flows. Both are thin state machines over backend calls:
// the backend owns code issuance and verification, this package owns the
// step transitions and the local input contract.
package recovery

import (
	"context"
	"errors"
	"sync"

	"nestview-web/internal/validators"
)

// Step is a state of the password-recovery machine. Transitions are
// linear (email -> otp -> reset); the only way back is a fresh flow.
type Step string

const (
	StepEmail Step = "email"
	StepOTP   Step = "otp"
	StepReset Step = "reset"
)

var (
	ErrCodeIncomplete = errors.New("recovery: all six code digits are required")
	ErrWrongStep      = errors.New("recovery: action not valid for current step")
)

// Backend is the slice of the marketplace client the flow needs.
type Backend interface {
	IssueRecoveryCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, password string) error
}

// Flow is one user's password-recovery session. It lives for the duration
// of the flow and is discarded on completion or abandonment.
type Flow struct {
	api Backend

	mu      sync.Mutex
	step    Step
	email   string
	otp     *OTPInput
	loading bool
	done    bool
}

func NewFlow(api Backend) *Flow {
	return &Flow{
		api:  api,
		step: StepEmail,
		otp:  NewOTPInput(),
	}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// OTP exposes the input cells for the otp step. The flow's mutex does not
// guard the returned value; handlers drive a single user's flow serially.
func (f *Flow) OTP() *OTPInput { return f.otp }

func (f *Flow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Done reports whether the reset completed and the flow should be
// discarded (redirect to login).
func (f *Flow) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// SubmitEmail asks the backend to issue a recovery code. On success the
// flow advances to the otp step with the email retained; on failure it
// stays on email and the error carries the message to surface.
func (f *Flow) SubmitEmail(ctx context.Context, email string) error {
	if f.Step() != StepEmail {
		return ErrWrongStep
	}
	if err := validators.ValidateEmail(email); err != nil {
		return err
	}

	f.setLoading(true)
	defer f.setLoading(false)

	if err := f.api.IssueRecoveryCode(ctx, email); err != nil {
		return err
	}

	f.mu.Lock()
	f.email = email
	f.step = StepOTP
	f.mu.Unlock()
	return nil
}

// SubmitOTP advances to the reset step once all six cells are filled.
// The code is validated only for completeness here; its correctness is
// not checked until the final reset call.
func (f *Flow) SubmitOTP() error {
	if f.Step() != StepOTP {
		return ErrWrongStep
	}
	if !f.otp.Complete() {
		return ErrCodeIncomplete
	}
	f.mu.Lock()
	f.step = StepReset
	f.mu.Unlock()
	return nil
}

// Resend reissues the recovery code for the retained email and clears the
// cells. The step does not change.
func (f *Flow) Resend(ctx context.Context) error {
	if f.Step() != StepOTP {
		return ErrWrongStep
	}

	f.setLoading(true)
	defer f.setLoading(false)

	if err := f.api.IssueRecoveryCode(ctx, f.Email()); err != nil {
		return err
	}
	f.otp.Clear()
	return nil
}

// SubmitReset validates the new password locally (no network call on a
// failing check), then submits email, code and password in one request.
// Success finishes the flow; failure keeps the user on reset with fields
// intact.
func (f *Flow) SubmitReset(ctx context.Context, password, confirm string) error {
	if f.Step() != StepReset {
		return ErrWrongStep
	}
	if err := validators.ValidateNewPassword(password, confirm); err != nil {
		return err
	}

	f.setLoading(true)
	defer f.setLoading(false)

	if err := f.api.ResetPassword(ctx, f.Email(), f.otp.Code(), password); err != nil {
		return err
	}

	f.mu.Lock()
	f.done = true
	f.email = ""
	f.mu.Unlock()
	f.otp.Clear()
	return nil
}

func (f *Flow) setLoading(v bool) {
	f.mu.Lock()
	f.loading = v
	f.mu.Unlock()
}
