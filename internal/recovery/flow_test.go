package recovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecoveryBackend struct {
	issueCalls int
	resetCalls int
	issueErr   error
	resetErr   error

	lastEmail    string
	lastOTP      string
	lastPassword string
}

func (f *fakeRecoveryBackend) IssueRecoveryCode(ctx context.Context, email string) error {
	f.issueCalls++
	f.lastEmail = email
	return f.issueErr
}

func (f *fakeRecoveryBackend) ResetPassword(ctx context.Context, email, otp, password string) error {
	f.resetCalls++
	f.lastEmail = email
	f.lastOTP = otp
	f.lastPassword = password
	return f.resetErr
}

func TestFlowHappyPath(t *testing.T) {
	api := &fakeRecoveryBackend{}
	flow := NewFlow(api)
	ctx := context.Background()

	require.Equal(t, StepEmail, flow.Step())

	require.NoError(t, flow.SubmitEmail(ctx, "jamie@example.com"))
	assert.Equal(t, StepOTP, flow.Step())
	assert.Equal(t, "jamie@example.com", flow.Email())
	assert.Equal(t, 1, api.issueCalls)

	require.True(t, flow.OTP().Paste("123456"))
	require.NoError(t, flow.SubmitOTP())
	assert.Equal(t, StepReset, flow.Step())

	require.NoError(t, flow.SubmitReset(ctx, "newpassword", "newpassword"))
	assert.True(t, flow.Done())
	assert.Equal(t, 1, api.resetCalls)
	assert.Equal(t, "jamie@example.com", api.lastEmail)
	assert.Equal(t, "123456", api.lastOTP)
	assert.Equal(t, "newpassword", api.lastPassword)
}

func TestFlowSubmitEmailValidatesLocally(t *testing.T) {
	api := &fakeRecoveryBackend{}
	flow := NewFlow(api)

	err := flow.SubmitEmail(context.Background(), "not-an-email")
	require.Error(t, err)
	assert.Equal(t, 0, api.issueCalls, "invalid email must not reach the backend")
	assert.Equal(t, StepEmail, flow.Step())
}

func TestFlowSubmitEmailFailureStaysOnEmail(t *testing.T) {
	api := &fakeRecoveryBackend{issueErr: errors.New("no account for that address")}
	flow := NewFlow(api)

	err := flow.SubmitEmail(context.Background(), "jamie@example.com")
	require.Error(t, err)
	assert.Equal(t, StepEmail, flow.Step())
	assert.Equal(t, "", flow.Email())
}

func TestFlowSubmitOTPRequiresAllCells(t *testing.T) {
	api := &fakeRecoveryBackend{}
	flow := NewFlow(api)
	require.NoError(t, flow.SubmitEmail(context.Background(), "jamie@example.com"))

	flow.OTP().TypeDigit(0, '1')
	flow.OTP().TypeDigit(1, '2')

	err := flow.SubmitOTP()
	assert.ErrorIs(t, err, ErrCodeIncomplete)
	assert.Equal(t, StepOTP, flow.Step())
}

func TestFlowStepOrderIsEnforced(t *testing.T) {
	flow := NewFlow(&fakeRecoveryBackend{})

	assert.ErrorIs(t, flow.SubmitOTP(), ErrWrongStep)
	assert.ErrorIs(t, flow.Resend(context.Background()), ErrWrongStep)
	assert.ErrorIs(t, flow.SubmitReset(context.Background(), "newpassword", "newpassword"), ErrWrongStep)
}

func TestFlowResendClearsCellsKeepsStep(t *testing.T) {
	api := &fakeRecoveryBackend{}
	flow := NewFlow(api)
	ctx := context.Background()
	require.NoError(t, flow.SubmitEmail(ctx, "jamie@example.com"))
	require.True(t, flow.OTP().Paste("111111"))

	require.NoError(t, flow.Resend(ctx))
	assert.Equal(t, StepOTP, flow.Step())
	assert.Equal(t, "", flow.OTP().Code())
	assert.Equal(t, 2, api.issueCalls)
}

func TestFlowShortPasswordNeverReachesBackend(t *testing.T) {
	api := &fakeRecoveryBackend{}
	flow := NewFlow(api)
	ctx := context.Background()
	require.NoError(t, flow.SubmitEmail(ctx, "jamie@example.com"))
	require.True(t, flow.OTP().Paste("123456"))
	require.NoError(t, flow.SubmitOTP())

	err := flow.SubmitReset(ctx, "short12", "short12")
	require.Error(t, err)
	assert.Equal(t, 0, api.resetCalls, "a 7 character password fails locally")

	require.NoError(t, flow.SubmitReset(ctx, "short123", "short123"))
	assert.Equal(t, 1, api.resetCalls, "an 8 character password issues exactly one call")
}

func TestFlowMismatchedPasswordsNeverReachBackend(t *testing.T) {
	api := &fakeRecoveryBackend{}
	flow := NewFlow(api)
	ctx := context.Background()
	require.NoError(t, flow.SubmitEmail(ctx, "jamie@example.com"))
	require.True(t, flow.OTP().Paste("123456"))
	require.NoError(t, flow.SubmitOTP())

	require.Error(t, flow.SubmitReset(ctx, "newpassword", "different"))
	assert.Equal(t, 0, api.resetCalls)
	assert.False(t, flow.Done())
}

func TestFlowResetFailureKeepsStateIntact(t *testing.T) {
	api := &fakeRecoveryBackend{resetErr: errors.New("invalid or expired code")}
	flow := NewFlow(api)
	ctx := context.Background()
	require.NoError(t, flow.SubmitEmail(ctx, "jamie@example.com"))
	require.True(t, flow.OTP().Paste("123456"))
	require.NoError(t, flow.SubmitOTP())

	require.Error(t, flow.SubmitReset(ctx, "newpassword", "newpassword"))
	assert.False(t, flow.Done())
	assert.Equal(t, StepReset, flow.Step())
	assert.Equal(t, "jamie@example.com", flow.Email())
	assert.Equal(t, "123456", flow.OTP().Code())
}
