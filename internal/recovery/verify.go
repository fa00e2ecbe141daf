package recovery

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ResendCooldownSeconds gates how often a registration code can be
// reissued.
const ResendCooldownSeconds = 60

var ErrResendCoolingDown = errors.New("recovery: resend is still cooling down")

// VerifyBackend is the slice of the marketplace client the verification
// flow needs.
type VerifyBackend interface {
	VerifyRegistration(ctx context.Context, email, otp string) error
	ResendRegistrationCode(ctx context.Context, email string) error
}

// VerifyFlow is the single-step email-verification variant of the otp
// step: same six-cell input, plus a countdown-gated resend. The countdown
// runs on a one-second tick and must be stopped via Close on teardown.
type VerifyFlow struct {
	api   VerifyBackend
	email string
	otp   *OTPInput

	mu        sync.Mutex
	remaining int
	loading   bool
	done      bool

	interval  time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
	countdown sync.WaitGroup
}

// NewVerifyFlow starts a verification flow for an address. The cooldown
// begins immediately, matching the code that was just sent at
// registration. The tick interval is configurable for tests; pass 0 for
// the production one-second tick.
func NewVerifyFlow(api VerifyBackend, email string, interval time.Duration) *VerifyFlow {
	if interval <= 0 {
		interval = time.Second
	}
	v := &VerifyFlow{
		api:      api,
		email:    email,
		otp:      NewOTPInput(),
		interval: interval,
		stop:     make(chan struct{}),
	}
	v.startCooldown()
	return v
}

func (v *VerifyFlow) Email() string  { return v.email }
func (v *VerifyFlow) OTP() *OTPInput { return v.otp }

func (v *VerifyFlow) Done() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.done
}

func (v *VerifyFlow) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// ResendRemaining returns the seconds left before resend re-enables.
func (v *VerifyFlow) ResendRemaining() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.remaining
}

func (v *VerifyFlow) CanResend() bool {
	return v.ResendRemaining() == 0
}

// Submit verifies the typed code with the backend. All six cells must be
// filled first.
func (v *VerifyFlow) Submit(ctx context.Context) error {
	if !v.otp.Complete() {
		return ErrCodeIncomplete
	}

	v.setLoading(true)
	defer v.setLoading(false)

	if err := v.api.VerifyRegistration(ctx, v.email, v.otp.Code()); err != nil {
		return err
	}

	v.mu.Lock()
	v.done = true
	v.mu.Unlock()
	return nil
}

// Resend reissues the registration code, clears the cells and restarts
// the cooldown. Rejected while the cooldown is running.
func (v *VerifyFlow) Resend(ctx context.Context) error {
	if !v.CanResend() {
		return ErrResendCoolingDown
	}

	v.setLoading(true)
	defer v.setLoading(false)

	if err := v.api.ResendRegistrationCode(ctx, v.email); err != nil {
		return err
	}
	v.otp.Clear()
	v.startCooldown()
	return nil
}

// Close stops the countdown goroutine. Safe to call more than once;
// required on teardown so the ticker never fires against a dead flow.
func (v *VerifyFlow) Close() {
	v.stopOnce.Do(func() {
		close(v.stop)
	})
	v.countdown.Wait()
}

func (v *VerifyFlow) setLoading(b bool) {
	v.mu.Lock()
	v.loading = b
	v.mu.Unlock()
}

func (v *VerifyFlow) startCooldown() {
	v.mu.Lock()
	v.remaining = ResendCooldownSeconds
	v.mu.Unlock()

	v.countdown.Add(1)
	go func() {
		defer v.countdown.Done()
		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()
		for {
			select {
			case <-v.stop:
				return
			case <-ticker.C:
				v.mu.Lock()
				if v.remaining > 0 {
					v.remaining--
				}
				finished := v.remaining == 0
				v.mu.Unlock()
				if finished {
					return
				}
			}
		}
	}()
}
