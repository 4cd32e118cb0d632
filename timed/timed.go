// Package timed wraps an in-flight send with a deadline, resolving to
// either the response or a structured error carrying a retry token. The
// in-flight work is not dropped on timeout — only the deadline is
// replaced — so a caller can retry the same attempt with a fresh
// deadline instead of re-issuing the request.
package timed

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/httpc/response"
)

// Timer is the pluggable deadline source the client is generic over.
// The default implementation wraps time.Timer.
type Timer interface {
	After(d time.Duration) Alarm
}

// Alarm is one armed timer instance.
type Alarm interface {
	C() <-chan time.Time
	// Err reports timer-implementation failures distinct from an
	// ordinary firing; the default implementation never sends on it.
	Err() <-chan error
	Stop()
}

// SystemTimer is the default Timer, backed by time.Timer.
type SystemTimer struct{}

func (SystemTimer) After(d time.Duration) Alarm {
	t := time.NewTimer(d)
	return &systemAlarm{t: t}
}

type systemAlarm struct {
	t *time.Timer
}

func (a *systemAlarm) C() <-chan time.Time { return a.t.C }
func (a *systemAlarm) Err() <-chan error   { return nil }
func (a *systemAlarm) Stop()               { a.t.Stop() }

// SendFunc performs one attempt at producing a response. It must observe
// ctx cancellation promptly — RetryToken.Retry reuses the same
// in-progress call rather than invoking SendFunc again.
type SendFunc func(ctx context.Context) (*response.Response, error)

type future struct {
	resultCh chan result
	cancel   context.CancelFunc
}

type result struct {
	resp *response.Response
	err  error
}

// TimeoutError is returned when the deadline elapses before SendFunc
// completes. Token owns the still-running attempt.
type TimeoutError struct {
	Token *RetryToken
}

func (e *TimeoutError) Error() string { return "timed: deadline exceeded" }

// TransportError wraps a SendFunc failure that isn't a timeout.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("timed: transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// TimerErrorErr is returned when the Timer implementation itself reports
// a failure (distinct from an ordinary firing). Token owns the attempt
// that was still in flight when the timer failed.
type TimerErrorErr struct {
	Err   error
	Token *RetryToken
}

func (e *TimerErrorErr) Error() string { return fmt.Sprintf("timed: timer: %v", e.Err) }
func (e *TimerErrorErr) Unwrap() error { return e.Err }

// RetryToken owns one in-flight attempt after a timeout or timer error.
// It is single-use: a second call to Retry panics, matching the "moved
// out of the error on timeout" ownership the design depends on.
type RetryToken struct {
	fut   *future
	timer Timer
	used  bool
}

// Retry installs a fresh deadline around the same in-flight attempt.
// A zero duration means "no deadline".
func (t *RetryToken) Retry(timeout time.Duration) (*response.Response, error) {
	if t.used {
		panic("timed: retry token already used")
	}

	t.used = true

	return wait(t.fut, t.timer, timeout)
}

// Cancel drops the in-flight attempt without waiting for it, freeing its
// transport resources.
func (t *RetryToken) Cancel() {
	if t.used {
		return
	}

	t.used = true
	t.fut.cancel()
}

// Execute runs send under timeout (zero means no deadline), using timer
// as the deadline source. A nil timer defaults to SystemTimer.
func Execute(ctx context.Context, timer Timer, timeout time.Duration, send SendFunc) (*response.Response, error) {
	if timer == nil {
		timer = SystemTimer{}
	}

	innerCtx, cancel := context.WithCancel(ctx)

	fut := &future{resultCh: make(chan result, 1), cancel: cancel}

	go func() {
		resp, err := send(innerCtx)
		fut.resultCh <- result{resp: resp, err: err}
	}()

	return wait(fut, timer, timeout)
}

func wait(fut *future, timer Timer, timeout time.Duration) (*response.Response, error) {
	if timeout <= 0 {
		r := <-fut.resultCh
		fut.cancel()

		return asTransportResult(r)
	}

	alarm := timer.After(timeout)
	defer alarm.Stop()

	select {
	case r := <-fut.resultCh:
		fut.cancel()

		return asTransportResult(r)
	case <-alarm.C():
		return nil, &TimeoutError{Token: &RetryToken{fut: fut, timer: timer}}
	case err := <-alarm.Err():
		if err == nil {
			// A nil send on Err() is only reachable from a custom Timer;
			// treat it like an ordinary firing.
			return nil, &TimeoutError{Token: &RetryToken{fut: fut, timer: timer}}
		}

		return nil, &TimerErrorErr{Err: err, Token: &RetryToken{fut: fut, timer: timer}}
	}
}

func asTransportResult(r result) (*response.Response, error) {
	if r.err != nil {
		return nil, &TransportError{Err: r.err}
	}

	return r.resp, nil
}
