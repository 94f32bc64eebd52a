// Package assure implements bounded retry with fatal exhaustion: an
// operation is attempted a fixed number of times with a constant sleep in
// between, to wait out eventually-consistent external state (a rebooted host
// becoming reachable, a service coming up) before giving up for good.
package assure

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mirrorops/drcmd/internal/log"
)

// ErrExhausted is returned when the operation never succeeded within the
// configured attempts. It is meant to be unrecoverable at the call site.
var ErrExhausted = errors.New("assurance failed")

const (
	// DefaultAttempts and DefaultInterval give roughly three minutes of
	// patience in total.
	DefaultAttempts = 18
	DefaultInterval = 10 * time.Second
)

// AssurerConfig is the configuration for an Assurer.
type AssurerConfig struct {
	// Attempts is the maximum number of times the operation is tried.
	Attempts int
	// Interval is the fixed sleep between attempts.
	Interval time.Duration
	Logger   log.Logger
}

func (c *AssurerConfig) defaults() error {
	if c.Attempts < 0 {
		return fmt.Errorf("attempts cannot be negative")
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval cannot be negative")
	}
	if c.Attempts == 0 {
		c.Attempts = DefaultAttempts
	}
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "assure.Assurer"})
	return nil
}

// Assurer retries fallible operations with a fixed-interval, bounded policy.
type Assurer struct {
	attempts int
	interval time.Duration
	logger   log.Logger
}

// NewAssurer creates an assurer with the given retry policy.
func NewAssurer(cfg AssurerConfig) (*Assurer, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Assurer{
		attempts: cfg.Attempts,
		interval: cfg.Interval,
		logger:   cfg.Logger,
	}, nil
}

// Assure attempts op until it succeeds, sleeping the configured interval
// after every failure. It returns nil on the first success. When the attempts
// are exhausted, or the context is canceled during the sleep, it returns an
// error wrapping ErrExhausted with the last failure attached.
func (a *Assurer) Assure(ctx context.Context, op func() error) error {
	remaining := a.attempts
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(a.interval), uint64(a.attempts-1)),
		ctx,
	)
	notify := func(err error, next time.Duration) {
		remaining--
		a.logger.Debugf("Assuring, waiting %s, %d retries left: %s", next, remaining, err)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return fmt.Errorf("could not complete operation (%s): %w", err, ErrExhausted)
	}

	return nil
}

// Assure retries op with the default policy (18 attempts, 10 second
// interval) and no logging.
func Assure(ctx context.Context, op func() error) error {
	a, err := NewAssurer(AssurerConfig{})
	if err != nil {
		return err
	}
	return a.Assure(ctx, op)
}
