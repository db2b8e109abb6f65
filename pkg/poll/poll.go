// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package poll waits for a remote condition by probing it on a fixed
// interval until it is ready or an overall deadline elapses.
package poll

import (
	"context"
	"fmt"
	"time"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
)

// Probe checks the remote side once. It returns ready=false while the
// condition does not hold yet; a non-nil error aborts polling.
type Probe[T any] func(ctx context.Context) (value T, ready bool, err error)

// Clock is the time source used by Until.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// Options configures a polling loop.
type Options struct {
	// Interval is the pause before the first probe and between probes.
	Interval time.Duration
	// Timeout bounds the loop, measured from the loop's own start.
	Timeout time.Duration
	// Description names what is being waited for in timeout errors.
	Description string
	// Clock defaults to the wall clock.
	Clock Clock
	// OnWait is called each time the probe reports not ready.
	OnWait func(elapsed time.Duration)
}

// TimeoutError is returned when the probe never became ready.
type TimeoutError struct {
	Elapsed     time.Duration
	Description string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %.0f seconds waiting for %s", e.Elapsed.Seconds(), e.Description)
}

// Until sleeps once for the interval, then calls probe until it reports
// ready. Between probes it sleeps for the interval and gives up with a
// *TimeoutError once the elapsed time reaches the timeout.
func Until[T any](ctx context.Context, probe Probe[T], opts Options) (T, error) {
	var zero T

	if opts.Interval <= 0 {
		return zero, errors.ConfigError(
			fmt.Sprintf("poll interval must be positive, got %s", opts.Interval), nil)
	}

	clock := opts.Clock
	if clock == nil {
		clock = WallClock{}
	}

	start := clock.Now()
	if err := clock.Sleep(ctx, opts.Interval); err != nil {
		return zero, err
	}

	for {
		value, ready, err := probe(ctx)
		if err != nil {
			return zero, err
		}
		if ready {
			return value, nil
		}

		if opts.OnWait != nil {
			opts.OnWait(clock.Now().Sub(start))
		}

		if err := clock.Sleep(ctx, opts.Interval); err != nil {
			return zero, err
		}

		if elapsed := clock.Now().Sub(start); elapsed >= opts.Timeout {
			return zero, &TimeoutError{Elapsed: elapsed, Description: opts.Description}
		}
	}
}

// WallClock is the real clock. Sleep returns early with the context's
// error when it is cancelled.
type WallClock struct{}

// Now returns the current time.
func (WallClock) Now() time.Time { return time.Now() }

// Sleep pauses for d.
func (WallClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
