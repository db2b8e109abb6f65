// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package poll

import (
	"context"
	"time"
)

// SimulatedClock advances only when Sleep is called. It lets timeout
// behaviour be tested without real delays.
type SimulatedClock struct {
	now    time.Time
	Sleeps []time.Duration
}

// NewSimulatedClock returns a clock starting at start.
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{now: start}
}

// Now returns the simulated time.
func (c *SimulatedClock) Now() time.Time { return c.now }

// Sleep advances the simulated time by d.
func (c *SimulatedClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Sleeps = append(c.Sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

// Elapsed returns the simulated time passed since start.
func (c *SimulatedClock) Elapsed(start time.Time) time.Duration {
	return c.now.Sub(start)
}
