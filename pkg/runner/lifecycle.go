// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/output"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/platform"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/poll"
)

// State represents the runner lifecycle state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateQueued
	StateBuilding
	StatePublishing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateQueued:
		return "queued"
	case StateBuilding:
		return "building"
	case StatePublishing:
		return "publishing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options holds runner configuration options.
type Options struct {
	// Request is the build to run.
	Request BuildRequest
	// Wait blocks until the build finishes. Without it the run ends once
	// the build URL is known.
	Wait bool
	// Interval is the pause between polls.
	Interval time.Duration
	// StartTimeout bounds the wait for the queue item to become a build.
	StartTimeout time.Duration
	// Timeout bounds the wait for the build to finish.
	Timeout time.Duration
	// RunID is embedded in the published report.
	RunID string
	// Clock defaults to the wall clock.
	Clock poll.Clock
}

// DefaultOptions returns the default runner options.
func DefaultOptions() Options {
	return Options{
		Interval:     5 * time.Second,
		StartTimeout: 600 * time.Second,
		Timeout:      600 * time.Second,
	}
}

// Result describes a finished run.
type Result struct {
	// BuildURL is set once the build started.
	BuildURL string
	// Completed is false when the run did not wait for the build.
	Completed bool
	Outcome   Outcome
	// Report is nil when the build published no test report.
	Report *output.Report
	// Warnings are the non-fatal publishing failures.
	Warnings []error
	Duration time.Duration
}

// Runner runs one build from submission to a published report.
type Runner struct {
	mu    sync.RWMutex
	state State

	ci        platform.CI
	publisher Publisher
	outputs   OutputSink
	opts      Options
}

// New creates a Runner. publisher and outputs may be nil.
func New(ci platform.CI, publisher Publisher, outputs OutputSink, opts Options) *Runner {
	if opts.Clock == nil {
		opts.Clock = poll.WallClock{}
	}
	return &Runner{
		ci:        ci,
		publisher: publisher,
		outputs:   outputs,
		opts:      opts,
	}
}

// Run submits the build, waits for it and publishes its test report. The
// returned error carries the exit status: a BuildFailedError for builds
// that did not succeed, and a fatal error for everything that stopped the
// run early. Publishing failures only show up in Result.Warnings.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := log.FromContext(ctx)
	start := r.opts.Clock.Now()
	result := &Result{}

	err := r.run(ctx, logger, result)
	result.Duration = r.opts.Clock.Now().Sub(start)
	if err != nil && !errors.IsKind(err, errors.ErrBuildFailed) {
		r.setState(StateFailed)
	} else {
		r.setState(StateDone)
	}
	return result, err
}

func (r *Runner) run(ctx context.Context, logger *log.Logger, result *Result) error {
	r.setState(StateSubmitting)
	queue, err := Trigger(ctx, r.ci, r.opts.Request)
	if err != nil {
		return err
	}

	r.setState(StateQueued)
	build, err := ResolveBuild(ctx, queue, ResolveOptions{
		Interval:     r.opts.Interval,
		StartTimeout: r.opts.StartTimeout,
		Clock:        r.opts.Clock,
		Outputs:      r.outputs,
	})
	if err != nil {
		return err
	}
	result.BuildURL = build.URL()

	if !r.opts.Wait {
		logger.Info("Not waiting for build to finish")
		return nil
	}

	r.setState(StateBuilding)
	completion, err := AwaitCompletion(ctx, build, CompletionOptions{
		Interval: r.opts.Interval,
		Timeout:  r.opts.Timeout,
		Clock:    r.opts.Clock,
	})
	if err != nil {
		return err
	}

	outcome, err := Classify(completion.Result)
	if err != nil {
		return err
	}
	result.Completed = true
	result.Outcome = outcome

	if completion.HasReport {
		report := output.Aggregate(completion.Suite)
		result.Report = &report
		logger.Info("Aggregated test report",
			"total", report.Total, "passed", report.Passed, "failed", report.Failed)
	}

	if r.publisher != nil {
		r.setState(StatePublishing)
		text := output.FormatComment(output.Summary{
			RunID:    r.opts.RunID,
			Job:      r.opts.Request.Job,
			BuildURL: result.BuildURL,
			Result:   outcome.String(),
			Report:   result.Report,
		})
		result.Warnings = r.publisher.Publish(ctx, text)
	}

	if outcome != OutcomeSuccess {
		return errors.BuildFailedError(outcome.String()).WithContext("url", result.BuildURL)
	}

	logger.Info("Build successful 🎉")
	return nil
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = s
}

// State returns the current runner state.
func (r *Runner) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}
