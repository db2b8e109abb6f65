// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/poll"
)

// BuildURLOutput is the name of the step output carrying the build URL.
const BuildURLOutput = "build_url"

// ResolveOptions configures ResolveBuild.
type ResolveOptions struct {
	Interval     time.Duration
	StartTimeout time.Duration
	Clock        poll.Clock
	// Outputs receives the build URL once it is known. Optional.
	Outputs OutputSink
}

// ResolveBuild waits until the queued request has become a build and
// publishes the build URL.
func ResolveBuild(ctx context.Context, queue QueueHandle, opts ResolveOptions) (BuildHandle, error) {
	logger := log.FromContext(ctx)

	build, err := poll.Until[BuildHandle](ctx, queue.Build, poll.Options{
		Interval:    opts.Interval,
		Timeout:     opts.StartTimeout,
		Description: "build to start",
		Clock:       opts.Clock,
		OnWait: func(elapsed time.Duration) {
			logger.Info("Build not started yet", "waiting", opts.Interval, "elapsed", elapsed.Round(time.Second))
		},
	})
	if err != nil {
		var timeout *poll.TimeoutError
		if stderrors.As(err, &timeout) {
			return nil, errors.QueueTimeoutError(opts.StartTimeout, err)
		}
		return nil, connectionLost(err, "waiting for build to start")
	}

	url := build.URL()
	logger.Info("Build started", "url", url)

	if opts.Outputs != nil {
		if err := opts.Outputs.SetOutput(BuildURLOutput, url); err != nil {
			logger.Warn("Failed to set build URL output", "err", err)
		}
		if err := opts.Outputs.Notice(BuildURLOutput, url); err != nil {
			logger.Warn("Failed to emit build URL notice", "err", err)
		}
	}

	return build, nil
}

// connectionLost classifies a probe failure. Errors that already carry a
// kind keep it, and cancellation is passed through.
func connectionLost(err error, while string) error {
	if _, ok := errors.KindOf(err); ok {
		return err
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.ConnectError("lost connection to Jenkins while "+while, err)
}
