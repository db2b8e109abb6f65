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

// CompletionOptions configures AwaitCompletion.
type CompletionOptions struct {
	Interval time.Duration
	Timeout  time.Duration
	Clock    poll.Clock
}

// AwaitCompletion waits for the build to stop running, then reads its
// result and test report. The report is fetched whatever the result is; a
// failure to fetch it is logged and treated as no report.
func AwaitCompletion(ctx context.Context, build BuildHandle, opts CompletionOptions) (Completion, error) {
	logger := log.FromContext(ctx).With("url", build.URL())

	state, err := poll.Until[BuildState](ctx, func(ctx context.Context) (BuildState, bool, error) {
		state, err := build.Refresh(ctx)
		if err != nil {
			return BuildState{}, false, err
		}
		return state, !state.Building, nil
	}, poll.Options{
		Interval:    opts.Interval,
		Timeout:     opts.Timeout,
		Description: "build to finish",
		Clock:       opts.Clock,
		OnWait: func(elapsed time.Duration) {
			logger.Info("Build not finished yet", "waiting", opts.Interval, "elapsed", elapsed.Round(time.Second))
		},
	})
	if err != nil {
		var timeout *poll.TimeoutError
		if stderrors.As(err, &timeout) {
			return Completion{}, errors.BuildTimeoutError(opts.Timeout, err)
		}
		return Completion{}, connectionLost(err, "waiting for build to finish")
	}

	completion := Completion{Result: state.Result}
	logger.Info("Build finished", "result", state.Result)

	suite, ok, err := build.TestReport(ctx)
	switch {
	case err != nil:
		logger.Warn("Could not fetch test report", "err", err)
	case !ok:
		logger.Info("Build has no test report")
	default:
		completion.Suite = suite
		completion.HasReport = true
	}

	return completion, nil
}
