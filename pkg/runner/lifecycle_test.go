// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/output"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/platform"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Request = BuildRequest{Job: "deploy", Parameters: map[string]string{"ENV": "prod"}}
	opts.Wait = true
	opts.RunID = "run-1"
	opts.Clock = newClock()
	return opts
}

func sampleReport() *platform.TestReport {
	return &platform.TestReport{Suites: []platform.JenkinsTestSuite{{
		Cases: []platform.JenkinsTestCase{
			{ClassName: "A", Name: "t1", Status: "PASSED"},
			{ClassName: "A", Name: "t2", Status: "FAILED", ErrorDetails: "boom"},
			{ClassName: "B", Name: "t3", Status: "REGRESSION"},
		},
	}}}
}

func TestRunSuccess(t *testing.T) {
	ctx, _ := testContext()
	ci := &fakeCI{
		queueID:    5,
		queueItems: []*platform.QueueItem{pending(), started(buildURL)},
		builds:     []*platform.Build{building(), finished("SUCCESS")},
		report:     &platform.TestReport{Suites: []platform.JenkinsTestSuite{{Cases: []platform.JenkinsTestCase{{ClassName: "A", Name: "t1", Status: "PASSED"}}}}},
	}
	publisher := &recordingPublisher{}
	sink := &recordingSink{}
	r := New(ci, publisher, sink, testOptions())

	result, err := r.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, StateDone, r.State())
	assert.True(t, result.Completed)
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, buildURL, result.BuildURL)
	assert.Equal(t, buildURL, sink.outputs[BuildURLOutput])
	require.NotNil(t, result.Report)
	assert.Equal(t, 1, result.Report.Passed)

	require.Len(t, publisher.texts, 1)
	runID, ok := output.RunIDOf(publisher.texts[0])
	assert.True(t, ok)
	assert.Equal(t, "run-1", runID)
	assert.Contains(t, publisher.texts[0], "**SUCCESS**")
}

func TestRunBuildFailurePublishesReport(t *testing.T) {
	ctx, _ := testContext()
	ci := &fakeCI{
		queueItems: []*platform.QueueItem{started(buildURL)},
		builds:     []*platform.Build{finished("FAILURE")},
		report:     sampleReport(),
	}
	publisher := &recordingPublisher{warnings: []error{errors.PublishWarning(output.SinkComment, stderrors.New("500"))}}
	r := New(ci, publisher, nil, testOptions())

	result, err := r.Run(ctx)

	require.True(t, errors.IsKind(err, errors.ErrBuildFailed), "err=%v", err)
	assert.Equal(t, errors.ExitBuildFailed, errors.ExitCode(err))
	assert.Equal(t, StateDone, r.State())
	assert.Equal(t, OutcomeFailure, result.Outcome)
	assert.Len(t, result.Warnings, 1)

	require.NotNil(t, result.Report)
	assert.Equal(t, 3, result.Report.Total)
	assert.Equal(t, 2, result.Report.Failed)

	require.Len(t, publisher.texts, 1)
	text := publisher.texts[0]
	assert.Contains(t, text, "### A\n- t2\n")
	assert.Contains(t, text, "### B\n- t3\n")
	assert.Less(t, strings.Index(text, "### A"), strings.Index(text, "### B"))
}

func TestRunNonSuccessOutcomes(t *testing.T) {
	for _, result := range []string{"ABORTED", "UNSTABLE"} {
		t.Run(result, func(t *testing.T) {
			ctx, _ := testContext()
			ci := &fakeCI{
				queueItems: []*platform.QueueItem{started(buildURL)},
				builds:     []*platform.Build{finished(result)},
			}
			publisher := &recordingPublisher{}

			_, err := New(ci, publisher, nil, testOptions()).Run(ctx)

			assert.True(t, errors.IsKind(err, errors.ErrBuildFailed))
			assert.Contains(t, err.Error(), result)
			assert.Len(t, publisher.texts, 1)
		})
	}
}

func TestRunUnknownResultSkipsPublishing(t *testing.T) {
	ctx, _ := testContext()
	ci := &fakeCI{
		queueItems: []*platform.QueueItem{started(buildURL)},
		builds:     []*platform.Build{finished("NOT_BUILT")},
	}
	publisher := &recordingPublisher{}
	r := New(ci, publisher, nil, testOptions())

	result, err := r.Run(ctx)

	assert.True(t, errors.IsKind(err, errors.ErrUnknownResult))
	assert.Equal(t, StateFailed, r.State())
	assert.False(t, result.Completed)
	assert.Empty(t, publisher.texts)
}

func TestRunWithoutWaiting(t *testing.T) {
	ctx, logs := testContext()
	ci := &fakeCI{queueItems: []*platform.QueueItem{started(buildURL)}}
	publisher := &recordingPublisher{}
	sink := &recordingSink{}
	opts := testOptions()
	opts.Wait = false

	result, err := New(ci, publisher, sink, opts).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, errors.ExitSuccess, errors.ExitCode(err))
	assert.False(t, result.Completed)
	assert.Equal(t, buildURL, sink.outputs[BuildURLOutput])
	assert.Zero(t, ci.buildCalls)
	assert.Empty(t, publisher.texts)
	assert.Contains(t, logs.String(), "Not waiting for build to finish")
}

func TestRunConnectFailure(t *testing.T) {
	ctx, _ := testContext()
	ci := &fakeCI{versionErr: stderrors.New("no such host")}
	r := New(ci, &recordingPublisher{}, nil, testOptions())

	result, err := r.Run(ctx)

	assert.True(t, errors.IsKind(err, errors.ErrConnect))
	assert.Equal(t, StateFailed, r.State())
	assert.Empty(t, result.BuildURL)
}

func TestRunBuildTimeout(t *testing.T) {
	ctx, _ := testContext()
	ci := &fakeCI{
		queueItems: []*platform.QueueItem{started(buildURL)},
		builds:     []*platform.Build{building()},
	}
	opts := testOptions()
	opts.Interval = 2 * time.Second
	opts.Timeout = 5 * time.Second
	publisher := &recordingPublisher{}

	result, err := New(ci, publisher, nil, opts).Run(ctx)

	assert.True(t, errors.IsKind(err, errors.ErrBuildTimeout))
	assert.Equal(t, errors.ExitTimeout, errors.ExitCode(err))
	assert.Equal(t, buildURL, result.BuildURL)
	assert.Empty(t, publisher.texts)
}

func TestRunCancelled(t *testing.T) {
	ctx, _ := testContext()
	ctx, cancel := context.WithCancel(ctx)
	cancel()
	ci := &fakeCI{queueItems: []*platform.QueueItem{pending()}}

	_, err := New(ci, nil, nil, testOptions()).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
