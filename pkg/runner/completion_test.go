// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/output"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/platform"
)

func TestAwaitCompletionTimesOut(t *testing.T) {
	ctx, _ := testContext()
	clock := newClock()
	build := &fakeBuild{url: buildURL, states: []BuildState{{Building: true}}}

	_, err := AwaitCompletion(ctx, build, CompletionOptions{
		Interval: 2 * time.Second,
		Timeout:  5 * time.Second,
		Clock:    clock,
	})

	require.True(t, errors.IsKind(err, errors.ErrBuildTimeout), "err=%v", err)
	assert.Contains(t, err.Error(), "waited for 5s")
	assert.GreaterOrEqual(t, clock.Elapsed(epoch), 5*time.Second)
	assert.LessOrEqual(t, build.refreshes, 3)
}

func TestAwaitCompletionFetchesReportRegardlessOfResult(t *testing.T) {
	for _, result := range []string{"SUCCESS", "FAILURE", "UNSTABLE", "ABORTED"} {
		t.Run(result, func(t *testing.T) {
			ctx, _ := testContext()
			ci := &fakeCI{
				builds: []*platform.Build{building(), finished(result)},
				report: &platform.TestReport{Suites: []platform.JenkinsTestSuite{{
					Cases: []platform.JenkinsTestCase{{ClassName: "A", Name: "t1", Status: "FAILED"}},
				}}},
			}

			completion, err := AwaitCompletion(ctx, &jenkinsBuild{client: ci, url: buildURL}, CompletionOptions{
				Interval: time.Second,
				Timeout:  time.Minute,
				Clock:    newClock(),
			})
			require.NoError(t, err)

			assert.Equal(t, result, completion.Result)
			assert.True(t, completion.HasReport)
			assert.Equal(t, output.TestSuite{{Name: "t1", ClassName: "A", Status: output.StatusFailed}}, completion.Suite)
			assert.Equal(t, 2, ci.buildCalls)
			assert.Equal(t, 1, ci.reportCalls)
		})
	}
}

func TestAwaitCompletionLogsProgress(t *testing.T) {
	ctx, logs := testContext()
	build := &fakeBuild{url: buildURL, states: []BuildState{{Building: true}, {Result: "SUCCESS"}}}

	_, err := AwaitCompletion(ctx, build, CompletionOptions{
		Interval: time.Second,
		Timeout:  time.Minute,
		Clock:    newClock(),
	})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "Build not finished yet")
	assert.Contains(t, logs.String(), buildURL)
}

func TestAwaitCompletionWithoutReport(t *testing.T) {
	ctx, _ := testContext()
	build := &fakeBuild{url: buildURL, states: []BuildState{{Result: "SUCCESS"}}}

	completion, err := AwaitCompletion(ctx, build, CompletionOptions{
		Interval: time.Second,
		Timeout:  time.Minute,
		Clock:    newClock(),
	})
	require.NoError(t, err)

	assert.False(t, completion.HasReport)
	assert.Nil(t, completion.Suite)
}

func TestAwaitCompletionReportErrorIsNotFatal(t *testing.T) {
	ctx, logs := testContext()
	build := &fakeBuild{
		url:       buildURL,
		states:    []BuildState{{Result: "FAILURE"}},
		reportErr: stderrors.New("unexpected status code: 500"),
	}

	completion, err := AwaitCompletion(ctx, build, CompletionOptions{
		Interval: time.Second,
		Timeout:  time.Minute,
		Clock:    newClock(),
	})
	require.NoError(t, err)

	assert.Equal(t, "FAILURE", completion.Result)
	assert.False(t, completion.HasReport)
	assert.Contains(t, logs.String(), "Could not fetch test report")
}

func TestAwaitCompletionRefreshError(t *testing.T) {
	ctx, _ := testContext()
	ci := &fakeCI{buildErr: stderrors.New("connection reset")}

	_, err := AwaitCompletion(ctx, &jenkinsBuild{client: ci, url: buildURL}, CompletionOptions{
		Interval: time.Second,
		Timeout:  time.Minute,
		Clock:    newClock(),
	})

	assert.True(t, errors.IsKind(err, errors.ErrConnect), "err=%v", err)
	assert.Zero(t, ci.reportCalls)
}
