// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import (
	"context"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/output"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/platform"
)

// jenkinsQueueItem is a QueueHandle backed by a Jenkins queue item.
type jenkinsQueueItem struct {
	client platform.CI
	id     int
}

func (q *jenkinsQueueItem) Build(ctx context.Context) (BuildHandle, bool, error) {
	item, err := q.client.GetQueueItem(ctx, q.id)
	if err != nil {
		return nil, false, err
	}

	if item.Cancelled {
		return nil, false, errors.SubmissionError("queue item was cancelled", nil).
			WithContext("queue_id", q.id)
	}

	if item.Executable == nil || item.Executable.URL == "" {
		return nil, false, nil
	}

	return &jenkinsBuild{
		client: q.client,
		url:    item.Executable.URL,
		number: item.Executable.Number,
	}, true, nil
}

// jenkinsBuild is a BuildHandle backed by a Jenkins build.
type jenkinsBuild struct {
	client platform.CI
	url    string
	number int
}

func (b *jenkinsBuild) URL() string {
	return b.url
}

func (b *jenkinsBuild) Refresh(ctx context.Context) (BuildState, error) {
	build, err := b.client.GetBuild(ctx, b.url)
	if err != nil {
		return BuildState{}, err
	}
	return BuildState{Building: build.Building, Result: build.Result}, nil
}

func (b *jenkinsBuild) TestReport(ctx context.Context) (output.TestSuite, bool, error) {
	report, err := b.client.GetTestReport(ctx, b.url)
	if err != nil {
		return nil, false, err
	}
	if report == nil {
		return nil, false, nil
	}
	return output.SuiteFromJenkins(report), true, nil
}
