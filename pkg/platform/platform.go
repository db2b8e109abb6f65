// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"context"

	"github.com/Masterminds/semver/v3"
)

// Platform is implemented by every remote system the action talks to.
type Platform interface {
	// Name returns the platform name.
	Name() string
}

// CI is the subset of the Jenkins API used to run a build.
type CI interface {
	Platform

	// Version probes the server and returns the version it reports. It
	// fails when the server is unreachable or rejects the credentials.
	Version(ctx context.Context) (string, error)

	// BuildJob submits a build and returns its queue item id.
	BuildJob(ctx context.Context, jobPath string, parameters map[string]string) (int, error)

	// GetQueueItem returns the current state of a queue item.
	GetQueueItem(ctx context.Context, queueID int) (*QueueItem, error)

	// GetBuild returns the current state of a build.
	GetBuild(ctx context.Context, buildURL string) (*Build, error)

	// GetTestReport returns the build's test report, or nil when there is none.
	GetTestReport(ctx context.Context, buildURL string) (*TestReport, error)
}

// CommitCommenter posts comments on commits.
type CommitCommenter interface {
	Platform

	PostCommitComment(ctx context.Context, sha, body string) error
}

var (
	_ CI              = (*JenkinsClient)(nil)
	_ CommitCommenter = (*GitHub)(nil)
)

// MinimumJenkinsVersion is the oldest server whose queue API exposes the
// executable of a queue item.
var MinimumJenkinsVersion = semver.MustParse("1.519")
