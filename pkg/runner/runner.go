// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package runner drives a Jenkins build from submission to a classified
// outcome.
package runner

import (
	"context"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/output"
)

// BuildRequest names the job to build and its parameters.
type BuildRequest struct {
	// Job is the job path, with folders separated by "/".
	Job string
	// Parameters are submitted as build parameters. Empty means the job is
	// built without parameters.
	Parameters map[string]string
}

// QueueHandle is a submitted build request that has not started yet.
type QueueHandle interface {
	// Build asks the scheduler whether the request has become a build.
	// ok is false while it is still queued.
	Build(ctx context.Context) (build BuildHandle, ok bool, err error)
}

// BuildHandle is a concrete build, running or finished.
type BuildHandle interface {
	// URL is the build's web page.
	URL() string

	// Refresh fetches the current state of the build.
	Refresh(ctx context.Context) (BuildState, error)

	// TestReport fetches the build's test results. ok is false when the
	// build published none.
	TestReport(ctx context.Context) (suite output.TestSuite, ok bool, err error)
}

// BuildState is a snapshot of a build. Result is only meaningful once
// Building is false.
type BuildState struct {
	Building bool
	Result   string
}

// Completion is what is known about a build once it stopped running.
type Completion struct {
	// Result is the raw result reported by the scheduler.
	Result string
	// Suite holds the test results when HasReport is true.
	Suite     output.TestSuite
	HasReport bool
}

// OutputSink receives workflow outputs.
type OutputSink interface {
	SetOutput(name, value string) error
	Notice(title, message string) error
}

// Publisher delivers the rendered report.
type Publisher interface {
	Publish(ctx context.Context, text string) []error
}

var (
	_ OutputSink = (*output.Annotator)(nil)
	_ Publisher  = (*output.Reporter)(nil)
)
