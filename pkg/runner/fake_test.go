// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/output"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/platform"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/poll"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func testContext() (context.Context, *bytes.Buffer) {
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})
	return log.WithContext(context.Background(), logger), &logs
}

// fakeCI scripts Jenkins responses. Sequences repeat their last element.
type fakeCI struct {
	version    string
	versionErr error

	queueID   int
	submitErr error
	submitted []BuildRequest

	queueItems []*platform.QueueItem
	queueErr   error
	queueCalls int

	builds     []*platform.Build
	buildErr   error
	buildCalls int

	report      *platform.TestReport
	reportErr   error
	reportCalls int
}

func (f *fakeCI) Name() string { return "fake" }

func (f *fakeCI) Version(ctx context.Context) (string, error) {
	if f.versionErr != nil {
		return "", f.versionErr
	}
	if f.version == "" {
		return "2.426.1", nil
	}
	return f.version, nil
}

func (f *fakeCI) BuildJob(ctx context.Context, jobPath string, parameters map[string]string) (int, error) {
	f.submitted = append(f.submitted, BuildRequest{Job: jobPath, Parameters: parameters})
	if f.submitErr != nil {
		return 0, f.submitErr
	}
	return f.queueID, nil
}

func (f *fakeCI) GetQueueItem(ctx context.Context, queueID int) (*platform.QueueItem, error) {
	f.queueCalls++
	if f.queueErr != nil {
		return nil, f.queueErr
	}
	return nth(f.queueItems, f.queueCalls-1), nil
}

func (f *fakeCI) GetBuild(ctx context.Context, buildURL string) (*platform.Build, error) {
	f.buildCalls++
	if f.buildErr != nil {
		return nil, f.buildErr
	}
	return nth(f.builds, f.buildCalls-1), nil
}

func (f *fakeCI) GetTestReport(ctx context.Context, buildURL string) (*platform.TestReport, error) {
	f.reportCalls++
	return f.report, f.reportErr
}

func nth[T any](items []T, i int) T {
	if i >= len(items) {
		i = len(items) - 1
	}
	return items[i]
}

func pending() *platform.QueueItem {
	return &platform.QueueItem{ID: 1, Why: "Waiting for next available executor"}
}

func started(url string) *platform.QueueItem {
	return &platform.QueueItem{ID: 1, Executable: &platform.Executable{Number: 42, URL: url}}
}

func building() *platform.Build {
	return &platform.Build{Number: 42, Building: true}
}

func finished(result string) *platform.Build {
	return &platform.Build{Number: 42, Result: result}
}

// fakeBuild is a BuildHandle with scripted states.
type fakeBuild struct {
	url       string
	states    []BuildState
	refreshes int
	suite     output.TestSuite
	hasReport bool
	reportErr error
}

func (b *fakeBuild) URL() string { return b.url }

func (b *fakeBuild) Refresh(ctx context.Context) (BuildState, error) {
	b.refreshes++
	return nth(b.states, b.refreshes-1), nil
}

func (b *fakeBuild) TestReport(ctx context.Context) (output.TestSuite, bool, error) {
	return b.suite, b.hasReport, b.reportErr
}

// recordingSink records workflow outputs.
type recordingSink struct {
	outputs map[string]string
	notices []string
}

func (s *recordingSink) SetOutput(name, value string) error {
	if s.outputs == nil {
		s.outputs = map[string]string{}
	}
	s.outputs[name] = value
	return nil
}

func (s *recordingSink) Notice(title, message string) error {
	s.notices = append(s.notices, title+"="+message)
	return nil
}

// recordingPublisher records published texts.
type recordingPublisher struct {
	texts    []string
	warnings []error
}

func (p *recordingPublisher) Publish(ctx context.Context, text string) []error {
	p.texts = append(p.texts, text)
	return p.warnings
}

func newClock() *poll.SimulatedClock {
	return poll.NewSimulatedClock(epoch)
}
