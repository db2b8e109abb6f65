// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/platform"
)

// Sink names used in warnings and logs.
const (
	SinkStepSummary = "step summary"
	SinkComment     = "commit comment"
)

// Reporter publishes rendered reports to the step summary file and as a
// commit comment.
type Reporter struct {
	summaryPath string
	commenter   platform.CommitCommenter
	sha         string
	logger      *log.Logger
}

// ReporterOptions configures a Reporter. Empty fields disable the sink
// that needs them.
type ReporterOptions struct {
	// SummaryPath is the value of $GITHUB_STEP_SUMMARY.
	SummaryPath string
	// Commenter posts the commit comment; nil disables the comment sink.
	Commenter platform.CommitCommenter
	// SHA is the commit to comment on.
	SHA    string
	Logger *log.Logger
}

// NewReporter creates a new reporter.
func NewReporter(opts ReporterOptions) *Reporter {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Reporter{
		summaryPath: opts.SummaryPath,
		commenter:   opts.Commenter,
		sha:         opts.SHA,
		logger:      logger,
	}
}

// Publish writes text to every configured sink, one after the other. A
// failing sink does not stop the others. The returned warnings have been
// logged already and are never fatal.
func (r *Reporter) Publish(ctx context.Context, text string) []error {
	var warnings []error

	if err := r.writeSummary(text); err != nil {
		warnings = append(warnings, r.warn(SinkStepSummary, err))
	}

	if err := r.postComment(ctx, text); err != nil {
		warnings = append(warnings, r.warn(SinkComment, err))
	}

	return warnings
}

func (r *Reporter) writeSummary(text string) error {
	if r.summaryPath == "" {
		r.logger.Info("GITHUB_STEP_SUMMARY is not set, skipping step summary")
		return nil
	}

	f, err := os.OpenFile(r.summaryPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open summary file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}

	r.logger.Debug("Wrote step summary", "path", r.summaryPath)
	return nil
}

func (r *Reporter) postComment(ctx context.Context, text string) error {
	if r.commenter == nil || r.sha == "" {
		r.logger.Info("GitHub token, repository or commit not set, skipping commit comment")
		return nil
	}

	if err := r.commenter.PostCommitComment(ctx, r.sha, text); err != nil {
		var apiErr *platform.APIError
		if stderrors.As(err, &apiErr) {
			r.logger.Warn("Commit comment was rejected", "status", apiErr.StatusCode, "body", apiErr.Body)
		}
		return err
	}

	r.logger.Info("Posted commit comment", "sha", r.sha)
	return nil
}

func (r *Reporter) warn(sink string, cause error) error {
	warning := errors.PublishWarning(sink, cause)
	r.logger.Warn(warning.Error())
	return warning
}
