// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/platform"
)

// Trigger checks that Jenkins is reachable and submits the build. It never
// retries: a second submission could start a duplicate build.
func Trigger(ctx context.Context, client platform.CI, req BuildRequest) (QueueHandle, error) {
	logger := log.FromContext(ctx)

	raw, err := client.Version(ctx)
	if err != nil {
		return nil, errors.ConnectError("could not connect to Jenkins", err)
	}
	logger.Info("Successfully connected to Jenkins", "version", raw)

	if version, err := semver.NewVersion(raw); err != nil {
		logger.Warn("Could not parse Jenkins version, skipping version check", "version", raw, "err", err)
	} else if version.LessThan(platform.MinimumJenkinsVersion) {
		logger.Warn("Jenkins is older than the oldest tested version",
			"version", raw, "minimum", platform.MinimumJenkinsVersion.String())
	}

	queueID, err := client.BuildJob(ctx, req.Job, req.Parameters)
	if err != nil {
		return nil, errors.SubmissionError(fmt.Sprintf("failed to submit job %s", req.Job), err).
			WithContext("job", req.Job)
	}
	logger.Info("Requested to build job", "job", req.Job, "queue_id", queueID)

	return &jenkinsQueueItem{client: client, id: queueID}, nil
}
