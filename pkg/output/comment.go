// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"fmt"
	"strings"
)

// markerPrefix opens the hidden marker that identifies comments written by
// this action.
const markerPrefix = "<!-- jenkins-action:"

// Summary is everything that goes into a published comment.
type Summary struct {
	RunID    string
	Job      string
	BuildURL string
	Result   string
	// Report is nil when the build published no test report.
	Report *Report
}

// FormatComment renders the text published to the step summary and the
// commit comment.
func FormatComment(s Summary) string {
	var b strings.Builder

	if s.RunID != "" {
		fmt.Fprintf(&b, "%s %s -->\n", markerPrefix, s.RunID)
	}

	job := s.Job
	if job == "" {
		job = "Jenkins build"
	}
	if s.BuildURL != "" {
		fmt.Fprintf(&b, "**[%s](%s)** finished with result **%s**\n\n", job, s.BuildURL, s.Result)
	} else {
		fmt.Fprintf(&b, "**%s** finished with result **%s**\n\n", job, s.Result)
	}

	if s.Report == nil {
		b.WriteString("_No test report was published for this build._\n")
		return b.String()
	}

	b.WriteString(s.Report.Render())
	return b.String()
}

// RunIDOf extracts the run id from a comment written by FormatComment.
func RunIDOf(comment string) (string, bool) {
	start := strings.Index(comment, markerPrefix)
	if start < 0 {
		return "", false
	}
	rest := comment[start+len(markerPrefix):]
	end := strings.Index(rest, "-->")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
