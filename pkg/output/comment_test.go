// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatComment(t *testing.T) {
	report := Aggregate(TestSuite{
		{Name: "t1", ClassName: "A", Status: StatusFailed},
	})

	text := FormatComment(Summary{
		RunID:    "0b5c",
		Job:      "deploy",
		BuildURL: "https://jenkins.example.com/job/deploy/42/",
		Result:   "FAILURE",
		Report:   &report,
	})

	assert.True(t, strings.HasPrefix(text, "<!-- jenkins-action: 0b5c -->\n"))
	assert.Contains(t, text, "**[deploy](https://jenkins.example.com/job/deploy/42/)** finished with result **FAILURE**")
	assert.True(t, strings.HasSuffix(text, report.Render()))

	runID, ok := RunIDOf(text)
	assert.True(t, ok)
	assert.Equal(t, "0b5c", runID)
}

func TestFormatCommentWithoutReport(t *testing.T) {
	text := FormatComment(Summary{Result: "SUCCESS"})

	assert.Equal(t, "**Jenkins build** finished with result **SUCCESS**\n\n"+
		"_No test report was published for this build._\n", text)

	_, ok := RunIDOf(text)
	assert.False(t, ok)
}
