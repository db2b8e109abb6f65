// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import "github.com/cicd-ai-toolkit/jenkins-action/pkg/platform"

// jenkinsStatuses maps Jenkins case statuses. A fixed test passed in this
// build after failing in the previous one.
var jenkinsStatuses = map[string]CaseStatus{
	"PASSED":     StatusPassed,
	"FIXED":      StatusPassed,
	"FAILED":     StatusFailed,
	"REGRESSION": StatusRegression,
	"SKIPPED":    StatusSkipped,
}

// SuiteFromJenkins flattens a Jenkins test report into a TestSuite,
// keeping the order of suites and cases.
func SuiteFromJenkins(report *platform.TestReport) TestSuite {
	if report == nil {
		return nil
	}

	var suite TestSuite
	for _, s := range report.Suites {
		for _, c := range s.Cases {
			status, ok := jenkinsStatuses[c.Status]
			if !ok {
				status = StatusOther
			}
			suite = append(suite, TestCase{
				Name:         c.Name,
				ClassName:    c.ClassName,
				Status:       status,
				ErrorDetails: c.ErrorDetails,
			})
		}
	}
	return suite
}
