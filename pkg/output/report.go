// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package output turns test results into reports and publishes them.
package output

// CaseStatus is the normalized status of a test case.
type CaseStatus int

const (
	StatusPassed CaseStatus = iota
	StatusFailed
	StatusRegression
	StatusSkipped
	StatusOther
)

func (s CaseStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusRegression:
		return "regression"
	case StatusSkipped:
		return "skipped"
	default:
		return "other"
	}
}

// Failing reports whether the status counts as a failure. Only failed and
// regressed cases do; skipped and unrecognized cases count as passed.
func (s CaseStatus) Failing() bool {
	return s == StatusFailed || s == StatusRegression
}

// TestCase is a single test result.
type TestCase struct {
	Name         string
	ClassName    string
	Status       CaseStatus
	ErrorDetails string
}

// TestSuite is an ordered sequence of test cases in report order.
type TestSuite []TestCase

// FailureSection groups the failing tests of one class in the order they
// were first seen.
type FailureSection struct {
	ClassName string
	Tests     []string
}

// FailureDetail is the error message of one failing test.
type FailureDetail struct {
	ClassName string
	Name      string
	Details   string
}

// Report summarizes a test suite. A Report is built once by Aggregate and
// not modified afterwards.
type Report struct {
	Total    int
	Passed   int
	Failed   int
	Sections []FailureSection
	Details  []FailureDetail
}

// Aggregate builds a Report in a single ordered pass over suite.
//
// Sections appear in the order of each class's first failing case and no
// class appears twice. Passed+Failed always equals Total.
func Aggregate(suite TestSuite) Report {
	report := Report{Total: len(suite)}
	index := make(map[string]int)

	for _, tc := range suite {
		if !tc.Status.Failing() {
			report.Passed++
			continue
		}
		report.Failed++

		i, seen := index[tc.ClassName]
		if !seen {
			i = len(report.Sections)
			index[tc.ClassName] = i
			report.Sections = append(report.Sections, FailureSection{ClassName: tc.ClassName})
		}
		report.Sections[i].Tests = append(report.Sections[i].Tests, tc.Name)

		if tc.ErrorDetails != "" {
			report.Details = append(report.Details, FailureDetail{
				ClassName: tc.ClassName,
				Name:      tc.Name,
				Details:   tc.ErrorDetails,
			})
		}
	}

	return report
}
