// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import "github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"

// Outcome is the canonical result of a finished build.
type Outcome int

const (
	OutcomeSuccess Outcome = iota + 1
	OutcomeFailure
	OutcomeAborted
	OutcomeUnstable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeFailure:
		return "FAILURE"
	case OutcomeAborted:
		return "ABORTED"
	case OutcomeUnstable:
		return "UNSTABLE"
	default:
		return "UNKNOWN"
	}
}

// outcomes is the closed set of results Jenkins reports for finished
// builds. Lookups are exact; "success" or "SUCCESS " are not results.
var outcomes = map[string]Outcome{
	"SUCCESS":  OutcomeSuccess,
	"FAILURE":  OutcomeFailure,
	"ABORTED":  OutcomeAborted,
	"UNSTABLE": OutcomeUnstable,
}

// Classify maps a raw Jenkins result to an Outcome. Any other value,
// including the empty string, is an UnknownResultError.
func Classify(raw string) (Outcome, error) {
	outcome, ok := outcomes[raw]
	if !ok {
		return 0, errors.UnknownResultError(raw)
	}
	return outcome, nil
}
