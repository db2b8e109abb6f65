// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"fmt"
	"strings"
)

// Render formats the report as Markdown. The output depends only on the
// report's fields.
func (r Report) Render() string {
	var b strings.Builder

	b.WriteString("## Test Results\n")
	fmt.Fprintf(&b, "* __Total:__ %d\n", r.Total)
	fmt.Fprintf(&b, "* __Passed:__ %d\n", r.Passed)
	fmt.Fprintf(&b, "* __Failed:__ %d\n", r.Failed)

	for _, section := range r.Sections {
		fmt.Fprintf(&b, "\n### %s\n", section.ClassName)
		for _, test := range section.Tests {
			fmt.Fprintf(&b, "- %s\n", test)
		}
	}

	if len(r.Details) > 0 {
		b.WriteString("\n### Failure details\n")
		for _, d := range r.Details {
			fence := codeFence(d.Details)
			fmt.Fprintf(&b, "\n#### %s.%s\n", d.ClassName, d.Name)
			fmt.Fprintf(&b, "%stext\n%s\n%s\n", fence, strings.TrimRight(d.Details, "\n"), fence)
		}
	}

	return b.String()
}

// codeFence returns a backtick fence longer than any backtick run in s.
func codeFence(s string) string {
	longest, run := 0, 0
	for _, c := range s {
		if c == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}
