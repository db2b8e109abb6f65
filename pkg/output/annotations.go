// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Annotator emits GitHub workflow commands on standard output and step
// outputs to the $GITHUB_OUTPUT file.
type Annotator struct {
	stdout     io.Writer
	outputPath string
}

// NewAnnotator creates an Annotator. An empty outputPath disables the
// output file.
func NewAnnotator(stdout io.Writer, outputPath string) *Annotator {
	return &Annotator{stdout: stdout, outputPath: outputPath}
}

// SetOutput publishes a step output both as a legacy set-output command and
// through the output file.
func (a *Annotator) SetOutput(name, value string) error {
	if _, err := fmt.Fprintf(a.stdout, "::set-output name=%s::%s\n", name, escapeData(value)); err != nil {
		return err
	}
	return a.writeOutputFile(name, value)
}

// Notice prints a notice annotation.
func (a *Annotator) Notice(title, message string) error {
	_, err := fmt.Fprintf(a.stdout, "::notice title=%s::%s\n", escapeProperty(title), escapeData(message))
	return err
}

func (a *Annotator) writeOutputFile(name, value string) error {
	if a.outputPath == "" {
		return nil
	}

	f, err := os.OpenFile(a.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	if strings.Contains(value, "\n") {
		delimiter := "EOF"
		for strings.Contains(value, delimiter) {
			delimiter += "_"
		}
		_, err = fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		_, err = fmt.Fprintf(f, "%s=%s\n", name, value)
	}
	return err
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string     { return dataEscaper.Replace(s) }
func escapeProperty(s string) string { return propertyEscaper.Replace(s) }
