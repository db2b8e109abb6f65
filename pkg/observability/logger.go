// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package observability provides logging.
package observability

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Prefix is prepended to every log line.
const Prefix = "JENKINS_ACTION"

// ParseLevel converts a level name such as "INFO" or "debug" to a log
// level. An empty name means info.
func ParseLevel(level string) (log.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return log.InfoLevel, nil
	}
	switch strings.ToLower(level) {
	case "warning":
		return log.WarnLevel, nil
	case "critical":
		return log.FatalLevel, nil
	}
	return log.ParseLevel(strings.ToLower(level))
}

// NewLogger creates a logger writing to w. Standard output is reserved for
// workflow annotations, so callers normally pass os.Stderr.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: true,
	})

	styles := log.DefaultStyles()
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color("214"))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.Color("204"))
	logger.SetStyles(styles)

	return logger
}

// NewRunID returns an identifier for one invocation. It is attached to the
// logger and embedded in published reports.
func NewRunID() string {
	return uuid.NewString()
}
