// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for jenkins-action.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Config file: --config or INPUT_CONFIG
// 3. Environment Variables: INPUT_* and GITHUB_*
// 4. Command line flags
package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration.
type Config struct {
	Jenkins  JenkinsConfig `yaml:"jenkins"`
	Build    BuildConfig   `yaml:"build"`
	GitHub   GitHubConfig  `yaml:"github"`
	LogLevel string        `yaml:"log_level"` // debug, info, warning, error
}

// JenkinsConfig contains the Jenkins connection settings.
type JenkinsConfig struct {
	URL      string            `yaml:"url"`
	Username string            `yaml:"username"`
	APIToken string            `yaml:"api_token"`
	Cookies  map[string]string `yaml:"cookies,omitempty"`
}

// HasCredentials reports whether both username and API token are set.
// Partial credentials are ignored.
func (j JenkinsConfig) HasCredentials() bool {
	return j.Username != "" && j.APIToken != ""
}

// BuildConfig describes the build to run and how long to wait for it.
type BuildConfig struct {
	Job          string            `yaml:"job_name"`
	Parameters   map[string]string `yaml:"parameters,omitempty"`
	Wait         bool              `yaml:"wait"`
	Timeout      Duration          `yaml:"timeout"`
	StartTimeout Duration          `yaml:"start_timeout"`
	Interval     Duration          `yaml:"interval"`
}

// GitHubConfig contains the workflow environment. It is normally read
// from the variables GitHub Actions sets.
type GitHubConfig struct {
	Token       string `yaml:"-"` // never read from files
	Repository  string `yaml:"repository"`
	SHA         string `yaml:"sha"`
	APIURL      string `yaml:"api_url"`
	StepSummary string `yaml:"step_summary"`
	OutputFile  string `yaml:"output_file"`
}

// CommentsEnabled reports whether a commit comment can be posted.
func (g GitHubConfig) CommentsEnabled() bool {
	return g.Token != "" && g.Repository != "" && g.SHA != ""
}

// Duration is a time.Duration that also accepts a bare number of seconds.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalYAML accepts "90s", "5m" or 90.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := parseDuration(node.Value)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}
