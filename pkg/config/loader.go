// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
)

// Configuration keys. Flags use the same names with dashes.
const (
	KeyConfig       = "config"
	KeyURL          = "url"
	KeyJobName      = "job_name"
	KeyUsername     = "username"
	KeyAPIToken     = "api_token"
	KeyParameters   = "parameters"
	KeyCookies      = "cookies"
	KeyWait         = "wait"
	KeyTimeout      = "timeout"
	KeyStartTimeout = "start_timeout"
	KeyInterval     = "interval"
	KeyLogLevel     = "log_level"

	KeyGitHubToken       = "github_token"
	KeyGitHubRepository  = "github_repository"
	KeyGitHubSHA         = "github_sha"
	KeyGitHubAPIURL      = "github_api_url"
	KeyGitHubStepSummary = "github_step_summary"
	KeyGitHubOutput      = "github_output"
)

// envBindings maps each key to the environment variables read for it, in
// priority order. Action inputs arrive as INPUT_<NAME>.
var envBindings = map[string][]string{
	KeyConfig:       {"INPUT_CONFIG"},
	KeyURL:          {"INPUT_URL"},
	KeyJobName:      {"INPUT_JOB_NAME"},
	KeyUsername:     {"INPUT_USERNAME"},
	KeyAPIToken:     {"INPUT_API_TOKEN"},
	KeyParameters:   {"INPUT_PARAMETERS"},
	KeyCookies:      {"INPUT_COOKIES"},
	KeyWait:         {"INPUT_WAIT"},
	KeyTimeout:      {"INPUT_TIMEOUT"},
	KeyStartTimeout: {"INPUT_START_TIMEOUT"},
	KeyInterval:     {"INPUT_INTERVAL"},
	KeyLogLevel:     {"INPUT_LOG_LEVEL"},

	KeyGitHubToken:       {"INPUT_GITHUB_TOKEN", "GITHUB_TOKEN"},
	KeyGitHubRepository:  {"GITHUB_REPOSITORY"},
	KeyGitHubSHA:         {"GITHUB_SHA"},
	KeyGitHubAPIURL:      {"GITHUB_API_URL"},
	KeyGitHubStepSummary: {"GITHUB_STEP_SUMMARY"},
	KeyGitHubOutput:      {"GITHUB_OUTPUT"},
}

// Loader loads configuration from a file, the environment and flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	v := viper.New()
	for key, envs := range envBindings {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
	return &Loader{v: v}
}

// BindFlags lets changed flags override every other source. Flags are
// looked up by key with underscores replaced by dashes; keys without a
// flag are skipped.
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	for key := range envBindings {
		flag := flags.Lookup(FlagName(key))
		if flag == nil {
			continue
		}
		if err := l.v.BindPFlag(key, flag); err != nil {
			return errors.ConfigError(fmt.Sprintf("failed to bind flag --%s", flag.Name), err)
		}
	}
	return nil
}

// Load builds the configuration and validates it.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := l.v.GetString(KeyConfig); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := l.apply(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply overrides cfg with every key set in the environment or by a flag.
func (l *Loader) apply(cfg *Config) error {
	texts := map[string]*string{
		KeyURL:               &cfg.Jenkins.URL,
		KeyJobName:           &cfg.Build.Job,
		KeyUsername:          &cfg.Jenkins.Username,
		KeyAPIToken:          &cfg.Jenkins.APIToken,
		KeyLogLevel:          &cfg.LogLevel,
		KeyGitHubToken:       &cfg.GitHub.Token,
		KeyGitHubRepository:  &cfg.GitHub.Repository,
		KeyGitHubSHA:         &cfg.GitHub.SHA,
		KeyGitHubAPIURL:      &cfg.GitHub.APIURL,
		KeyGitHubStepSummary: &cfg.GitHub.StepSummary,
		KeyGitHubOutput:      &cfg.GitHub.OutputFile,
	}
	for key, field := range texts {
		if l.v.IsSet(key) {
			*field = l.v.GetString(key)
		}
	}

	maps := map[string]*map[string]string{
		KeyParameters: &cfg.Build.Parameters,
		KeyCookies:    &cfg.Jenkins.Cookies,
	}
	for key, field := range maps {
		if !l.v.IsSet(key) {
			continue
		}
		m, err := ParseStringMap(key, l.v.GetString(key))
		if err != nil {
			return err
		}
		*field = m
	}

	durations := map[string]*Duration{
		KeyTimeout:      &cfg.Build.Timeout,
		KeyStartTimeout: &cfg.Build.StartTimeout,
		KeyInterval:     &cfg.Build.Interval,
	}
	for key, field := range durations {
		if !l.v.IsSet(key) {
			continue
		}
		d, err := parseDuration(l.v.GetString(key))
		if err != nil {
			return errors.ConfigError(fmt.Sprintf("invalid %s", key), err)
		}
		*field = Duration(d)
	}

	if l.v.IsSet(KeyWait) {
		wait, err := parseBool(l.v.GetString(KeyWait))
		if err != nil {
			return errors.ConfigError(fmt.Sprintf("invalid %s", KeyWait), err)
		}
		cfg.Build.Wait = wait
	}

	return nil
}

// FlagName returns the command line flag name for a key.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
