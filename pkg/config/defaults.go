// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import "time"

// Default durations, matching the action's declared input defaults.
const (
	DefaultTimeout      = 600 * time.Second
	DefaultStartTimeout = 600 * time.Second
	DefaultInterval     = 5 * time.Second
)

// DefaultGitHubAPIURL is used when GITHUB_API_URL is not set.
const DefaultGitHubAPIURL = "https://api.github.com"

// DefaultConfig returns the default configuration.
// These values are used when nothing else sets them.
func DefaultConfig() *Config {
	return &Config{
		Jenkins: JenkinsConfig{
			Cookies: map[string]string{},
		},
		Build: BuildConfig{
			Parameters:   map[string]string{},
			Timeout:      Duration(DefaultTimeout),
			StartTimeout: Duration(DefaultStartTimeout),
			Interval:     Duration(DefaultInterval),
		},
		GitHub: GitHubConfig{
			APIURL: DefaultGitHubAPIURL,
		},
		LogLevel: "info",
	}
}
