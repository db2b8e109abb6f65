// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"fmt"
	"net/url"
	"regexp"
)

// validURLPattern matches safe URL schemes (http/https only)
var validURLPattern = regexp.MustCompile(`^https?://`)

// blockedHostPatterns matches cloud metadata endpoints. Private networks
// stay reachable because self-hosted Jenkins usually lives on one.
var blockedHostPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^169\.254\.169\.254$`),         // AWS/GCP/Azure metadata endpoint
	regexp.MustCompile(`^metadata\.google\.internal$`), // GCP metadata hostname
	regexp.MustCompile(`^fd00:ec2::254$`),              // AWS IPv6 metadata endpoint
}

// validateBaseURL ensures only http/https URLs with a hostname are used
// and that metadata endpoints are never contacted.
func validateBaseURL(baseURL string) error {
	if !validURLPattern.MatchString(baseURL) {
		return fmt.Errorf("invalid URL scheme: only http and https are allowed")
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	hostname := parsedURL.Hostname()
	if hostname == "" {
		return fmt.Errorf("URL has no hostname")
	}

	for _, pattern := range blockedHostPatterns {
		if pattern.MatchString(hostname) {
			return fmt.Errorf("SSRF protection: cannot connect to metadata endpoint: %s", hostname)
		}
	}

	return nil
}
