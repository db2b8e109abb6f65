// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/errors"
	"github.com/cicd-ai-toolkit/jenkins-action/pkg/observability"
)

// Validate validates the configuration
func (c *Config) Validate() error {
	if c == nil {
		return errors.ConfigError("config is nil", nil)
	}

	if strings.TrimSpace(c.Jenkins.URL) == "" {
		return missing(KeyURL)
	}
	if strings.TrimSpace(c.Build.Job) == "" {
		return missing(KeyJobName)
	}

	if c.Build.Interval <= 0 {
		return errors.ConfigError(fmt.Sprintf("%s must be positive, got %s", KeyInterval, c.Build.Interval), nil)
	}
	if c.Build.Timeout <= 0 {
		return errors.ConfigError(fmt.Sprintf("%s must be positive, got %s", KeyTimeout, c.Build.Timeout), nil)
	}
	if c.Build.StartTimeout <= 0 {
		return errors.ConfigError(fmt.Sprintf("%s must be positive, got %s", KeyStartTimeout, c.Build.StartTimeout), nil)
	}

	if _, err := observability.ParseLevel(c.LogLevel); err != nil {
		return errors.ConfigError(fmt.Sprintf("invalid %s %q", KeyLogLevel, c.LogLevel), err)
	}

	return nil
}

func missing(key string) error {
	return errors.ConfigError(fmt.Sprintf("missing required input `%s`", key), nil).
		WithContext("input", key)
}

// ParseStringMap decodes a JSON object. Values may be any JSON type;
// non-strings are re-encoded as JSON text so that 3 becomes "3" and true
// becomes "true".
func ParseStringMap(name, raw string) (map[string]string, error) {
	out := map[string]string{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, errors.JSONParseError(name, err)
	}
	if dec.More() {
		return nil, errors.JSONParseError(name, fmt.Errorf("unexpected data after JSON object"))
	}
	if values == nil {
		return nil, errors.JSONParseError(name, fmt.Errorf("expected a JSON object, got null"))
	}

	for key, value := range values {
		s, err := stringify(value)
		if err != nil {
			return nil, errors.JSONParseError(name, err)
		}
		out[key] = s
	}
	return out, nil
}

func stringify(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return "", err
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	}
}

// parseDuration accepts a number of seconds or a Go duration string.
func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: use seconds or a value like 90s or 5m", raw)
	}
	return d, nil
}

// parseBool accepts the spellings workflow authors commonly use.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "y", "on":
		return true, nil
	case "false", "0", "no", "n", "off", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}
