// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package platform provides the Jenkins and GitHub API clients.
package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/version"
)

// sanitizeJobPath validates a job path such as "folder/sub/job" and returns
// its segments. Path traversal and absolute paths are rejected. A segment
// may carry an encoded slash, as multibranch jobs do for branch names like
// "feature%2Flogin".
func sanitizeJobPath(input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("job path cannot be empty")
	}

	// Reject URL-encoded traversal attempts
	if strings.Contains(strings.ToLower(input), "%2e") {
		return nil, fmt.Errorf("job path cannot contain URL-encoded dots")
	}

	if strings.HasPrefix(input, "/") || strings.HasPrefix(input, "\\") {
		return nil, fmt.Errorf("job path cannot be absolute")
	}

	segments := strings.Split(strings.TrimSuffix(input, "/"), "/")
	for _, segment := range segments {
		for _, part := range strings.Split(jobSegmentName(segment), "/") {
			if part == "" || part == "." || part == ".." {
				return nil, fmt.Errorf("job path contains an invalid segment %q", segment)
			}
		}
	}

	return segments, nil
}

// jobSegmentName decodes percent escapes in a job path segment. Segments
// that are not valid escapes are taken literally.
func jobSegmentName(segment string) string {
	name, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return name
}

// JenkinsClient is a client for the Jenkins remote access API
type JenkinsClient struct {
	baseURL    *url.URL
	username   string
	apiToken   string
	httpClient *http.Client
}

// JenkinsOption configures a JenkinsClient
type JenkinsOption func(*JenkinsClient)

// WithBasicAuth authenticates every request with a username and API token
func WithBasicAuth(username, apiToken string) JenkinsOption {
	return func(j *JenkinsClient) {
		j.username = username
		j.apiToken = apiToken
	}
}

// WithCookies sends the given cookies with every request
func WithCookies(cookies map[string]string) JenkinsOption {
	return func(j *JenkinsClient) {
		names := make([]string, 0, len(cookies))
		for name := range cookies {
			names = append(names, name)
		}
		sort.Strings(names)

		jarCookies := make([]*http.Cookie, 0, len(names))
		for _, name := range names {
			jarCookies = append(jarCookies, &http.Cookie{Name: name, Value: cookies[name]})
		}
		if j.httpClient.Jar != nil {
			j.httpClient.Jar.SetCookies(j.baseURL, jarCookies)
		}
	}
}

// WithHTTPClient replaces the HTTP client. A cookie jar is added when the
// client has none.
func WithHTTPClient(client *http.Client) JenkinsOption {
	return func(j *JenkinsClient) {
		if client.Jar == nil {
			client.Jar = j.httpClient.Jar
		}
		j.httpClient = client
	}
}

// QueueItem is an entry of the Jenkins build queue
type QueueItem struct {
	ID         int         `json:"id"`
	Cancelled  bool        `json:"cancelled"`
	Why        string      `json:"why"`
	URL        string      `json:"url"`
	Executable *Executable `json:"executable,omitempty"`
}

// Executable is the build that a queue item turned into
type Executable struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// Build is the state of a Jenkins build
type Build struct {
	Number          int    `json:"number"`
	URL             string `json:"url"`
	Building        bool   `json:"building"`
	Result          string `json:"result"`
	Duration        int64  `json:"duration"`
	DisplayName     string `json:"displayName"`
	FullDisplayName string `json:"fullDisplayName"`
}

// TestReport is the JUnit report Jenkins publishes for a build
type TestReport struct {
	FailCount int                `json:"failCount"`
	PassCount int                `json:"passCount"`
	SkipCount int                `json:"skipCount"`
	Suites    []JenkinsTestSuite `json:"suites"`
}

// JenkinsTestSuite is one suite of a TestReport
type JenkinsTestSuite struct {
	Name  string            `json:"name"`
	Cases []JenkinsTestCase `json:"cases"`
}

// JenkinsTestCase is one case of a JenkinsTestSuite
type JenkinsTestCase struct {
	ClassName       string  `json:"className"`
	Name            string  `json:"name"`
	Status          string  `json:"status"` // PASSED, FIXED, FAILED, REGRESSION, SKIPPED
	Duration        float64 `json:"duration"`
	ErrorDetails    string  `json:"errorDetails"`
	ErrorStackTrace string  `json:"errorStackTrace"`
}

// StatusError is returned when Jenkins answers with an unexpected status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Body)
}

// NewJenkinsClient creates a new Jenkins client
func NewJenkinsClient(baseURL string, opts ...JenkinsOption) (*JenkinsClient, error) {
	if err := validateBaseURL(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}

	// This cookie jar implementation never returns an error.
	jar, _ := cookiejar.New(nil)

	j := &JenkinsClient{
		baseURL: u,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

// Name returns the platform name
func (j *JenkinsClient) Name() string {
	return "jenkins"
}

// Authenticated reports whether requests carry credentials
func (j *JenkinsClient) Authenticated() bool {
	return j.username != "" && j.apiToken != ""
}

// Version probes the server and returns the raw X-Jenkins header. It fails
// when the server cannot be reached, rejects the credentials, or does not
// look like Jenkins. The value is not required to be a semantic version;
// CloudBees CI reports four-part versions such as 2.426.3.3.
func (j *JenkinsClient) Version(ctx context.Context) (string, error) {
	resp, err := j.do(ctx, http.MethodGet, j.resolve("api/json"), nil, "")
	if err != nil {
		return "", fmt.Errorf("failed to connect to Jenkins: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp)
	}

	raw := resp.Header.Get("X-Jenkins")
	if raw == "" {
		return "", fmt.Errorf("response from %s has no X-Jenkins header", j.baseURL.Redacted())
	}
	return raw, nil
}

// CreateCrumb creates a CSRF crumb for Jenkins API requests. Both return
// values are empty when the crumb issuer is disabled.
func (j *JenkinsClient) CreateCrumb(ctx context.Context) (string, string, error) {
	resp, err := j.do(ctx, http.MethodGet, j.resolve("crumbIssuer/api/json"), nil, "")
	if err != nil {
		return "", "", fmt.Errorf("failed to get crumb: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// CSRF protection is disabled
		return "", "", nil
	}

	if resp.StatusCode != http.StatusOK {
		return "", "", statusError(resp)
	}

	var crumb struct {
		Crumb             string `json:"crumb"`
		CrumbRequestField string `json:"crumbRequestField"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&crumb); err != nil {
		return "", "", fmt.Errorf("failed to decode response: %w", err)
	}

	return crumb.CrumbRequestField, crumb.Crumb, nil
}

// BuildJob triggers a build of the job at jobPath and returns the id of
// the queue item Jenkins created for it. Jobs without parameters use the
// /build endpoint.
func (j *JenkinsClient) BuildJob(ctx context.Context, jobPath string, parameters map[string]string) (int, error) {
	segments, err := sanitizeJobPath(jobPath)
	if err != nil {
		return 0, fmt.Errorf("invalid job name: %w", err)
	}

	endpoint := "build"
	var body io.Reader
	contentType := ""
	if len(parameters) > 0 {
		endpoint = "buildWithParameters"
		values := url.Values{}
		for key, value := range parameters {
			values.Set(key, value)
		}
		body = strings.NewReader(values.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	field, crumb, err := j.CreateCrumb(ctx)
	if err != nil {
		return 0, err
	}

	req, err := j.newRequest(ctx, http.MethodPost, j.jobURL(segments, endpoint), body, contentType)
	if err != nil {
		return 0, err
	}
	if field != "" {
		req.Header.Set(field, crumb)
	}

	resp, err := j.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to trigger build: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("job %s not found", jobPath)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return 0, statusError(resp)
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return 0, fmt.Errorf("build triggered but response has no queue location")
	}

	loc, err := url.Parse(location)
	if err != nil {
		return 0, fmt.Errorf("failed to parse queue location %q: %w", location, err)
	}

	// Location is typically: <base>/queue/item/{id}/
	queueID, err := strconv.Atoi(path.Base(path.Clean(loc.Path)))
	if err != nil || queueID <= 0 {
		return 0, fmt.Errorf("invalid queue item id in location %q", location)
	}

	return queueID, nil
}

// GetQueueItem retrieves a queue item by id
func (j *JenkinsClient) GetQueueItem(ctx context.Context, queueID int) (*QueueItem, error) {
	var item QueueItem
	u := j.resolve("queue/item/" + strconv.Itoa(queueID) + "/api/json")
	if err := j.getJSON(ctx, u, &item); err != nil {
		return nil, fmt.Errorf("failed to get queue item %d: %w", queueID, err)
	}
	return &item, nil
}

// GetBuild retrieves the state of the build at buildURL
func (j *JenkinsClient) GetBuild(ctx context.Context, buildURL string) (*Build, error) {
	u, err := apiURL(buildURL, "api/json")
	if err != nil {
		return nil, err
	}

	var build Build
	if err := j.getJSON(ctx, u, &build); err != nil {
		return nil, fmt.Errorf("failed to get build info: %w", err)
	}
	return &build, nil
}

// GetTestReport retrieves the test report of the build at buildURL. It
// returns nil without error when the build published no report.
func (j *JenkinsClient) GetTestReport(ctx context.Context, buildURL string) (*TestReport, error) {
	u, err := apiURL(buildURL, "testReport/api/json")
	if err != nil {
		return nil, err
	}

	var report TestReport
	if err := j.getJSON(ctx, u, &report); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get test report: %w", err)
	}
	return &report, nil
}

func (j *JenkinsClient) getJSON(ctx context.Context, u string, out any) error {
	resp, err := j.do(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (j *JenkinsClient) do(ctx context.Context, method, u string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := j.newRequest(ctx, method, u, body, contentType)
	if err != nil {
		return nil, err
	}
	return j.httpClient.Do(req)
}

func (j *JenkinsClient) newRequest(ctx context.Context, method, u string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if j.Authenticated() {
		req.SetBasicAuth(j.username, j.apiToken)
	}
	return req, nil
}

func (j *JenkinsClient) resolve(ref string) string {
	return j.baseURL.JoinPath(ref).String()
}

// jobURL expands folder segments: a/b → <base>/job/a/job/b/<endpoint>.
// Each segment is escaped as a single path element.
func (j *JenkinsClient) jobURL(segments []string, endpoint string) string {
	elems := make([]string, 0, 2*len(segments)+1)
	for _, segment := range segments {
		elems = append(elems, "job", url.PathEscape(jobSegmentName(segment)))
	}
	elems = append(elems, endpoint)
	return j.baseURL.JoinPath(elems...).String()
}

func apiURL(buildURL, suffix string) (string, error) {
	if buildURL == "" {
		return "", fmt.Errorf("build URL is empty")
	}
	u, err := url.Parse(buildURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse build URL %q: %w", buildURL, err)
	}
	return u.JoinPath(suffix).String(), nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
