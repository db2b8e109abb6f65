// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v59/github"
	"golang.org/x/oauth2"

	"github.com/cicd-ai-toolkit/jenkins-action/pkg/version"
)

const (
	// DefaultGitHubAPIURL is used when GITHUB_API_URL is not set.
	DefaultGitHubAPIURL = "https://api.github.com"

	// rawMediaType asks GitHub to return the comment body as raw Markdown.
	rawMediaType = "application/vnd.github.raw+json"
)

// GitHub is the GitHub platform adapter. It posts commit comments.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
}

// GitHubOptions configures NewGitHub.
type GitHubOptions struct {
	// Token is sent as a bearer token.
	Token string
	// APIURL is the REST API root, e.g. https://api.github.com.
	APIURL string
	// Repository is "owner/repo".
	Repository string
	// HTTPClient is the transport underneath the token source.
	HTTPClient *http.Client
}

// APIError is returned when GitHub answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github API returned status %d: %s", e.StatusCode, e.Body)
}

// NewGitHub creates a new GitHub adapter.
func NewGitHub(ctx context.Context, opts GitHubOptions) (*GitHub, error) {
	if opts.Token == "" {
		return nil, fmt.Errorf("github token is empty")
	}

	owner, repo, ok := strings.Cut(opts.Repository, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("repository %q is not in owner/repo form", opts.Repository)
	}

	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = DefaultGitHubAPIURL
	}
	if err := validateBaseURL(apiURL); err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	base, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse API URL: %w", err)
	}

	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})

	client := github.NewClient(oauth2.NewClient(ctx, ts))
	client.BaseURL = base
	client.UserAgent = version.UserAgent()

	return &GitHub{
		client: client,
		owner:  owner,
		repo:   repo,
	}, nil
}

// Name returns the platform name.
func (g *GitHub) Name() string {
	return "github"
}

// PostCommitComment posts body as a comment on commit sha. The request is
// attempted once.
func (g *GitHub) PostCommitComment(ctx context.Context, sha, body string) error {
	if sha == "" {
		return fmt.Errorf("commit sha is empty")
	}

	u := fmt.Sprintf("repos/%s/%s/commits/%s/comments",
		url.PathEscape(g.owner), url.PathEscape(g.repo), url.PathEscape(sha))

	req, err := g.client.NewRequest(http.MethodPost, u, &github.RepositoryComment{Body: github.String(body)})
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", rawMediaType)

	comment := new(github.RepositoryComment)
	resp, err := g.client.Do(ctx, req, comment)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil {
			return &APIError{StatusCode: errResp.Response.StatusCode, Body: errorBody(errResp)}
		}
		if resp != nil {
			return &APIError{StatusCode: resp.StatusCode, Body: err.Error()}
		}
		return fmt.Errorf("failed to post commit comment: %w", err)
	}

	return nil
}

// errorBody returns the message GitHub sent, or the raw response body when
// the reply was not a JSON error, such as a proxy's HTML page.
func errorBody(errResp *github.ErrorResponse) string {
	if errResp.Message != "" {
		return errResp.Message
	}
	if body := errResp.Response.Body; body != nil {
		data, err := io.ReadAll(io.LimitReader(body, 4096))
		if err == nil && len(bytes.TrimSpace(data)) > 0 {
			return string(bytes.TrimSpace(data))
		}
	}
	return http.StatusText(errResp.Response.StatusCode)
}
