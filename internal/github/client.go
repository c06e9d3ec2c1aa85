// Package github looks up the latest commit of the loader repositories,
// which is what the installed loader version is stamped with.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"samm/internal/domain"

	"github.com/tidwall/gjson"
)

const (
	apiBaseURL      = "https://api.github.com"
	graphqlEndpoint = "https://api.github.com/graphql"
)

// CommitSource returns the newest commit hash of a repository's default branch
type CommitSource interface {
	LatestCommit(ctx context.Context, owner, repo string) (string, error)
}

// CommitInfo is the head commit of a repository
type CommitInfo struct {
	SHA     string
	Message string
	Author  string
	Date    time.Time
}

// NewCommitSource picks the GraphQL API when a token is available and the
// anonymous REST API otherwise
func NewCommitSource(httpClient *http.Client, token string) CommitSource {
	if token != "" {
		return NewGraphQLClient(httpClient, token)
	}
	return NewClient(httpClient, "")
}

// Client wraps the GitHub REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a REST client. The token is optional; without it
// requests are subject to the anonymous rate limit.
func NewClient(httpClient *http.Client, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    apiBaseURL,
		token:      token,
	}
}

// LatestCommit returns the hash of the head commit of the default branch
func (c *Client) LatestCommit(ctx context.Context, owner, repo string) (string, error) {
	info, err := c.LatestCommitInfo(ctx, owner, repo)
	if err != nil {
		return "", err
	}
	return info.SHA, nil
}

// LatestCommitInfo returns the head commit of the default branch with its
// message, which doubles as the loader's patch notes
func (c *Client) LatestCommitInfo(ctx context.Context, owner, repo string) (*CommitInfo, error) {
	body, err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits/HEAD", owner, repo))
	if err != nil {
		return nil, err
	}

	sha := gjson.GetBytes(body, "sha")
	if !sha.Exists() || sha.String() == "" {
		return nil, fmt.Errorf("commit response for %s/%s has no sha", owner, repo)
	}

	info := &CommitInfo{
		SHA:     sha.String(),
		Message: gjson.GetBytes(body, "commit.message").String(),
		Author:  gjson.GetBytes(body, "commit.author.name").String(),
	}
	if date := gjson.GetBytes(body, "commit.author.date"); date.Exists() {
		info.Date, _ = time.Parse(time.RFC3339, date.String())
	}
	return info, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrDownloadFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("%w: GitHub API %d: %s", domain.ErrDownloadFailed, resp.StatusCode, msg)
	}

	return body, nil
}
