package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskboard-api/internal/metrics"
)

// GitHub API payloads. Only the fields this service reads are modelled.

type GitHubUser struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
}

type GitHubRepo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Private     bool   `json:"private"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Owner       struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type GitHubBranch struct {
	Name   string `json:"name"`
	Commit struct {
		SHA string `json:"sha"`
	} `json:"commit"`
}

type GitHubPull struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`
}

// GitHubIssue also covers pull requests: GitHub lists them as issues with PullRequest set
type GitHubIssue struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	State       string    `json:"state"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

type GitHubCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
	} `json:"commit"`
}

// GitHubAPIError is a non-2xx answer from GitHub
type GitHubAPIError struct {
	StatusCode int
	Message    string
}

func (e *GitHubAPIError) Error() string {
	return fmt.Sprintf("github api returned %d: %s", e.StatusCode, e.Message)
}

// GitHubClient talks to the GitHub OAuth endpoint and REST API
type GitHubClient interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	GetUser(ctx context.Context, token string) (*GitHubUser, error)
	ListRepositories(ctx context.Context, token string) ([]GitHubRepo, error)
	ListBranches(ctx context.Context, token, owner, repo string) ([]GitHubBranch, error)
	ListPulls(ctx context.Context, token, owner, repo string) ([]GitHubPull, error)
	ListIssues(ctx context.Context, token, owner, repo string) ([]GitHubIssue, error)
	ListCommits(ctx context.Context, token, owner, repo string, limit int) ([]GitHubCommit, error)
}

// GitHubConfig holds OAuth app credentials and endpoints
type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	APIBaseURL   string
	OAuthURL     string
	Timeout      time.Duration
}

type gitHubClient struct {
	cfg        GitHubConfig
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewGitHubClient creates a new GitHub API client
func NewGitHubClient(cfg GitHubConfig, logger *zap.Logger, m *metrics.Metrics) GitHubClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &gitHubClient{
		cfg: GitHubConfig{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			APIBaseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
			OAuthURL:     cfg.OAuthURL,
			Timeout:      cfg.Timeout,
		},
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		metrics:    m,
	}
}

// ExchangeCode trades an OAuth authorization code for an access token
func (c *gitHubClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"code":          {code},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OAuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var out struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	// GitHub answers 200 with an error field for bad or expired codes
	if out.AccessToken == "" {
		msg := out.ErrorDescription
		if msg == "" {
			msg = out.Error
		}
		return "", &GitHubAPIError{StatusCode: http.StatusUnauthorized, Message: msg}
	}
	return out.AccessToken, nil
}

func (c *gitHubClient) GetUser(ctx context.Context, token string) (*GitHubUser, error) {
	var user GitHubUser
	if err := c.get(ctx, token, "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *gitHubClient) ListRepositories(ctx context.Context, token string) ([]GitHubRepo, error) {
	var repos []GitHubRepo
	q := url.Values{"per_page": {"100"}, "sort": {"updated"}}
	if err := c.get(ctx, token, "/user/repos", q, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *gitHubClient) ListBranches(ctx context.Context, token, owner, repo string) ([]GitHubBranch, error) {
	var branches []GitHubBranch
	if err := c.get(ctx, token, repoPath(owner, repo, "branches"), url.Values{"per_page": {"100"}}, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

func (c *gitHubClient) ListPulls(ctx context.Context, token, owner, repo string) ([]GitHubPull, error) {
	var pulls []GitHubPull
	q := url.Values{"state": {"all"}, "per_page": {"100"}}
	if err := c.get(ctx, token, repoPath(owner, repo, "pulls"), q, &pulls); err != nil {
		return nil, err
	}
	return pulls, nil
}

func (c *gitHubClient) ListIssues(ctx context.Context, token, owner, repo string) ([]GitHubIssue, error) {
	var issues []GitHubIssue
	q := url.Values{"state": {"all"}, "per_page": {"100"}}
	if err := c.get(ctx, token, repoPath(owner, repo, "issues"), q, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *gitHubClient) ListCommits(ctx context.Context, token, owner, repo string, limit int) ([]GitHubCommit, error) {
	var commits []GitHubCommit
	q := url.Values{"per_page": {fmt.Sprint(limit)}}
	if err := c.get(ctx, token, repoPath(owner, repo, "commits"), q, &commits); err != nil {
		return nil, err
	}
	if len(commits) > limit {
		commits = commits[:limit]
	}
	return commits, nil
}

func repoPath(owner, repo, resource string) string {
	return fmt.Sprintf("/repos/%s/%s/%s", url.PathEscape(owner), url.PathEscape(repo), resource)
}

func (c *gitHubClient) get(ctx context.Context, token, path string, query url.Values, out interface{}) error {
	endpoint := c.cfg.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	return c.do(req, out)
}

func (c *gitHubClient) do(req *http.Request, out interface{}) error {
	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(req.URL.String(), req.Method, statusCode, duration, err)
	}

	if err != nil {
		c.logger.Error("GitHub request failed",
			zap.Error(err),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", duration),
		)
		return fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr struct {
			Message string `json:"message"`
		}
		msg := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			msg = apiErr.Message
		}
		c.logger.Warn("GitHub returned error status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("message", msg),
		)
		return &GitHubAPIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}
