package moltbook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL    = "https://www.moltbook.com/api/v1"
	defaultUserAgent  = "molt/digest"
	defaultPageSize   = 50
	defaultMaxPages   = 20
	defaultRetries    = 3
	defaultRetryDelay = 2 * time.Second
)

// Client provides read access to the Moltbook posts API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	pageSize   int
	maxPages   int
	retries    int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithPageSize caps how many posts are requested per page. The API accepts
// at most 50.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithMaxPages bounds how many pages a single FetchPosts call may request.
func WithMaxPages(n int) Option {
	return func(c *Client) {
		c.maxPages = n
	}
}

// WithRetries sets how many times a failing page request is attempted.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retries = n
	}
}

// WithRetryDelay sets the pause between retry attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// NewClient creates a Moltbook API client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		userAgent:  defaultUserAgent,
		pageSize:   defaultPageSize,
		maxPages:   defaultMaxPages,
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pageSize < 1 {
		c.pageSize = defaultPageSize
	}
	if c.maxPages < 1 {
		c.maxPages = 1
	}
	if c.retries < 1 {
		c.retries = 1
	}
	return c
}

type postsPage struct {
	Posts      []Post `json:"posts"`
	HasMore    bool   `json:"has_more"`
	NextOffset *int   `json:"next_offset"`
}

// FetchPosts retrieves up to want posts for the given sort order ("hot" or
// "new"), following the server's next_offset cursor. Fetching stops early
// when the server reports no more results, when the cursor is absent or
// stops advancing, or when the page bound is reached.
func (c *Client) FetchPosts(ctx context.Context, sort string, want int) ([]Post, error) {
	var posts []Post
	offset := 0
	for page := 0; page < c.maxPages && len(posts) < want; page++ {
		limit := c.pageSize
		if rest := want - len(posts); rest < limit {
			limit = rest
		}

		pg, err := c.fetchPage(ctx, sort, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("fetch %s posts at offset %d: %w", sort, offset, err)
		}
		posts = append(posts, pg.Posts...)

		if !pg.HasMore {
			break
		}
		if pg.NextOffset == nil || *pg.NextOffset == offset {
			break
		}
		offset = *pg.NextOffset
	}
	return posts, nil
}

// fetchPage requests a single page, retrying transient failures.
func (c *Client) fetchPage(ctx context.Context, sort string, limit, offset int) (*postsPage, error) {
	url := fmt.Sprintf("%s/posts?sort=%s&limit=%d&offset=%d", c.baseURL, sort, limit, offset)

	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		pg, err := c.getPage(ctx, url)
		if err == nil {
			return pg, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) getPage(ctx context.Context, url string) (*postsPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var page postsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &page, nil
}
