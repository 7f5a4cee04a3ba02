package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"igprofile/pkg/config"
	"igprofile/pkg/errors"
	"igprofile/pkg/logger"
)

const (
	userInfoFailure = "Failed to fetch user information"
	userFeedFailure = "Failed to fetch user feed"
)

// Client performs the two Instagram private API calls
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	settings   config.InstagramConfig
	logger     logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds each request; zero keeps the HTTP client's own timeout.
// The HTTP client passed with WithHTTPClient is copied, never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a new Instagram API client
func NewClient(cfg *config.InstagramConfig, log logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	c := &Client{
		httpClient: &http.Client{},
		settings:   *cfg,
		logger:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// FetchUserID resolves a username to its numeric user id
func (c *Client) FetchUserID(ctx context.Context, username string, headers Headers) (string, error) {
	u, err := c.fetchUser(ctx, username, headers)
	if err != nil {
		return "", err
	}

	userID := u.Get("id").String()
	c.logger.InfoWithFields("Found user ID", map[string]interface{}{
		"username": username,
		"user_id":  userID,
	})
	return userID, nil
}

// FetchUserInfo fetches and normalizes a user's public profile
func (c *Client) FetchUserInfo(ctx context.Context, username string, headers Headers) (*Profile, error) {
	u, err := c.fetchUser(ctx, username, headers)
	if err != nil {
		return nil, err
	}

	var raw user
	if !u.IsObject() {
		return nil, errors.NewShape(userInfoFailure)
	}
	if err := json.Unmarshal([]byte(u.Raw), &raw); err != nil {
		c.logger.WarnWithFields("unexpected user payload", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		return nil, errors.NewShape(userInfoFailure)
	}

	return raw.toProfile(u.Get("id").String()), nil
}

// FetchUserPosts fetches a user's feed and returns the image URLs of the first postCount items.
// A postCount of zero or less uses the default.
func (c *Client) FetchUserPosts(ctx context.Context, userID string, headers Headers, postCount int) ([]string, error) {
	if postCount <= 0 {
		postCount = config.DefaultPostCount
	}

	body, err := c.getJSON(ctx, "Fetching user feed", FeedURL(c.settings.FeedURL, userID), headers)
	if err != nil {
		return nil, err
	}

	items := gjson.GetBytes(body, "items")
	if !gjson.ValidBytes(body) || !items.IsArray() {
		return nil, errors.NewShape(userFeedFailure)
	}

	posts := items.Array()
	if len(posts) > postCount {
		posts = posts[:postCount]
	}

	imageURLs := []string{}
	for _, post := range posts {
		imageURLs = append(imageURLs, extractImageURLs(post)...)
	}

	c.logger.DebugWithFields("extracted image URLs", map[string]interface{}{
		"user_id": userID,
		"posts":   len(posts),
		"images":  len(imageURLs),
	})
	return imageURLs, nil
}

// fetchUser requests web_profile_info and returns data.user
func (c *Client) fetchUser(ctx context.Context, username string, headers Headers) (gjson.Result, error) {
	profileURL, err := ProfileInfoURL(c.settings.ProfileInfoURL, username)
	if err != nil {
		return gjson.Result{}, err
	}

	body, err := c.getJSON(ctx, "Fetching user info", profileURL, headers)
	if err != nil {
		return gjson.Result{}, err
	}

	u := gjson.GetBytes(body, "data.user")
	if !gjson.ValidBytes(body) || !u.Exists() || u.Type == gjson.Null {
		return gjson.Result{}, errors.NewShape(userInfoFailure)
	}
	return u, nil
}

// getJSON performs a GET with the given headers and returns the body of a 2xx response.
// Non-2xx responses become *errors.ResponseError; transport failures are returned as is.
func (c *Client) getJSON(ctx context.Context, msg, url string, headers Headers) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	headers.apply(req)

	c.logger.InfoWithFields(msg, map[string]interface{}{
		"method": req.Method,
		"url":    url,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.ResponseError{
			Status: resp.StatusCode,
			Header: resp.Header,
			Body:   body,
		}
	}
	return body, nil
}
