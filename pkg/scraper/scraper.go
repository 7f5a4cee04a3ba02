package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"igprofile/pkg/auth"
	"igprofile/pkg/config"
	"igprofile/pkg/errors"
	"igprofile/pkg/instagram"
	"igprofile/pkg/logger"
)

// Result is a fetched profile with the image URLs of its recent posts.
// On failure both the sentinel methods return Profile nil and an empty Images slice.
type Result struct {
	Profile *instagram.Profile `json:"profile"`
	Images  []string           `json:"images"`
}

func emptyResult() Result {
	return Result{Profile: nil, Images: []string{}}
}

// Scraper validates input, calls the Instagram API and classifies failures
type Scraper struct {
	client     InstagramClient
	httpClient *http.Client
	cookies    auth.CookieSource
	config     *config.Config
	logger     logger.Logger
}

// Option configures a Scraper
type Option func(*Scraper)

// WithCookieSource sets where the session cookie is read from on each fetch
func WithCookieSource(source auth.CookieSource) Option {
	return func(s *Scraper) {
		s.cookies = source
	}
}

// WithLogger sets the logger
func WithLogger(log logger.Logger) Option {
	return func(s *Scraper) {
		s.logger = log
	}
}

// WithHTTPClient sets the HTTP client used by the default Instagram client
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Scraper) {
		s.httpClient = hc
	}
}

// WithClient replaces the Instagram client entirely
func WithClient(client InstagramClient) Option {
	return func(s *Scraper) {
		s.client = client
	}
}

// New creates a Scraper. By default the cookie is read from INSTAGRAM_COOKIE.
func New(cfg *config.Config, opts ...Option) *Scraper {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := &Scraper{
		cookies: auth.NewEnvironmentStore(),
		config:  cfg,
		logger:  logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		var clientOpts []instagram.Option
		if s.httpClient != nil {
			clientOpts = append(clientOpts, instagram.WithHTTPClient(s.httpClient))
		}
		if cfg.Fetch.Timeout > 0 {
			clientOpts = append(clientOpts, instagram.WithTimeout(cfg.Fetch.Timeout))
		}
		s.client = instagram.NewClient(&cfg.Instagram, s.logger, clientOpts...)
	}

	return s
}

// FetchProfileAndImages returns the profile and recent image URLs of username.
// Every failure is logged and yields the empty result.
func (s *Scraper) FetchProfileAndImages(ctx context.Context, username string) Result {
	result, err := s.Fetch(ctx, username)
	if err != nil {
		return emptyResult()
	}
	return result
}

// FetchImages returns only the recent image URLs of username, or an empty slice on failure
func (s *Scraper) FetchImages(ctx context.Context, username string) []string {
	result, err := s.fetch(ctx, username, false)
	if err != nil {
		return []string{}
	}
	return result.Images
}

// Fetch is FetchProfileAndImages with the failure surfaced.
// The returned error is an *errors.Error whose Kind tells validation, network,
// shape and the HTTP status kinds apart.
func (s *Scraper) Fetch(ctx context.Context, username string) (Result, error) {
	return s.fetch(ctx, username, true)
}

func (s *Scraper) fetch(ctx context.Context, username string, withProfile bool) (Result, error) {
	log := s.logger.WithFields(map[string]interface{}{
		"request_id": uuid.NewString(),
		"username":   username,
	})

	result, err := s.run(ctx, log, username, withProfile)
	if err != nil {
		return emptyResult(), classify(err, log)
	}

	log.InfoWithFields("Fetch completed", map[string]interface{}{
		"images": len(result.Images),
	})
	return result, nil
}

func (s *Scraper) run(ctx context.Context, log logger.Logger, username string, withProfile bool) (Result, error) {
	if err := instagram.ValidateUsername(username); err != nil {
		return Result{}, err
	}

	cookie, err := s.cookies.Cookie()
	if err != nil {
		return Result{}, &errors.Error{
			Kind:    errors.KindValidation,
			Message: fmt.Sprintf("failed to read cookie: %v", err),
			Err:     err,
		}
	}
	if err := instagram.ValidateCookie(cookie); err != nil {
		return Result{}, err
	}

	headers := instagram.BuildHeaders(s.config.Instagram, username, cookie)

	var profile *instagram.Profile
	var userID string
	if withProfile {
		profile, err = s.client.FetchUserInfo(ctx, username, headers)
		if err != nil {
			return Result{}, err
		}
		userID = profile.ID
	} else {
		userID, err = s.client.FetchUserID(ctx, username, headers)
		if err != nil {
			return Result{}, err
		}
	}

	log.DebugWithFields("fetching feed", map[string]interface{}{"user_id": userID})

	images, err := s.client.FetchUserPosts(ctx, userID, headers, s.config.Fetch.PostCount)
	if err != nil {
		return Result{}, err
	}

	return Result{Profile: profile, Images: images}, nil
}

// classify logs err once and returns the typed error to surface
func classify(err error, log logger.Logger) error {
	if classified := instagram.Classify(err, log); classified != nil {
		return classified
	}
	if errors.KindOf(err) != "" {
		return err
	}
	return errors.NewNetwork(err)
}
