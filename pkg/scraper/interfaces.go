package scraper

import (
	"context"

	"igprofile/pkg/instagram"
)

// InstagramClient defines the Instagram API operations the Scraper needs
type InstagramClient interface {
	FetchUserID(ctx context.Context, username string, headers instagram.Headers) (string, error)
	FetchUserInfo(ctx context.Context, username string, headers instagram.Headers) (*instagram.Profile, error)
	FetchUserPosts(ctx context.Context, userID string, headers instagram.Headers, postCount int) ([]string, error)
}
