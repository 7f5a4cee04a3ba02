// Package scraper is the entry point for fetching an Instagram profile and
// the image URLs of its recent posts.
//
// A Scraper validates the username and session cookie, builds the request
// headers, calls web_profile_info and then feed/user, and extracts one URL
// per image. Each call is logged with its own request_id.
//
// Usage:
//
//	s := scraper.New(cfg)
//
//	// Failures are logged and collapse to {Profile: nil, Images: []}
//	result := s.FetchProfileAndImages(ctx, "natgeo")
//
//	// Or surface the typed error
//	result, err := s.Fetch(ctx, "natgeo")
//	if errors.IsKind(err, errors.KindRateLimit) {
//	    // wait before trying again
//	}
//
// The cookie is read on every call from INSTAGRAM_COOKIE unless another
// auth.CookieSource is supplied with WithCookieSource.
package scraper
