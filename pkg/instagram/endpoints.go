package instagram

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// profileInfoQuery is the query string of the web_profile_info endpoint
type profileInfoQuery struct {
	Username string `url:"username"`
}

// ProfileInfoURL constructs the URL for fetching a user's profile
func ProfileInfoURL(base, username string) (string, error) {
	params, err := query.Values(profileInfoQuery{Username: username})
	if err != nil {
		return "", fmt.Errorf("failed to encode profile query: %w", err)
	}
	return base + "?" + params.Encode(), nil
}

// FeedURL constructs the URL for fetching a user's feed
func FeedURL(base, userID string) string {
	return base + url.PathEscape(userID) + "/"
}

// ProfilePageURL constructs the public profile URL for a user
func ProfilePageURL(siteURL, username string) string {
	return siteURL + "/" + username + "/"
}

// SanitizeUsername strips a leading @ and trailing slashes or spaces, as pasted from a browser
func SanitizeUsername(username string) string {
	username = strings.TrimPrefix(username, "@")
	return strings.TrimRight(username, "/ ")
}
