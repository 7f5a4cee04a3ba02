package instagram

import (
	"net/http"
	"regexp"

	"igprofile/pkg/config"
)

// Headers is the full header set sent with every Instagram API request
type Headers map[string]string

var csrfTokenPattern = regexp.MustCompile(`csrftoken=([^;]+)`)

// BuildHeaders derives the request headers for a username and raw cookie string.
// A cookie without a csrftoken yields an empty X-CSRFToken.
func BuildHeaders(settings config.InstagramConfig, username, cookie string) Headers {
	return Headers{
		"User-Agent":       settings.UserAgent,
		"Accept":           settings.Accept,
		"Accept-Language":  settings.AcceptLanguage,
		"X-IG-App-ID":      settings.AppID,
		"X-Requested-With": settings.RequestedWith,
		"X-CSRFToken":      CSRFToken(cookie),
		"Origin":           settings.SiteURL,
		"Referer":          ProfilePageURL(settings.SiteURL, username),
		"Cookie":           cookie,
	}
}

// CSRFToken returns the csrftoken value from a cookie string, or "" if absent
func CSRFToken(cookie string) string {
	match := csrfTokenPattern.FindStringSubmatch(cookie)
	if match == nil {
		return ""
	}
	return match[1]
}

// apply sets every header on req, replacing any existing values
func (h Headers) apply(req *http.Request) {
	for key, value := range h {
		req.Header.Set(key, value)
	}
}
