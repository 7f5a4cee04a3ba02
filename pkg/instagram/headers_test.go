package instagram

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"igprofile/pkg/config"
)

func TestBuildHeaders(t *testing.T) {
	settings := config.DefaultInstagramConfig()
	cookie := "csrftoken=abc123; sessionid=xyz"

	headers := BuildHeaders(settings, "alice", cookie)

	assert.Equal(t, "abc123", headers["X-CSRFToken"])
	assert.Equal(t, "https://www.instagram.com/alice/", headers["Referer"])
	assert.Equal(t, "https://www.instagram.com", headers["Origin"])
	assert.Equal(t, cookie, headers["Cookie"])
	assert.Equal(t, settings.UserAgent, headers["User-Agent"])
	assert.Equal(t, "*/*", headers["Accept"])
	assert.Equal(t, "en-US,en;q=0.9", headers["Accept-Language"])
	assert.Equal(t, "936619743392459", headers["X-IG-App-ID"])
	assert.Equal(t, "XMLHttpRequest", headers["X-Requested-With"])
	assert.Len(t, headers, 9)
}

func TestBuildHeadersUsesSettings(t *testing.T) {
	settings := config.DefaultInstagramConfig()
	settings.SiteURL = "http://localhost:8080"
	settings.UserAgent = "igprofile-test"

	headers := BuildHeaders(settings, "bob", "sessionid=1")

	assert.Equal(t, "http://localhost:8080/bob/", headers["Referer"])
	assert.Equal(t, "http://localhost:8080", headers["Origin"])
	assert.Equal(t, "igprofile-test", headers["User-Agent"])
}

func TestCSRFToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{"first pair", "csrftoken=abc123; sessionid=xyz", "abc123"},
		{"last pair", "sessionid=xyz789; ds_user_id=12345; csrftoken=tok", "tok"},
		{"missing", "sessionid=xyz789; ds_user_id=12345", ""},
		{"empty cookie", "", ""},
		{"empty value", "csrftoken=; sessionid=1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CSRFToken(tt.cookie))
			assert.Equal(t, tt.want, BuildHeaders(config.DefaultInstagramConfig(), "u", tt.cookie)["X-CSRFToken"])
		})
	}
}

func TestHeadersApply(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	assert.NoError(t, err)
	req.Header.Set("Accept", "text/html")

	Headers{"Accept": "*/*", "X-CSRFToken": "abc"}.apply(req)

	assert.Equal(t, "*/*", req.Header.Get("Accept"))
	assert.Equal(t, "abc", req.Header.Get("X-CSRFToken"))
}
