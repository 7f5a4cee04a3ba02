package instagram

import (
	"strings"
	"unicode/utf8"

	"igprofile/pkg/errors"
)

// MaxUsernameLength is Instagram's limit on username length
const MaxUsernameLength = 30

// requiredCookies must all appear in the cookie string, in reporting order
var requiredCookies = []string{"sessionid", "ds_user_id", "csrftoken"}

// ValidateUsername checks that a username is non-empty and at most 30 characters
func ValidateUsername(username string) error {
	if username == "" {
		return errors.NewValidation("username is required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return errors.NewValidation("username is too long")
	}
	return nil
}

// ValidateCookie checks that the cookie string carries every required session cookie.
// Only presence of the name is checked, values are not inspected.
func ValidateCookie(cookie string) error {
	if cookie == "" {
		return errors.NewValidation("cookie is required")
	}

	var missing []string
	for _, name := range requiredCookies {
		if !strings.Contains(cookie, name+"=") {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.NewValidation("missing required cookies: " + strings.Join(missing, ", "))
	}
	return nil
}
