package instagram

import (
	"encoding/json"
	"net/http"

	"igprofile/pkg/errors"
	"igprofile/pkg/logger"
)

const (
	rateLimitMessage       = "Rate limited by Instagram. Please wait before trying again."
	profileNotFoundMessage = "Profile not found. Please check the username."
	authenticationMessage  = "Authentication required. Please provide valid Instagram cookies."
	apiErrorMessage        = "An error occurred while accessing Instagram API"
)

// Classify logs a failed request and maps it to a typed error by HTTP status.
// Failures without an HTTP response are only logged and yield nil.
func Classify(err error, log logger.Logger) error {
	if err == nil {
		return nil
	}
	if log == nil {
		log = logger.GetLogger()
	}

	log.WithError(err).Error("Error")

	resp, ok := errors.AsResponseError(err)
	if !ok {
		log.Error("Network error or invalid request")
		return nil
	}

	fields := map[string]interface{}{
		"status":  resp.Status,
		"headers": headersJSON(resp.Header),
	}
	if len(resp.Body) > 0 {
		fields["response_data"] = responseDataJSON(resp.Body)
	}
	log.ErrorWithFields("Instagram API request failed", fields)

	switch resp.Status {
	case http.StatusTooManyRequests:
		return errors.New(errors.KindRateLimit, rateLimitMessage, resp.Status, resp)
	case http.StatusNotFound:
		return errors.New(errors.KindProfileNotFound, profileNotFoundMessage, resp.Status, resp)
	case http.StatusUnauthorized:
		return errors.New(errors.KindAuthentication, authenticationMessage, resp.Status, resp)
	default:
		return errors.New(errors.KindAPI, apiErrorMessage, resp.Status, resp)
	}
}

func headersJSON(header http.Header) []byte {
	data, err := json.Marshal(header)
	if err != nil || header == nil {
		return []byte("{}")
	}
	return data
}

// responseDataJSON keeps JSON bodies as is and quotes anything else
func responseDataJSON(body []byte) []byte {
	if json.Valid(body) {
		return body
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
