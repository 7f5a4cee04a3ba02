// Package instagram provides a client for Instagram's private web API.
//
// This package includes:
//   - BuildHeaders, deriving request headers from a username and session cookie
//   - ValidateUsername and ValidateCookie for fail-fast input checks
//   - A Client for the web_profile_info and feed/user endpoints
//   - ExtractImageURLs for single-image and carousel feed items
//   - Classify, mapping failed requests to typed errors by HTTP status
//
// Example usage:
//
//	settings := config.DefaultInstagramConfig()
//	headers := instagram.BuildHeaders(settings, "natgeo", cookie)
//	client := instagram.NewClient(&settings, log)
//
//	userID, err := client.FetchUserID(ctx, "natgeo", headers)
//	if err != nil {
//	    if classified := instagram.Classify(err, log); classified != nil {
//	        switch errors.KindOf(classified) {
//	        case errors.KindRateLimit:
//	            // back off
//	        case errors.KindAuthentication:
//	            // refresh the cookie
//	        }
//	    }
//	}
//	images, err := client.FetchUserPosts(ctx, userID, headers, 12)
package instagram
