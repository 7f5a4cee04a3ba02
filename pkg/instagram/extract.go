package instagram

import "github.com/tidwall/gjson"

// ExtractImageURLs returns the image URLs of a single feed item.
// Carousel posts yield one URL per child in order; single posts yield at most one.
// Malformed or unexpected input yields an empty slice.
func ExtractImageURLs(post []byte) []string {
	if !gjson.ValidBytes(post) {
		return []string{}
	}
	return extractImageURLs(gjson.ParseBytes(post))
}

func extractImageURLs(post gjson.Result) []string {
	urls := []string{}

	carousel := post.Get("carousel_media")
	if carousel.Exists() && carousel.Type != gjson.Null {
		if !carousel.IsArray() {
			return urls
		}
		for _, media := range carousel.Array() {
			if url, ok := firstCandidateURL(media); ok {
				urls = append(urls, url)
			}
		}
		return urls
	}

	if url, ok := firstCandidateURL(post); ok {
		urls = append(urls, url)
	}
	return urls
}

// firstCandidateURL returns image_versions2.candidates[0].url when it is a string
func firstCandidateURL(media gjson.Result) (string, bool) {
	candidates := media.Get("image_versions2.candidates")
	if !candidates.IsArray() {
		return "", false
	}
	url := candidates.Get("0.url")
	if url.Type != gjson.String {
		return "", false
	}
	return url.Str, true
}
