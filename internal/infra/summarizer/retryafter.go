package summarizer

import (
	"net/http"
	"regexp"
	"strconv"
	"time"
)

// retryDelayPattern matches delay hints embedded in error details, e.g.
// "retry after 17s", "retry_delay: 17.5s", "Please retry in 30 s".
var retryDelayPattern = regexp.MustCompile(`(?i)retry[ _-]?(?:after|delay|in)?[^0-9]{0,16}(\d+(?:\.\d+)?)\s*s`)

// retryAfterHint extracts a server-suggested wait from an HTTP response and
// error detail. It tries the Retry-After header first, then a delay pattern
// in the detail text. Zero means no hint was found.
func retryAfterHint(resp *http.Response, detail string) time.Duration {
	if resp != nil {
		if header := resp.Header.Get("Retry-After"); header != "" {
			if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
				return time.Duration(seconds) * time.Second
			}
		}
	}

	if m := retryDelayPattern.FindStringSubmatch(detail); m != nil {
		if seconds, err := strconv.ParseFloat(m[1], 64); err == nil && seconds > 0 {
			return time.Duration(seconds * float64(time.Second))
		}
	}

	return 0
}
