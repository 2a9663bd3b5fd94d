package upbank

import "fmt"

// FetchError reports a failed request against the bank API. Non-2xx
// responses and transport failures (DNS, connection refused, timeouts) are
// both surfaced this way; transport failures carry StatusCode 0. A fetch
// that fails aborts with no partial result and is never retried here.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("upbank: request failed: %s", e.Body)
	}
	return fmt.Sprintf("upbank: request failed with status %d: %s", e.StatusCode, e.Body)
}
