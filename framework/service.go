package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	pollInterval          = time.Millisecond * 100
	minPollRequestTimeout = time.Millisecond * 10
)

// AwaitService polls the service's base URL until it gets any HTTP response, or until the timeout
// elapses. Each request is limited to the time that is left before the deadline. The status code
// does not matter: the PetFriends root may answer with a web page or an error, and either way the
// service is up. This is only a startup check for the test run; the API operations themselves are
// never retried.
func AwaitService(url string, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to service at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		remaining := time.Until(deadline)
		if remaining < minPollRequestTimeout {
			remaining = minPollRequestTimeout
		}
		httpClient := &http.Client{Timeout: remaining}
		resp, err := httpClient.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			fmt.Fprintln(output)
			fmt.Fprintf(output, "Service responded with status %d\n", resp.StatusCode)
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(pollInterval)
	}
}
