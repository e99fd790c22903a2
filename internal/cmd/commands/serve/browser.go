package serve

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/browser"
)

// openBrowser opens the specified URL in the user's default browser.
func openBrowser(url string) error {
	return browser.OpenURL(url)
}

// waitForServer polls the health endpoint until the server is ready or
// timeout elapses.
func waitForServer(ctx context.Context, url string, timeout time.Duration) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = timeout

	healthURL := url + "/api/health"
	client := &http.Client{Timeout: time.Second}

	err := backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("health check returned status %d", resp.StatusCode)
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return fmt.Errorf("timeout waiting for server to start: %w", err)
	}

	return nil
}
