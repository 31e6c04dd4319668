package utils

import (
	"net/http/cookiejar"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates and returns a new HTTPClient instance.
//
// The underlying resty.Client has its own cookie jar, so cookies set by
// the backend are sent back on later requests (credential-bearing
// transport), and retries are disabled.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, cookie jar and state.
func NewHTTPClient() *HTTPClient {
	client := resty.New().SetRetryCount(0)

	// cookiejar.New never fails with nil options.
	if jar, err := cookiejar.New(nil); err == nil {
		client.SetCookieJar(jar)
	}

	return &HTTPClient{Client: client}
}
