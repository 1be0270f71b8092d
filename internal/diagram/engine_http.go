package diagram

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// httpRequestTimeout bounds one request to the diagram server. The render
// gate applies the user-facing budget on top of this.
const httpRequestTimeout = 30 * time.Second

// HTTPEngine generates diagrams by POSTing wrapped source to a
// PlantUML-compatible HTTP server and reading the PNG response body.
// Transient transport failures are retried by the underlying client.
type HTTPEngine struct {
	serverURL string
	client    *retryablehttp.Client
}

// Compile-time interface check.
var _ Engine = (*HTTPEngine)(nil)

// NewHTTPEngine creates an HTTPEngine for the given server base URL.
func NewHTTPEngine(serverURL string) *HTTPEngine {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil // failures surface through the renderer, not the transport
	client.HTTPClient.Timeout = httpRequestTimeout

	return &HTTPEngine{
		serverURL: strings.TrimRight(serverURL, "/"),
		client:    client,
	}
}

// Generate POSTs the wrapped source to {server}/png. A non-200 status is an
// engine failure carrying the status and the first line of the body. The
// description comes from the Content-Description header when the server
// sets one.
func (e *HTTPEngine) Generate(wrapped string) ([]byte, string, error) {
	req, err := retryablehttp.NewRequest(http.MethodPost, e.serverURL+"/png", strings.NewReader(wrapped))
	if err != nil {
		return nil, "", fmt.Errorf("building engine request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("calling diagram server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading diagram server response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("diagram server returned %d: %s", resp.StatusCode, firstLine(string(body)))
	}

	desc := resp.Header.Get("Content-Description")
	if desc == "" {
		desc = fallbackDescription
	}
	return body, desc, nil
}
