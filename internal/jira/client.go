// Package jira is a minimal REST client for the Jira Cloud and Data Center
// APIs, covering the endpoints the TUI needs.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	requestTimeout   = 30 * time.Second
	retryBaseDelay   = 500 * time.Millisecond
	maxRetryAttempts = 3
)

// ClientOptions configures a Client.
type ClientOptions struct {
	// BaseURL is the root of the Jira instance, without the /rest/api suffix.
	BaseURL string
	// Username and Token authenticate requests. With BearerAuth unset they
	// are sent as basic auth (Cloud: email + API token); with BearerAuth set
	// only Token is used, as a Data Center personal access token.
	Username   string
	Token      string
	BearerAuth bool
	// Cloud selects Cloud parameter conventions; false means Data Center.
	Cloud bool
	// APIVersion is the REST API version segment (3 for Cloud, 2 for DC).
	APIVersion int
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to a single Jira instance.
type Client struct {
	baseURL    *url.URL
	apiVersion int
	variant    Variant
	username   string
	token      string
	bearerAuth bool
	httpClient *http.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("jira: base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("jira: invalid base URL %q: %w", opts.BaseURL, err)
	}

	variant := VariantDataCenter
	if opts.Cloud {
		variant = VariantCloud
	}
	apiVersion := opts.APIVersion
	if apiVersion == 0 {
		if opts.Cloud {
			apiVersion = 3
		} else {
			apiVersion = 2
		}
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	return &Client{
		baseURL:    base,
		apiVersion: apiVersion,
		variant:    variant,
		username:   opts.Username,
		token:      opts.Token,
		bearerAuth: opts.BearerAuth,
		httpClient: httpClient,
	}, nil
}

// Variant reports which backend variant the client targets.
func (c *Client) Variant() Variant {
	return c.variant
}

// get performs a GET against /rest/api/{version}/{path} and decodes the JSON
// response into out. HTTP 429 responses are retried with exponential backoff.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") +
		fmt.Sprintf("/rest/api/%d/%s", c.apiVersion, path)
	endpoint.RawQuery = params.Encode()

	backoff := retry.WithMaxRetries(maxRetryAttempts, retry.NewExponential(retryBaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return fmt.Errorf("jira: building request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		c.authorize(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("jira: %s: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			return retry.RetryableError(&APIError{StatusCode: resp.StatusCode})
		}
		if resp.StatusCode >= 400 {
			apiErr := &APIError{StatusCode: resp.StatusCode}
			// The envelope is best-effort; some proxies return plain text.
			_ = json.NewDecoder(resp.Body).Decode(apiErr)
			return apiErr
		}
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("jira: decoding %s response: %w", path, err)
		}
		return nil
	})
}

func (c *Client) authorize(req *http.Request) {
	if c.bearerAuth {
		req.Header.Set("Authorization", "Bearer "+c.token)
		return
	}
	if c.username != "" || c.token != "" {
		req.SetBasicAuth(c.username, c.token)
	}
}
