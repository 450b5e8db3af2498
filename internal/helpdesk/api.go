package helpdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const (
	apiBaseUrl = "https://api.helpdesk.com/v1"

	// The vendor filters generic User-Agents as spam, so every request
	// carries this one.
	userAgent = "confops-helpdesk-toolkit"
)

type Creds struct {
	Account string `mapstructure:"account" json:"account"`
	Token   string `mapstructure:"token" json:"token"`
}

// Client is the authenticated HelpDesk API client. It owns the lazily
// populated team/agent/tag caches, persisted as JSON lookup files under
// cacheDir.
type Client struct {
	creds      Creds
	// BaseURL may be pointed at a mock vendor; defaults to the production API.
	BaseURL    string
	cacheDir   string
	httpClient *http.Client

	teams   Lookup
	agents  Lookup
	allTags []Tag
}

func NewClient(creds Creds, cacheDir string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		creds:      creds,
		BaseURL:    apiBaseUrl,
		cacheDir:   cacheDir,
		httpClient: httpClient,
	}
}

// APIError is returned for any vendor response outside the success range,
// carrying the status line and the error/details fields from the body.
type APIError struct {
	StatusCode int
	Reason     string
	Code       string
	Details    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s: %s, %s", e.StatusCode, e.Reason, e.Code, e.Details)
}

func (c *Client) ConnectionTest(ctx context.Context) error {
	var teams []Team
	if err := c.getJSON(ctx, c.BaseURL+"/teams", nil, &teams); err != nil {
		return fmt.Errorf("testing helpdesk connection: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.SetBasicAuth(c.creds.Account, c.creds.Token)
}

// get issues an authenticated GET and returns the body on HTTP 200. Any
// other status becomes an *APIError.
func (c *Client) get(ctx context.Context, rawUrl string, params url.Values) ([]byte, error) {
	if len(params) > 0 {
		rawUrl = rawUrl + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("creating the request: %w", err)
	}
	c.setHeaders(req)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending the request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading the response body: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, apiError(res, data)
	}

	return data, nil
}

func (c *Client) getJSON(ctx context.Context, rawUrl string, params url.Values, target interface{}) error {
	data, err := c.get(ctx, rawUrl, params)
	if err != nil {
		slog.Warn("helpdesk API error", "url", rawUrl, "error", err)
		return err
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("unmarshaling the response: %w", err)
	}

	return nil
}

// postJSON and doDelete share the read path's failure policy: any non-2xx
// status is surfaced as an *APIError instead of a bare status code.
func (c *Client) postJSON(ctx context.Context, rawUrl string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling the request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawUrl, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating the request: %w", err)
	}
	c.setHeaders(req)

	return c.doWrite(req)
}

func (c *Client) doDelete(ctx context.Context, rawUrl string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, rawUrl, nil)
	if err != nil {
		return fmt.Errorf("creating the request: %w", err)
	}
	c.setHeaders(req)

	return c.doWrite(req)
}

func (c *Client) doWrite(req *http.Request) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending the request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("reading the response body: %w", err)
	}

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		slog.Warn("helpdesk API request failed", "method", req.Method, "url", req.URL.String(), "statusCode", res.StatusCode)
		return apiError(res, data)
	}

	return nil
}

func apiError(res *http.Response, data []byte) *APIError {
	apiErr := &APIError{
		StatusCode: res.StatusCode,
		Reason:     http.StatusText(res.StatusCode),
	}

	var body struct {
		Code    string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Details = body.Details
	}

	return apiErr
}
