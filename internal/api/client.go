package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Dheebz/spotify-cli-sub001/internal/errs"
)

// TokenProvider yields a valid bearer token, refreshing if necessary.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Client executes authorized requests against the Web API.
type Client struct {
	base      *url.URL
	http      *http.Client
	tokens    TokenProvider
	userAgent string
	log       *zap.Logger
}

const (
	// DefaultBaseURL is the public Web API base; override with
	// SPOTIFY_CLI_API_BASE or the config file.
	DefaultBaseURL = "https://api.spotify.com/v1"

	defaultUserAgent = "spotify-cli/0.1"
	requestTimeout   = 30 * time.Second

	// maxPageLimit is the server's per-page item cap.
	maxPageLimit = 50
)

// NewClient builds a Client for the given base URL. A trailing slash on the
// base is trimmed; an empty base uses the public default.
func NewClient(baseURL string, tokens TokenProvider, log *zap.Logger) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	trimmed = strings.TrimRight(trimmed, "/")
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", baseURL, err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:      base,
		http:      &http.Client{Timeout: requestTimeout},
		tokens:    tokens,
		userAgent: defaultUserAgent,
		log:       log,
	}, nil
}

// do executes method against base+path and returns the raw response body.
// A 204 yields an empty body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	reqURL := *c.base
	reqURL.Path = c.base.Path + path
	if query != nil {
		reqURL.RawQuery = query.Encode()
	}
	return c.doURL(ctx, method, reqURL.String(), body)
}

// doURL executes method against an absolute URL. Pagination follows
// server-provided next URLs through here verbatim.
func (c *Client) doURL(ctx context.Context, method, rawURL string, body any) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("api request", zap.String("method", method), zap.String("url", rawURL))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransport, fmt.Errorf("remote request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.KindTransport, fmt.Errorf("remote request failed: %w", err))
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, classify(&APIError{
		Method: method,
		Path:   requestPath(rawURL),
		Status: resp.StatusCode,
		Body:   strings.TrimSpace(string(raw)),
	})
}

func requestPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}

func decode(raw []byte, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return errs.Wrap(errs.KindDecodeFailure, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// page is the offset-paged list envelope used by every list endpoint.
type page[T any] struct {
	Items []T     `json:"items"`
	Next  *string `json:"next"`
}

// pageAll follows next URLs until absent, accumulating items in order.
func pageAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("limit") == "" {
		query.Set("limit", fmt.Sprint(maxPageLimit))
	}

	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	var all []T
	for {
		var p page[T]
		if err := decode(raw, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Items...)
		if p.Next == nil || *p.Next == "" {
			return all, nil
		}
		raw, err = c.doURL(ctx, http.MethodGet, *p.Next, nil)
		if err != nil {
			return nil, err
		}
	}
}
