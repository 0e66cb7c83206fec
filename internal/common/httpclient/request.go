package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/chupacabra/chupacabra/internal/common/apperrors"
	"github.com/chupacabra/chupacabra/internal/common/logtrace"
)

// Request describes one call.
type Request struct {
	Method string            // GET, POST, PUT or DELETE; empty means GET
	Path   string            // relative to the base URL
	Query  map[string]string // appended as the query string when non-empty
	Body   any               // JSON-encoded for non-GET methods when non-nil
	Header map[string]string // applied last; an empty value removes the header
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

func supportedMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// buildURL joins path and query to the base URL.
func (c *Client) buildURL(r Request) (string, error) {
	ref, err := url.Parse(r.Path)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", r.Path, err)
	}
	if ref.Scheme != "" || ref.Host != "" {
		return "", fmt.Errorf("endpoint %q must be a relative path", r.Path)
	}

	u := c.baseURL.JoinPath(ref.EscapedPath())
	q := ref.Query()
	for k, v := range r.Query {
		q.Set(k, v)
	}
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// newRequest performs steps 1 to 3 of a call: URL, headers, body.
// Errors are already classified.
func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.method()
	if !supportedMethod(method) {
		return nil, apperrors.Unknown(fmt.Errorf("unsupported method %q", method))
	}

	target, err := c.buildURL(r)
	if err != nil {
		return nil, apperrors.Network(err)
	}

	var body io.Reader
	if r.Body != nil && method != http.MethodGet {
		data, err := jsonAPI.Marshal(r.Body)
		if err != nil {
			return nil, apperrors.Network(fmt.Errorf("encoding request body: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apperrors.Network(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if id := logtrace.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(logtrace.RequestIDHeader, id)
	}
	if token, ok := c.store.Read(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range r.Header {
		if v == "" {
			req.Header.Del(k)
			continue
		}
		req.Header.Set(k, v)
	}
	return req, nil
}

func requestID(ctx context.Context) string {
	return logtrace.RequestIDFromContext(ctx)
}
