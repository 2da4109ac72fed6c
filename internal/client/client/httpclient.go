package client

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

	"github.com/dmitrijs2005/mypage/internal/common"
	"github.com/dmitrijs2005/mypage/internal/logging"
	"github.com/google/uuid"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// TokenSource returns the Authorization header value for the current
// session, or "" when signed out.
type TokenSource func() string

// HTTPClient talks to the mypage REST API. Every endpoint method goes
// through do, so callers only ever see decoded values or a
// *ClassifiedError.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	log        logging.Logger
	requestID  func() string
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying transport client. Its Timeout is
// the only request timeout in effect.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not absolute", baseURL)
	}

	c := &HTTPClient{
		baseURL:    u,
		httpClient: http.DefaultClient,
		log:        logging.Nop(),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "api_client")
	return c, nil
}

// endpoint joins the base URL with path, which is already escaped (id
// segments go through url.PathEscape).
func (c *HTTPClient) endpoint(path string, query url.Values) (string, error) {
	u := *c.baseURL
	raw := c.baseURL.EscapedPath() + path
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("build path %q: %w", path, err)
	}
	u.Path = decoded
	u.RawPath = raw
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// do performs one call. in is encoded as JSON when non-nil; out is decoded
// from a 2xx body when non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return unexpected(fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(b)
	}

	target, err := c.endpoint(path, query)
	if err != nil {
		return unexpected(err)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return unexpected(fmt.Errorf("new request: %w", err))
	}

	requestID := c.requestID()
	req.Header.Set(common.AcceptHeaderName, common.JSONContentType)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if in != nil {
		req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	}
	if c.tokens != nil {
		if auth := c.tokens(); auth != "" {
			req.Header.Set(common.AuthorizationHeaderName, auth)
		}
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		ce := Classify(err, nil)
		log.Warn(ctx, "request failed", "kind", ce.Kind, "error", err)
		return ce
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		ce := Classify(fmt.Errorf("read body: %w", err), nil)
		log.Warn(ctx, "reading response failed", "status", resp.StatusCode, "kind", ce.Kind, "error", err)
		return ce
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ce := Classify(
			fmt.Errorf("%s %s: %s", method, path, resp.Status),
			&Response{Status: resp.StatusCode, Body: parseErrorBody(raw)},
		)
		log.Warn(ctx, "request rejected", "status", resp.StatusCode, "kind", ce.Kind, "code", ce.Code)
		return ce
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Warn(ctx, "decoding response failed", "error", err)
		return unexpected(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func parseErrorBody(raw []byte) *ErrorBody {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var b ErrorBody
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil
	}
	return &b
}

// unexpected marks local failures (encoding, request building, decoding)
// that must not be mistaken for transport errors.
func unexpected(err error) *ClassifiedError {
	return &ClassifiedError{Kind: KindUnexpected, Message: MessageUnexpected, Cause: err}
}
