// Package api is the REST client for the storefront backend. Response
// decoding tolerates additive fields; the wire contract is owned by the
// backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"vitrine/internal/domain"
)

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Body)
}

type Client struct {
	base string
	http *http.Client
}

// New returns a client for the backend at base (no trailing slash needed).
func New(base string) *Client {
	return &Client{base: base, http: &http.Client{Timeout: 15 * time.Second}}
}

// NewWithHTTPClient allows injecting the transport, mainly for tests.
func NewWithHTTPClient(base string, hc *http.Client) *Client {
	return &Client{base: base, http: hc}
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(b) > 200 {
			b = b[:200]
		}
		return &StatusError{Code: resp.StatusCode, Body: string(b)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// ---------- Visit sessions ----------

func (c *Client) StartSession(ctx context.Context, s domain.VisitSession) error {
	return c.post(ctx, "/api/sessions/start", s, nil)
}

func (c *Client) Heartbeat(ctx context.Context, sessionID, pageURL string) error {
	in := map[string]string{"session_id": sessionID, "page_url": pageURL}
	return c.post(ctx, "/api/sessions/heartbeat", in, nil)
}

func (c *Client) EndSession(ctx context.Context, sessionID string) error {
	in := map[string]string{"session_id": sessionID}
	return c.post(ctx, "/api/sessions/end", in, nil)
}

// ---------- Admin ----------

// VerifyPassword returns nil on a 2xx verification; any other outcome is
// an error and the caller stays unauthenticated.
func (c *Client) VerifyPassword(ctx context.Context, password string) error {
	in := map[string]string{"password": password}
	return c.post(ctx, "/api/admin/verify-password", in, nil)
}

// ---------- Orders ----------

func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.Order, error) {
	var o domain.Order
	err := c.post(ctx, "/api/orders", draft, &o)
	return o, err
}

func (c *Client) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := c.get(ctx, "/api/orders/"+id, &o)
	return o, err
}
