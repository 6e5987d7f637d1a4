// Package gateway is the single outbound HTTP client behind every resource
// client. It attaches the bearer token, serializes query parameters, decodes
// response bodies and centralizes error interpretation. Its only unilateral
// action is the 401 handling: clear the session and fire the logout hook.
// No retries, no caching.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/romeroalan26/posfacturard-console/internal/apierror"
	"github.com/romeroalan26/posfacturard-console/internal/session"
)

// Params are query-string parameters. Keys with empty values are omitted
// from the request, matching what the API expects for unset filters.
type Params map[string]string

// SetInt stores v under key when v > 0.
func (p Params) SetInt(key string, v int) {
	if v > 0 {
		p[key] = fmt.Sprintf("%d", v)
	}
}

// Set stores v under key when v is non-empty.
func (p Params) Set(key, v string) {
	if v != "" {
		p[key] = v
	}
}

// Client is the API gateway. Safe for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	store          session.Store
	breaker        *breaker
	onUnauthorized func()
}

// Options tunes the gateway. Zero values fall back to defaults.
type Options struct {
	Timeout          time.Duration // per-request transport timeout
	FailureThreshold int           // consecutive transport failures before fast-failing
	OpenTimeout      time.Duration // fast-fail window before probing the API again
	// OnUnauthorized is invoked (after the session is cleared) whenever the
	// server answers 401 — the console's analog of the hard redirect to
	// /login. It may be nil.
	OnUnauthorized func()
}

// New builds a gateway against baseURL.
func New(baseURL string, store session.Store, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: opts.Timeout},
		store:          store,
		breaker:        newBreaker(opts.FailureThreshold, opts.OpenTimeout),
		onUnauthorized: opts.OnUnauthorized,
	}
}

// Get performs a GET and decodes the JSON body into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, params Params, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete performs a DELETE; out may be nil.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, params Params, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: serializar cuerpo de %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, params, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decodificar respuesta de %s %s: %w", method, path, err)
	}
	return nil
}

// Upload sends a single file as multipart/form-data under field, plus any
// extra form values, and decodes the JSON response into out.
func (c *Client) Upload(ctx context.Context, path, field, filename string, r io.Reader, extra map[string]string, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("gateway: preparar multipart: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("gateway: copiar archivo %s: %w", filename, err)
	}
	for k, v := range extra {
		_ = mw.WriteField(k, v)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("gateway: cerrar multipart: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Download streams a binary body (server-generated CSV/PDF exports) into
// dest, creating parent directories as needed. Returns bytes written.
func (c *Client) Download(ctx context.Context, path string, params Params, dest string) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.roundTrip(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return 0, fmt.Errorf("gateway: crear directorio de exportacion: %w", err)
	}
	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("gateway: crear %s: %w", dest, err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return n, fmt.Errorf("gateway: escribir %s: %w", dest, err)
	}
	return n, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, params Params, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			if v != "" {
				q.Set(k, v)
			}
		}
		if enc := q.Encode(); enc != "" {
			u += "?" + enc
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: crear peticion %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if s, ok := c.store.Current(); ok {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	return req, nil
}

// roundTrip executes the request under the breaker's watch. Only
// transport-level failures count against it; any response the server managed
// to produce — including 4xx/5xx — keeps the breaker closed and is
// interpreted by checkStatus.
func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	err := c.breaker.allow()
	var resp *http.Response
	if err == nil {
		resp, err = c.httpClient.Do(req)
		c.breaker.record(err)
	}
	if err != nil {
		log.Debug().Str("method", req.Method).Str("path", req.URL.Path).
			Dur("latency", time.Since(start)).Err(err).Msg("api request failed")
		return nil, &apierror.TransportError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	log.Debug().Str("method", req.Method).Str("path", req.URL.Path).
		Str("request_id", req.Header.Get("X-Request-ID")).
		Int("status", resp.StatusCode).Dur("latency", time.Since(start)).
		Msg("api request")
	return resp, nil
}

// checkStatus interprets non-2xx responses. 401 is the gateway's one
// unilateral action: clear the persisted session and fire the logout hook.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.store.Clear(); err != nil {
			log.Warn().Err(err).Msg("no se pudo limpiar la sesion tras 401")
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apierror.ErrUnauthenticated
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	// {detail, fields} → validation; {detail} → plain API error
	var ve apierror.ValidationError
	if err := json.Unmarshal(body, &ve); err == nil && len(ve.Fields) > 0 {
		return &ve
	}
	var ae apierror.APIError
	if err := json.Unmarshal(body, &ae); err == nil && ae.Detail != "" {
		ae.StatusCode = resp.StatusCode
		return &ae
	}

	if resp.StatusCode >= 500 {
		return &apierror.TransportError{
			Op:  resp.Request.Method + " " + resp.Request.URL.Path,
			Err: fmt.Errorf("el servidor respondio %d", resp.StatusCode),
		}
	}
	return apierror.New(resp.StatusCode, http.StatusText(resp.StatusCode))
}
