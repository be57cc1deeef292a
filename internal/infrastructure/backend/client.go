// Package backend is the HTTP client for the EcoTrash REST API.
//
// Every request carries the bearer token of the current session, and every
// response is decoded and validated before it reaches the rest of the
// dashboard. Failures are returned as *domain.RemoteError.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/pkg/metrics"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 4 << 20

	HeaderRequestID = "X-Request-ID"
)

// TokenSource supplies the bearer token for outgoing requests.
type TokenSource interface {
	Token() string
}

// Config holds the client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the EcoTrash API.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	validate *validator.Validate
	log      zerolog.Logger
}

// New builds a Client. tokens may be nil for unauthenticated use.
func New(cfg Config, tokens TokenSource, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
		validate: validator.New(),
		log:      log,
	}
}

type requestIDKey struct{}

// WithRequestID makes outgoing calls made with ctx reuse id as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// intercept decorates every outgoing request with auth and tracing headers.
func (c *Client) intercept(ctx context.Context, req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID(ctx))
	if c.tokens == nil {
		return
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

// do performs one call. out may be nil, a *json.RawMessage, or a value to
// decode into and validate.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.intercept(ctx, req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		metrics.BackendRequestDuration.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		metrics.BackendErrorsTotal.WithLabelValues(string(domain.KindNetwork)).Inc()
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		return &domain.RemoteError{Kind: domain.KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	metrics.BackendRequestDuration.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		metrics.BackendErrorsTotal.WithLabelValues(string(domain.KindNetwork)).Inc()
		return &domain.RemoteError{Kind: domain.KindNetwork, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		re := decodeError(resp.StatusCode, data)
		metrics.BackendErrorsTotal.WithLabelValues(string(re.Kind)).Inc()
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("kind", string(re.Kind)).
			Msg("backend error")
		return re
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		if len(bytes.TrimSpace(data)) == 0 {
			*raw = json.RawMessage("null")
			return nil
		}
		if !json.Valid(data) {
			return c.malformed(path, "body is not JSON")
		}
		*raw = append((*raw)[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return c.malformed(path, err.Error())
	}
	if err := c.validate.Struct(out); err != nil {
		return c.malformed(path, err.Error())
	}
	return nil
}

func (c *Client) malformed(path, msg string) error {
	metrics.BackendErrorsTotal.WithLabelValues(string(domain.KindMalformed)).Inc()
	c.log.Error().Str("path", path).Str("reason", msg).Msg("malformed backend response")
	return &domain.RemoteError{Kind: domain.KindMalformed, Message: path + ": " + msg}
}

// Ping checks that the API base URL answers at all. Any HTTP status counts
// as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RemoteError{Kind: domain.KindNetwork, Err: err}
	}
	_ = resp.Body.Close()
	return nil
}
