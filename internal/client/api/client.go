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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/dmitrijs2005/customerconnect/internal/client/models"
	"github.com/dmitrijs2005/customerconnect/internal/common"
	"github.com/dmitrijs2005/customerconnect/internal/logging"
)

const maxBodySize = 4 << 20

// SessionSource is what the client needs from the session owner: the
// current bearer token, and a way to force a local logout after a 401.
type SessionSource interface {
	BearerToken() string
	Expire(ctx context.Context)
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.Cache
	logger  logging.Logger

	mu      sync.RWMutex
	session SessionSource
}

// New builds a client for baseURL (e.g. http://localhost:5000/api). timeout
// bounds every request; cacheTTL <= 0 disables the query cache.
func New(baseURL string, timeout, cacheTTL time.Duration, logger logging.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("component", "api"),
	}
	if cacheTTL > 0 {
		c.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return c
}

// UseSession binds the session whose token is attached to authenticated
// requests and which is expired on 401.
func (c *Client) UseSession(s SessionSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

func (c *Client) currentSession() SessionSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// InvalidateCache drops every cached GET response.
func (c *Client) InvalidateCache() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	public bool
}

func (r request) target() string {
	if len(r.query) == 0 {
		return r.path
	}
	return r.path + "?" + r.query.Encode()
}

func (r request) cacheable() bool {
	return r.method == http.MethodGet && !r.public
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	target := r.target()

	session := c.currentSession()
	var token string
	if !r.public && session != nil {
		token = session.BearerToken()
	}

	// Cache entries are scoped to the bearer token they were fetched with.
	key := token + " " + target
	if r.cacheable() && c.cache != nil {
		if raw, ok := c.cache.Get(key); ok {
			c.logger.Debug(ctx, "query cache hit", "path", target)
			return decode(raw.([]byte), out)
		}
	}

	var reader io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", r.method, "path", r.path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "request done",
		"method", r.method, "path", r.path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(started))

	if resp.StatusCode == http.StatusUnauthorized && !r.public {
		c.InvalidateCache()
		// Expire only the session whose token was rejected.
		if session != nil {
			if session.BearerToken() == token {
				session.Expire(ctx)
			} else {
				c.logger.Info(ctx, "401 for a replaced token", "path", r.path, "request_id", requestID)
			}
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	if r.method != http.MethodGet {
		c.InvalidateCache()
	}

	if err := decode(body, out); err != nil {
		return err
	}

	if r.cacheable() && c.cache != nil {
		c.cache.SetDefault(key, body)
	}
	return nil
}

func decode(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func errorMessage(body []byte) string {
	var eb models.ErrorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	return eb.Message
}
