package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/biteboxd/internal/client/models"
	"github.com/dmitrijs2005/biteboxd/internal/netx"
)

const (
	RequestIDHeaderName = "X-Request-ID"

	// error bodies larger than this are not inspected
	maxErrorBody = 64 << 10
)

// TokenSource returns the current bearer token, or "" when anonymous.
type TokenSource func() string

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client

	mu    sync.RWMutex
	token TokenSource

	newRequestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout bounds every request; zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.token = ts }
}

// NewHTTPClient builds a client for the API rooted at baseURL
// (e.g. "http://127.0.0.1:8000").
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	c := &HTTPClient{
		baseURL:      u,
		http:         &http.Client{},
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetTokenSource installs the token source after construction. The session
// store needs the client and the client needs the store's token, so one of
// them has to be wired late.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ts
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return ""
	}
	return c.token()
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register ignores the response body.
func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, nil)
}

func (c *HTTPClient) ListRecipes(ctx context.Context) (*models.RecipePage, error) {
	var out models.RecipePage
	if err := c.doJSON(ctx, http.MethodGet, "/recipes", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetRecipe(ctx context.Context, id int64) (*models.Recipe, error) {
	var out models.Recipe
	if err := c.doJSON(ctx, http.MethodGet, recipePath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateRecipe(ctx context.Context, p models.RecipePayload) (*models.Recipe, error) {
	var out models.Recipe
	if err := c.doJSON(ctx, http.MethodPost, "/recipes", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateRecipe(ctx context.Context, id int64, p models.RecipePayload) error {
	return c.doJSON(ctx, http.MethodPut, recipePath(id), nil, p, nil)
}

func (c *HTTPClient) DeleteRecipe(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, recipePath(id), nil, nil, nil)
}

func (c *HTTPClient) Feed(ctx context.Context, q models.FeedQuery) (*models.RecipePage, error) {
	var out models.RecipePage
	if err := c.doJSON(ctx, http.MethodGet, "/feed", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UploadPhoto(ctx context.Context, id int64, filename string, data []byte) (*models.PhotoResult, error) {
	body, contentType, err := netx.MultipartFile("file", filename, data)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, recipePath(id)+"/photo", nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var out models.PhotoResult
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func recipePath(id int64) string {
	return "/recipes/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeaderName, c.newRequestID())
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(req.Context(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) mapError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var ue *url.Error
	if errors.As(err, &ue) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("http error: %w", err)
}

// errorEnvelope covers {"error": {"message", "type"}} and {"detail": ...}.
// detail is a list for request validation failures, so it stays raw.
type errorEnvelope struct {
	Error *struct {
		Message json.RawMessage `json:"message"`
		Type    string          `json:"type"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(b) == 0 {
		return apiErr
	}

	var env errorEnvelope
	if json.Unmarshal(b, &env) != nil {
		return apiErr
	}
	if env.Error != nil {
		apiErr.Type = env.Error.Type
		apiErr.Message = rawString(env.Error.Message)
	}
	if apiErr.Message == "" {
		apiErr.Message = rawString(env.Detail)
	}
	return apiErr
}

// rawString returns raw decoded as a JSON string, or "" for anything else.
func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
