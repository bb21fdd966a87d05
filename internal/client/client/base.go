package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindcare/internal/client/models"
	"github.com/dmitrijs2005/mindcare/internal/client/session"
	"github.com/dmitrijs2005/mindcare/internal/common"
	"github.com/dmitrijs2005/mindcare/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const DefaultTimeout = 30 * time.Second

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	refreshPath  = "/auth/refresh"
)

// publicPaths never carry a bearer token and never trigger a refresh.
var publicPaths = map[string]struct{}{
	loginPath:    {},
	registerPath: {},
	refreshPath:  {},
}

func isPublicPath(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	_, ok := publicPaths[path]
	return ok
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// BaseClient is safe for concurrent use.
type BaseClient struct {
	baseURL string
	http    *http.Client
	headers http.Header
	session *session.Store
	logger  logging.Logger

	refreshGroup singleflight.Group

	mu          sync.Mutex
	logoutHooks []func(cause error)
}

type Option func(*BaseClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *BaseClient) { c.http = hc }
}

// WithTimeout sets the request timeout. A client passed with WithHTTPClient
// is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *BaseClient) {
		if d > 0 {
			hc := *c.http
			hc.Timeout = d
			c.http = &hc
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *BaseClient) { c.logger = l }
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *BaseClient) { c.headers.Set(key, value) }
}

func NewBaseClient(baseURL string, store *session.Store, opts ...Option) *BaseClient {
	c := &BaseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		headers: http.Header{},
		session: store,
		logger:  logging.Nop(),
	}
	c.headers.Set("Accept", "application/json")
	c.headers.Set("Content-Type", "application/json")
	for _, o := range opts {
		o(c)
	}
	return c
}

// Session exposes the store the client reads tokens from.
func (c *BaseClient) Session() *session.Store {
	return c.session
}

// OnLogout registers fn to run after a failed refresh has cleared the session.
func (c *BaseClient) OnLogout(fn func(cause error)) {
	c.mu.Lock()
	c.logoutHooks = append(c.logoutHooks, fn)
	c.mu.Unlock()
}

func (c *BaseClient) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *BaseClient) Post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *BaseClient) Put(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *BaseClient) Patch(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPatch, path, body)
}

func (c *BaseClient) Delete(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// do sends the request and applies the token lifecycle. On success the caller
// owns resp.Body; any status >= 400 is returned as *APIError.
func (c *BaseClient) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}

	public := isPublicPath(path)
	resp, sentToken, err := c.send(ctx, method, path, payload, public)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 400 {
		return resp, nil
	}

	apiErr := readAPIError(resp)
	if public || !isAuthFailure(apiErr.StatusCode) {
		return nil, apiErr
	}
	if c.session.RefreshToken() == "" {
		return nil, apiErr
	}

	if err := c.refresh(ctx, sentToken); err != nil {
		return nil, err
	}

	resp, _, err = c.send(ctx, method, path, payload, false)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, readAPIError(resp)
	}
	return resp, nil
}

// send performs a single HTTP exchange and reports the access token it used.
func (c *BaseClient) send(ctx context.Context, method, path string, payload []byte, public bool) (*http.Response, string, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, "", fmt.Errorf("build %s %s: %w", method, path, err)
	}
	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	var token string
	if public {
		req.Header.Del(common.AuthorizationHeaderName)
	} else {
		token, err = c.session.AccessToken(ctx)
		if err != nil {
			c.logger.Warn(ctx, "failed to discard expired token", "error", err)
		}
		if token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	c.logger.Debug(ctx, "api request", "method", method, "path", path, "request_id", req.Header.Get(common.RequestIDHeaderName))

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, token, ctxErr
		}
		c.logger.Warn(ctx, "api request failed", "method", method, "path", path, "error", err)
		return nil, token, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	return resp, token, nil
}

// refresh obtains a new token pair. Callers failing at the same time share one
// refresh call. When another caller already replaced the token that was
// rejected, no new refresh is made.
func (c *BaseClient) refresh(ctx context.Context, rejected string) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		if current := c.session.Snapshot().AccessToken; current != "" && current != rejected {
			return nil, nil
		}
		return nil, c.refreshSession(context.WithoutCancel(ctx))
	})
	return err
}

func (c *BaseClient) refreshSession(ctx context.Context) error {
	snap := c.session.Snapshot()
	if snap.RefreshToken == "" {
		err := fmt.Errorf("refresh session: %w", common.ErrNoRefreshToken)
		c.forceLogout(ctx, err)
		return err
	}

	payload, err := json.Marshal(models.RefreshRequest{
		AccessToken:  snap.AccessToken,
		RefreshToken: snap.RefreshToken,
		UserID:       snap.UserID(),
		Role:         snap.Role(),
	})
	if err != nil {
		return fmt.Errorf("encode refresh request: %w", err)
	}

	pair, err := c.requestRefresh(ctx, payload)
	if err != nil {
		err = fmt.Errorf("refresh session: %w", err)
		c.forceLogout(ctx, err)
		return err
	}

	if err := c.session.UpdateTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return fmt.Errorf("store refreshed tokens: %w", err)
	}
	c.logger.Info(ctx, "session refreshed", "user_id", snap.UserID())
	return nil
}

func (c *BaseClient) requestRefresh(ctx context.Context, payload []byte) (*models.TokenPair, error) {
	resp, _, err := c.send(ctx, http.MethodPost, refreshPath, payload, true)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, readAPIError(resp)
	}
	var pair models.TokenPair
	if err := DecodeResponse(resp, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *BaseClient) forceLogout(ctx context.Context, cause error) {
	c.logger.Warn(ctx, "session ended", "error", cause)
	if err := c.session.Clear(ctx); err != nil {
		c.logger.Error(ctx, "failed to clear session", "error", err)
	}

	c.mu.Lock()
	hooks := slices.Clone(c.logoutHooks)
	c.mu.Unlock()
	for _, fn := range hooks {
		fn(cause)
	}
}

// DecodeResponse decodes a JSON body into v and closes it. Values
// implementing models.Validator are validated.
func DecodeResponse(resp *http.Response, v any) error {
	defer resp.Body.Close()

	if v == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w: %v", ErrBadResponse, models.ErrInvalidPayload, err)
	}
	if val, ok := v.(models.Validator); ok {
		if err := val.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrBadResponse, err)
		}
	}
	return nil
}

func decodeList[T models.Validator](resp *http.Response) ([]T, error) {
	var items []T
	if err := DecodeResponse(resp, &items); err != nil {
		return nil, err
	}
	if err := models.ValidateAll(items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func decodeOne[T any, PT interface {
	*T
	models.Validator
}](resp *http.Response) (*T, error) {
	var v T
	if err := DecodeResponse(resp, PT(&v)); err != nil {
		return nil, err
	}
	return &v, nil
}

func resourcePath(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
