package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/itswijay/feedhub/internal/client/models"
	"github.com/itswijay/feedhub/internal/logging"
)

// DefaultTimeout is the client-side cap on any single request.
const DefaultTimeout = 30 * time.Second

// HTTPClient talks to the FeedHub backend over REST. The embedded cookie jar
// transports the session credential; state transitions driven by responses
// are the session store's job, not this layer's.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// NewHTTPClient builds a client for the backend at baseURL
// (e.g. "http://localhost:8000"). A fresh cookie jar is created per client,
// so sessions are not shared between instances.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: DefaultTimeout},
		log:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Login posts form-encoded credentials. On success the backend sets the
// session cookie; the body (if any) is discarded.
func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/jwt/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.doDiscard(req)
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var user models.User
	if err := c.doJSON(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout asks the backend to clear the session cookie. Callers treat the
// outcome as best-effort; local state is cleared regardless.
func (c *HTTPClient) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/jwt/logout", nil)
	if err != nil {
		return err
	}
	return c.doDiscard(req)
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me", nil)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := c.doJSON(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) Feed(ctx context.Context) ([]*models.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/feed", nil)
	if err != nil {
		return nil, err
	}

	var feed models.Feed
	if err := c.doJSON(req, &feed); err != nil {
		return nil, err
	}
	return feed.Posts, nil
}

// Upload sends the file as multipart form data with its caption. The body is
// buffered first so total size is known and progress can be reported.
func (c *HTTPClient) Upload(ctx context.Context, file io.Reader, fileName, caption string, onProgress ProgressFunc) (*models.Post, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := w.WriteField("caption", caption); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	body := &progressReader{r: &buf, total: int64(buf.Len()), fn: onProgress}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.ContentLength = body.total

	var post models.Post
	if err := c.doJSON(req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *HTTPClient) DeletePost(ctx context.Context, postID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/posts/"+url.PathEscape(postID), nil)
	if err != nil {
		return err
	}
	return c.doDiscard(req)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	return c.postJSONDiscard(ctx, "/auth/forgot-password", map[string]string{"email": email})
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, password string) error {
	return c.postJSONDiscard(ctx, "/auth/reset-password", map[string]string{"token": token, "password": password})
}

func (c *HTTPClient) postJSONDiscard(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doDiscard(req)
}

// doJSON executes the request and decodes a 2xx body into out.
func (c *HTTPClient) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return c.classifyTransport(req, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classifyStatus(req, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: ErrUnknown, Status: resp.StatusCode, Message: "malformed response body"}
	}
	return nil
}

// doDiscard executes the request and drains a 2xx body.
func (c *HTTPClient) doDiscard(req *http.Request) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return c.classifyTransport(req, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classifyStatus(req, resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *HTTPClient) classifyTransport(req *http.Request, err error) error {
	kind := ErrUnavailable
	msg := "network error, is the backend running?"

	var ue *url.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind, msg = ErrTimeout, "request timed out, please try again"
	case errors.As(err, &ue) && ue.Timeout():
		kind, msg = ErrTimeout, "request timed out, please try again"
	case errors.Is(err, context.Canceled):
		kind, msg = ErrUnknown, "request canceled"
	}

	c.log.Debug(req.Context(), "request failed", "method", req.Method, "url", req.URL.Path, "err", err)
	return &Error{Kind: kind, Message: msg}
}

func (c *HTTPClient) classifyStatus(req *http.Request, resp *http.Response) error {
	msg := detailMessage(resp.Body)

	var kind error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		kind = ErrUnauthorized
		if msg == "" {
			msg = "session expired, please log in again"
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		kind = ErrValidation
	case resp.StatusCode >= 500:
		kind = ErrServer
	default:
		kind = ErrUnknown
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	c.log.Debug(req.Context(), "request rejected", "method", req.Method, "url", req.URL.Path, "status", resp.StatusCode)
	return &Error{Kind: kind, Status: resp.StatusCode, Message: msg}
}

// detailMessage extracts a displayable message from a {"detail": ...} error
// body. The backend sends detail as a plain string for simple rejections and
// as a structured object for field-level validation; the raw JSON is kept in
// the latter case.
func detailMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(data) == 0 {
		return ""
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}
	return string(envelope.Detail)
}

// progressReader counts bytes handed to the transport and reports them.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(p.sent, p.total)
		}
	}
	return n, err
}
