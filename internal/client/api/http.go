package api

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

	"github.com/aquapure/backoffice/internal/client/credentials"
	"github.com/aquapure/backoffice/internal/common"
	"github.com/aquapure/backoffice/internal/logging"
)

// API paths. LogoutPath is exported because the unauthorized handling below
// must recognize it: a 401 to the logout call itself must not trigger another
// round of forced de-authentication.
const (
	loginPath   = "/api/auth/login"
	profilePath = "/api/auth/profile"
	LogoutPath  = "/api/auth/logout"
)

const maxResponseBytes = 1 << 20

// envelope is the uniform response wrapper the server emits.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// HTTPClient is the single outbound gateway to the back-office API. Every
// request is decorated with the stored bearer credential; every response is
// inspected for auth failures.
//
// On a 401 to anything but the logout endpoint the client purges the
// credential registry and fires the unauthorized callback, letting the
// session layer turn the event into a proper state transition.
type HTTPClient struct {
	baseURL string
	httpc   *http.Client
	creds   credentials.Store
	logger  logging.Logger

	mu             sync.Mutex
	onUnauthorized func(reason string)
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a gateway for the API at baseURL. The timeout applies
// to every request; on expiry the call fails like any other network error.
func NewHTTPClient(baseURL string, timeout time.Duration, creds credentials.Store, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		creds:   creds,
		logger:  logger,
	}
}

// OnUnauthorized registers the callback fired when a non-logout request is
// rejected with 401. At most one callback is held; later calls replace it.
func (c *HTTPClient) OnUnauthorized(fn func(reason string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.creds.Get(ctx, credentials.KeyAccessToken)
	if err != nil {
		c.logger.Warn(ctx, "failed to read stored credential", "error", err)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &Error{Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Error{Status: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body is not fatal: status handling below still applies.
		_ = json.Unmarshal(raw, &env)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if path != LogoutPath {
			c.forceDeauth(ctx, env.Message)
		}
		return &Error{Status: resp.StatusCode, Message: env.Message, Err: ErrUnauthorized}
	case resp.StatusCode == http.StatusForbidden:
		c.logger.Warn(ctx, "request forbidden", "method", method, "path", path)
		return &Error{Status: resp.StatusCode, Message: env.Message, Err: ErrForbidden}
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logger.Error(ctx, "server error", "method", method, "path", path, "status", resp.StatusCode)
		return &Error{Status: resp.StatusCode, Message: env.Message, Err: ErrServer}
	case resp.StatusCode >= http.StatusBadRequest || !env.Success:
		return &Error{Status: resp.StatusCode, Message: env.Message, Err: errors.New("request failed")}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Status: resp.StatusCode, Err: fmt.Errorf("malformed response payload: %w", err)}
		}
	}
	return nil
}

// forceDeauth is the 401 side of the shared cleanup contract: it deletes the
// auth key registry through the same PurgeAuth the session store uses, then
// notifies the subscriber exactly once for this response.
func (c *HTTPClient) forceDeauth(ctx context.Context, serverMsg string) {
	if err := credentials.PurgeAuth(ctx, c.creds); err != nil {
		c.logger.Warn(ctx, "failed to purge credentials", "error", err)
	}

	c.mu.Lock()
	fn := c.onUnauthorized
	c.mu.Unlock()
	if fn == nil {
		return
	}

	reason := serverMsg
	if reason == "" {
		reason = "session expired"
	}
	fn(reason)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, loginPath, loginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*Admin, error) {
	var res profileResult
	if err := c.do(ctx, http.MethodGet, profilePath, nil, &res); err != nil {
		return nil, err
	}
	return res.Admin, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, LogoutPath, nil, nil)
}

func (o ListOptions) encode() string {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(o.PerPage))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *HTTPClient) ListContacts(ctx context.Context, opts ListOptions) ([]Contact, error) {
	var res listResult[Contact]
	if err := c.do(ctx, http.MethodGet, "/api/contacts"+opts.encode(), nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *HTTPClient) UpdateContactStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, "/api/contacts/"+url.PathEscape(id)+"/status", body, nil)
}

func (c *HTTPClient) DeleteContact(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/contacts/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListEnquiries(ctx context.Context, opts ListOptions) ([]Enquiry, error) {
	var res listResult[Enquiry]
	if err := c.do(ctx, http.MethodGet, "/api/enquiries"+opts.encode(), nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *HTTPClient) UpdateEnquiryStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, "/api/enquiries/"+url.PathEscape(id)+"/status", body, nil)
}

func (c *HTTPClient) DeleteEnquiry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/enquiries/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListIssues(ctx context.Context, opts ListOptions) ([]Issue, error) {
	var res listResult[Issue]
	if err := c.do(ctx, http.MethodGet, "/api/issues"+opts.encode(), nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *HTTPClient) UpdateIssueStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, "/api/issues/"+url.PathEscape(id)+"/status", body, nil)
}

func (c *HTTPClient) DeleteIssue(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/issues/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListGallery(ctx context.Context) ([]GalleryItem, error) {
	var res listResult[GalleryItem]
	if err := c.do(ctx, http.MethodGet, "/api/gallery", nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *HTTPClient) CreateGalleryItem(ctx context.Context, title, category string) (*GalleryUpload, error) {
	body := map[string]string{"title": title, "category": category}
	var res GalleryUpload
	if err := c.do(ctx, http.MethodPost, "/api/gallery", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) DeleteGalleryItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/gallery/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) VisitorSummary(ctx context.Context, days int) ([]VisitorDailyStat, error) {
	path := "/api/visitors/summary"
	if days > 0 {
		path += "?days=" + strconv.Itoa(days)
	}
	var res listResult[VisitorDailyStat]
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *HTTPClient) ListAdmins(ctx context.Context) ([]Admin, error) {
	var res listResult[Admin]
	if err := c.do(ctx, http.MethodGet, "/api/admins", nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *HTTPClient) CreateAdmin(ctx context.Context, name, email, role, password string) (*Admin, error) {
	body := map[string]string{"name": name, "email": email, "role": role, "password": password}
	var res struct {
		Admin *Admin `json:"admin"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admins", body, &res); err != nil {
		return nil, err
	}
	return res.Admin, nil
}

func (c *HTTPClient) Settings(ctx context.Context) (map[string]string, error) {
	var res struct {
		Settings map[string]string `json:"settings"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, &res); err != nil {
		return nil, err
	}
	return res.Settings, nil
}

func (c *HTTPClient) PutSetting(ctx context.Context, key, value string) error {
	body := map[string]string{"value": value}
	return c.do(ctx, http.MethodPut, "/api/settings/"+url.PathEscape(key), body, nil)
}
