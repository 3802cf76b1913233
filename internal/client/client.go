// Package client is the sync layer for browsing and editing wellness
// sessions against the backend: a thin API client with a cached identity,
// an auto-save debouncer, and an explicit demo mode for offline browsing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/stillpoint/wellness-server-go/internal/apperr"
	"github.com/stillpoint/wellness-server-go/internal/model"
)

// ErrNotAuthenticated is returned by owner-scoped calls before login.
var ErrNotAuthenticated = errors.New("not authenticated")

// Identity is the cached login state attached to every session request.
type Identity struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// SessionForm is the editable form state for a session. The zero ID means
// "create"; a set ID targets an existing session.
type SessionForm struct {
	ID          string        `json:"id,omitempty"`
	Title       string        `json:"title"`
	Tags        model.TagList `json:"tags"`
	VideoURL    string        `json:"video_url"`
	Thumbnail   string        `json:"thumbnail"`
	Description string        `json:"description"`
	Duration    string        `json:"duration"`
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

// WithDemoMode makes ListPublic fall back to the bundled sample sessions
// when the backend is unreachable. It is never enabled implicitly.
func WithDemoMode() Option {
	return func(c *Client) { c.demoMode = true }
}

type Client struct {
	baseURL  string
	http     *http.Client
	demoMode bool

	mu       sync.RWMutex
	identity *Identity
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Identity returns the cached login state, or nil when logged out.
func (c *Client) Identity() *Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

func (c *Client) setIdentity(id *Identity) {
	c.mu.Lock()
	c.identity = id
	c.mu.Unlock()
}

// Logout clears the cached identity. Tokens are stateless server-side;
// there is nothing to revoke.
func (c *Client) Logout() {
	c.setIdentity(nil)
}

func (c *Client) Register(ctx context.Context, email, password string) (*Identity, error) {
	return c.authenticate(ctx, "/auth/register", email, password)
}

func (c *Client) Login(ctx context.Context, email, password string) (*Identity, error) {
	return c.authenticate(ctx, "/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (*Identity, error) {
	var id Identity
	err := c.do(ctx, http.MethodPost, path, map[string]string{
		"email":    email,
		"password": password,
	}, &id, false)
	if err != nil {
		return nil, err
	}

	c.setIdentity(&id)
	return &id, nil
}

// ListPublic fetches the published listing. An unreachable backend degrades
// to an empty listing (or the bundled samples in demo mode) so browsing
// stays usable; every other failure is returned to the caller.
func (c *Client) ListPublic(ctx context.Context) ([]model.Session, error) {
	var out struct {
		Sessions []model.Session `json:"sessions"`
	}
	err := c.do(ctx, http.MethodGet, "/sessions/public", nil, &out, false)
	if err != nil {
		if isUnavailable(err) {
			if c.demoMode {
				log.Warn().Err(err).Msg("backend unreachable, serving demo sessions")
				return SampleSessions(), nil
			}
			log.Warn().Err(err).Msg("backend unreachable, serving empty listing")
			return []model.Session{}, nil
		}
		return nil, err
	}
	if out.Sessions == nil {
		out.Sessions = []model.Session{}
	}
	return out.Sessions, nil
}

func (c *Client) ListMine(ctx context.Context) ([]model.Session, error) {
	var out struct {
		Sessions []model.Session `json:"sessions"`
	}
	if err := c.do(ctx, http.MethodGet, "/sessions/my", nil, &out, true); err != nil {
		return nil, err
	}
	if out.Sessions == nil {
		out.Sessions = []model.Session{}
	}
	return out.Sessions, nil
}

func (c *Client) GetMine(ctx context.Context, id string) (*model.Session, error) {
	var out struct {
		Session *model.Session `json:"session"`
	}
	if err := c.do(ctx, http.MethodGet, "/sessions/my/"+id, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (c *Client) SaveDraft(ctx context.Context, form SessionForm) (*model.Session, error) {
	return c.saveSession(ctx, "/sessions/draft", form)
}

func (c *Client) Publish(ctx context.Context, form SessionForm) (*model.Session, error) {
	return c.saveSession(ctx, "/sessions/publish", form)
}

func (c *Client) saveSession(ctx context.Context, path string, form SessionForm) (*model.Session, error) {
	var out struct {
		Session *model.Session `json:"session"`
	}
	if err := c.do(ctx, http.MethodPost, path, form, &out, true); err != nil {
		return nil, err
	}
	return out.Session, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sessions/"+id, nil, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		id := c.Identity()
		if id == nil {
			return ErrNotAuthenticated
		}
		req.Header.Set("Authorization", "Bearer "+id.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.StoreUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Error string      `json:"error"`
			Code  apperr.Code `json:"code"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.Code == "" {
			return apperr.Internal(fmt.Sprintf("unexpected response status %d", resp.StatusCode))
		}
		return apperr.New(errBody.Code, errBody.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isUnavailable(err error) bool {
	return apperr.IsCode(err, apperr.CodeStoreUnavailable)
}
