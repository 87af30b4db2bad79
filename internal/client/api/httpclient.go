package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/XXS1337/rentease/internal/client/models"
	"github.com/XXS1337/rentease/internal/logging"
)

// TokenSource supplies the current bearer token, or "" when anonymous.
// The session manager implements it.
type TokenSource interface {
	Token() string
}

// HTTPClient is the Client implementation over net/http. Every response
// passes through one choke point (send), which is where expired sessions are
// detected and the onSessionExpired hook fires. The hook owner is expected to
// make the side effect single-shot; the client calls it for every qualifying
// response.
type HTTPClient struct {
	baseURL          string
	http             *http.Client
	tokens           TokenSource
	onSessionExpired func()
	log              logging.Logger
}

// NewHTTPClient builds a client for the API at baseURL (no trailing slash
// required). timeout bounds each request; onSessionExpired may be nil.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, onSessionExpired func(), log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:          baseURL,
		http:             &http.Client{Timeout: timeout},
		tokens:           tokens,
		onSessionExpired: onSessionExpired,
		log:              log,
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if t := c.tokens.Token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
	return req, nil
}

// send executes the request and decodes a 2xx body into out (when non-nil).
// Failures are mapped to sentinels where possible; an expired session
// triggers the hook synchronously before returning.
func (c *HTTPClient) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(req, resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) mapError(req *http.Request, status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	if IsSessionInvalid(status, payload.Message) {
		c.log.Warn(req.Context(), "session invalidated by server", "path", req.URL.Path, "message", payload.Message)
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return ErrSessionExpired
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrEmailTaken
	}
	return &Error{Status: status, Message: payload.Message}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var out struct {
		UserDB *models.User `json:"userDB"`
		Token  string       `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users/login", nil, body, &out); err != nil {
		return nil, "", err
	}
	return out.UserDB, out.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/users/register", nil, req, nil)
}

func (c *HTTPClient) CheckEmail(ctx context.Context, email string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/users/checkEmail", nil, body, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/users/forgotPassword", nil, body, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"password": password}
	return c.do(ctx, http.MethodPatch, "/users/resetPassword/"+url.PathEscape(token), nil, body, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out struct {
		CurrentUser *models.User `json:"currentUser"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.CurrentUser, nil
}

func (c *HTTPClient) UpdateMyProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error) {
	var out struct {
		UpdatedUser *models.User `json:"updatedUser"`
	}
	if err := c.do(ctx, http.MethodPatch, "/users/updateMyProfile", nil, upd, &out); err != nil {
		return nil, err
	}
	return out.UpdatedUser, nil
}

func (c *HTTPClient) DeleteProfile(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/users/deleteProfile/"+url.PathEscape(userID), nil, nil, nil)
}

func (c *HTTPClient) AllUsers(ctx context.Context) ([]models.User, error) {
	var out struct {
		Data []models.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/allUsers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) UserByID(ctx context.Context, id string) (*models.User, error) {
	var out struct {
		Data *models.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/getUserById/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) EditProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.User, error) {
	var out struct {
		UpdatedUser *models.User `json:"updatedUser"`
	}
	if err := c.do(ctx, http.MethodPatch, "/users/editProfile/"+url.PathEscape(id), nil, upd, &out); err != nil {
		return nil, err
	}
	return out.UpdatedUser, nil
}

func (c *HTTPClient) UpdateRole(ctx context.Context, id string, role models.Role) error {
	body := map[string]models.Role{"role": role}
	return c.do(ctx, http.MethodPatch, "/users/updateRole/"+url.PathEscape(id), nil, body, nil)
}

func (c *HTTPClient) Flats(ctx context.Context, filter models.FlatFilter) ([]models.Flat, error) {
	var out struct {
		Data []models.Flat `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/flats", filter.Query(), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) MyFlats(ctx context.Context) ([]models.Flat, error) {
	var out struct {
		Data []models.Flat `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/flats/myFlats", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) Flat(ctx context.Context, id string) (*models.Flat, error) {
	var out struct {
		Data *models.Flat `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/flats/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) CreateFlat(ctx context.Context, p FlatPayload) (*models.Flat, error) {
	var out struct {
		Data *models.Flat `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/flats", nil, p, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) UpdateFlat(ctx context.Context, id string, p FlatPayload) (*models.Flat, error) {
	var out struct {
		Data *models.Flat `json:"data"`
	}
	if err := c.do(ctx, http.MethodPatch, "/flats/"+url.PathEscape(id), nil, p, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) DeleteFlat(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/flats/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) AddToFavorites(ctx context.Context, flatID string) error {
	return c.do(ctx, http.MethodPost, "/flats/"+url.PathEscape(flatID)+"/addToFavorites", nil, struct{}{}, nil)
}

func (c *HTTPClient) RemoveFromFavorites(ctx context.Context, flatID string) error {
	return c.do(ctx, http.MethodDelete, "/flats/"+url.PathEscape(flatID)+"/removeFromFavorites", nil, nil, nil)
}

func (c *HTTPClient) Messages(ctx context.Context, flatID string) ([]models.Message, error) {
	var out struct {
		Data []models.Message `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/flats/"+url.PathEscape(flatID)+"/messages", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// SendMessage posts a message with a client-generated idempotency key so a
// retried submit cannot duplicate it server-side.
func (c *HTTPClient) SendMessage(ctx context.Context, flatID, content string) (*models.Message, error) {
	body := map[string]string{"content": content}
	req, err := c.newRequest(ctx, http.MethodPost, "/flats/"+url.PathEscape(flatID)+"/messages", nil, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Idempotency-Key", uuid.NewString())

	var out struct {
		Data *models.Message `json:"data"`
	}
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *HTTPClient) Chat(ctx context.Context, turns []models.ChatTurn) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	body := map[string][]models.ChatTurn{"messages": turns}
	if err := c.do(ctx, http.MethodPost, "/ai/chatbot", nil, body, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}
