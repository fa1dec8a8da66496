// Package api implements the REST client for the commerce backend. All
// persistence, validation, and authorization live on the backend; this
// client only shapes requests, attaches the bearer token, and classifies
// failures into the domain error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// TokenSource yields the current bearer token. The session manager is the
// only implementation outside tests; it returns "" when logged out.
type TokenSource interface {
	Token() string
}

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *log.Logger
}

// New builds a Client. tokens may be nil for unauthenticated use.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// LoginResult carries the authenticated user and the token to persist.
type LoginResult struct {
	User  domain.User
	Token string
}

// loginResponse accepts both response shapes the backend is known to emit:
// {"user": {...}, "token": "..."} and a flat user object with a token field.
type loginResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`

	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// Login exchanges credentials for a token. No auth header is attached.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp, false); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, domain.NewError(domain.KindUnknown, 0, "login response missing token")
	}
	result := &LoginResult{Token: resp.Token}
	if resp.User != nil {
		result.User = *resp.User
	} else {
		result.User = domain.User{ID: resp.ID, Username: resp.Username, Email: resp.Email, Role: resp.Role}
	}
	if result.User.Username == "" {
		result.User.Username = username
	}
	if result.User.Role == "" {
		result.User.Role = domain.RoleCustomer
	}
	return result, nil
}

// Register creates an account. The backend does not log the user in.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/register", body, nil, false)
}

// Me validates the current token and returns the user it belongs to.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/me", nil, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListProducts fetches the full catalog. The token is attached when one
// exists; some backends serve the list anonymously.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products, true); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct adds a catalog entry (admin only, enforced server-side).
func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", in, &product, true); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a catalog entry's fields (admin only).
func (c *Client) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPut, "/products/"+id, in, &product, true); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a catalog entry (admin only).
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil, true)
}

// PlaceOrder submits the checkout payload as one atomic request. A stock
// conflict surfaces as a conflict-kind error with the backend's message.
func (c *Client) PlaceOrder(ctx context.Context, in domain.OrderRequest) (*domain.OrderConfirmation, error) {
	var conf domain.OrderConfirmation
	if err := c.do(ctx, http.MethodPost, "/orders", in, &conf, true); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Ping probes backend reachability for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListProducts(ctx)
	if err != nil && domain.IsNetwork(err) {
		return err
	}
	// Auth or validation responses still prove the backend is reachable.
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Printf("%s %s: %v", method, path, err)
		}
		return domain.NewError(domain.KindNetwork, 0, "cannot reach the server")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(method, path, resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewError(domain.KindUnknown, resp.StatusCode, "malformed response from server")
	}
	return nil
}

// errorBody is the backend's error envelope. Only message matters.
type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) errorFromResponse(method, path string, resp *http.Response) error {
	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)

	message := strings.TrimSpace(body.Message)
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	if c.logger != nil {
		c.logger.Printf("%s %s: %d %s", method, path, resp.StatusCode, message)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewError(domain.KindAuth, resp.StatusCode, message)
	case http.StatusBadRequest:
		return domain.NewError(domain.KindValidation, resp.StatusCode, message)
	case http.StatusConflict:
		return domain.NewError(domain.KindConflict, resp.StatusCode, message)
	case http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return domain.NewError(domain.KindUnknown, resp.StatusCode, message)
	}
}
