// Package api is a typed client for the RecipeShare HTTP API.
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
	"time"

	"github.com/atinyakov/RecipeShare/internal/models"
)

// Error is a non-2xx response from the API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// Client calls the API rooted at BaseURL, sending Token as a bearer
// credential when it is set.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Token   string
}

// New returns a client for baseURL with a 10 second request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type messageBody struct {
	Message string `json:"message"`
}

type tokenBody struct {
	Token string `json:"token"`
}

// Signup registers an account and returns its token.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	var out tokenBody
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenBody
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// VerifyToken reports whether the server still accepts Token.
func (c *Client) VerifyToken(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/verify-token", nil, nil)
}

// Check asks the server whether Token identifies a live session.
func (c *Client) Check(ctx context.Context) (bool, error) {
	var out struct {
		IsLoggedIn bool `json:"isLoggedIn"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/check", nil, &out); err != nil {
		return false, err
	}
	return out.IsLoggedIn, nil
}

// Logout tells the server the session ended and returns its message.
func (c *Client) Logout(ctx context.Context) (string, error) {
	var out messageBody
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// CreateRecipe stores a new recipe owned by the session user.
func (c *Client) CreateRecipe(ctx context.Context, p models.RecipePayload) (*models.Recipe, error) {
	var out models.Recipe
	if err := c.do(ctx, http.MethodPost, "/api/recipes", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRecipes returns recipes matching every key/value pair of filter.
func (c *Client) ListRecipes(ctx context.Context, filter map[string]string) ([]models.Recipe, error) {
	path := "/api/recipes/get"
	if len(filter) > 0 {
		q := url.Values{}
		for k, v := range filter {
			q.Set(k, v)
		}
		path += "?" + q.Encode()
	}
	out := []models.Recipe{}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRecipe fetches one recipe.
func (c *Client) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	var out models.Recipe
	if err := c.do(ctx, http.MethodGet, "/api/recipes/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRecipe replaces a recipe the session user owns.
func (c *Client) UpdateRecipe(ctx context.Context, id string, p models.RecipePayload) (*models.Recipe, error) {
	var out models.Recipe
	if err := c.do(ctx, http.MethodPut, "/api/recipes/"+url.PathEscape(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRecipe removes a recipe the session user owns.
func (c *Client) DeleteRecipe(ctx context.Context, id string) (string, error) {
	var out messageBody
	if err := c.do(ctx, http.MethodDelete, "/api/recipes/"+url.PathEscape(id), nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// MyRecipes lists the recipes created by the session user.
func (c *Client) MyRecipes(ctx context.Context) ([]models.Recipe, error) {
	out := []models.Recipe{}
	if err := c.do(ctx, http.MethodGet, "/api/my-recipes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var msg messageBody
		if raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
			if json.Unmarshal(raw, &msg) == nil && msg.Message != "" {
				apiErr.Message = msg.Message
			} else {
				apiErr.Message = strings.TrimSpace(string(raw))
			}
		}
		return apiErr
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
