// Package http provides the HTTP handlers and routing of the recipe API.
package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/RecipeShare/internal/middleware"
	"github.com/atinyakov/RecipeShare/internal/response"
	"go.uber.org/zap"
)

// AuthService defines the account operations required by the HTTP handlers.
type AuthService interface {
	// Signup registers a user and returns a session token.
	Signup(ctx context.Context, name, email, password string) (string, error)
	// Login checks credentials and returns a session token.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles signup, login and session status requests.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	Logger      *zap.Logger
}

// SignupRequest represents the JSON payload for user registration.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// CheckResponse reports whether the request carried a valid session.
type CheckResponse struct {
	IsLoggedIn bool `json:"isLoggedIn"`
}

// Signup handles POST /api/auth/signup and responds 201 with a token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	token, err := h.AuthService.Signup(r.Context(), req.Name, req.Email, req.Password)
	middleware.RecordAuthAttempt("signup", err)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	response.Created(w, TokenResponse{Token: token})
}

// Login handles POST /api/auth/login. The email match ignores letter case.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	middleware.RecordAuthAttempt("login", err)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	response.OK(w, TokenResponse{Token: token})
}

// VerifyToken handles POST /api/verify-token. The gate has already
// rejected requests without a valid token.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusOK, "Token is valid")
}

// Check handles GET /api/auth/check.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	response.OK(w, CheckResponse{IsLoggedIn: middleware.GetUserFromContext(r.Context()) != nil})
}

// Logout handles POST /api/logout. Tokens are stateless, so there is
// nothing to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.Message(w, http.StatusOK, "Logged out successfully")
}
