// Package middleware provides HTTP middlewares for access control, request
// logging, metrics and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/atinyakov/RecipeShare/internal/models"
	"github.com/atinyakov/RecipeShare/internal/response"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ctxKey string

const userKey ctxKey = "user"

// Policy is the access level a route declares.
type Policy int

const (
	// Public routes never look at the Authorization header.
	Public Policy = iota
	// SoftAuth routes resolve a principal when a valid token is sent and
	// carry on without one otherwise.
	SoftAuth
	// RequireAuth routes reject requests without a valid token.
	RequireAuth
	// RequireOwner routes additionally require the principal to own the
	// resource named by the {id} URL parameter.
	RequireOwner
)

// String returns the policy name used in logs.
func (p Policy) String() string {
	switch p {
	case Public:
		return "public"
	case SoftAuth:
		return "soft-auth"
	case RequireAuth:
		return "auth"
	case RequireOwner:
		return "owner"
	}
	return "unknown"
}

// SessionVerifier resolves a bearer token to a principal.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*models.User, error)
}

// OwnerLookup returns the creator id of the resource with the given id.
type OwnerLookup interface {
	Owner(ctx context.Context, id string) (string, error)
}

// Gate enforces route policies.
type Gate struct {
	sessions SessionVerifier
	owners   OwnerLookup
	logger   *zap.Logger
}

// NewGate creates a Gate. owners may be nil if no route uses RequireOwner.
func NewGate(sessions SessionVerifier, owners OwnerLookup, logger *zap.Logger) *Gate {
	return &Gate{sessions: sessions, owners: owners, logger: logger}
}

// Require returns a middleware that admits a request only if it satisfies
// policy. On success the principal, if any, is stored in the request context.
func (g *Gate) Require(policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if policy == Public {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := g.sessions.Verify(r.Context(), BearerToken(r))
			if err != nil {
				if policy == SoftAuth {
					next.ServeHTTP(w, r)
					return
				}
				g.deny(w, r, policy, err)
				return
			}

			if policy == RequireOwner {
				if err := g.checkOwner(r, user); err != nil {
					g.deny(w, r, policy, err)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func (g *Gate) checkOwner(r *http.Request, user *models.User) error {
	owner, err := g.owners.Owner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	if owner != user.ID {
		return apperrors.ErrForbidden.WithMessage(forbiddenMessage(r.Method))
	}
	return nil
}

func (g *Gate) deny(w http.ResponseWriter, r *http.Request, policy Policy, err error) {
	apiErr := apperrors.AsAPIError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		g.logger.Error("access check failed",
			zap.String("path", r.URL.Path),
			zap.Stringer("policy", policy),
			zap.Error(err),
		)
	} else {
		g.logger.Debug("access denied",
			zap.String("path", r.URL.Path),
			zap.Stringer("policy", policy),
			zap.String("reason", apiErr.Code),
		)
	}
	response.Error(w, err)
}

func forbiddenMessage(method string) string {
	switch method {
	case http.MethodPut, http.MethodPatch:
		return "You are not authorized to edit this recipe"
	case http.MethodDelete:
		return "You are not authorized to delete this recipe"
	}
	return apperrors.ErrForbidden.Message
}

// BearerToken returns the token from an "Authorization: Bearer <token>"
// header. A header without the scheme is returned as is.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return h
}

// GetUserFromContext returns the principal stored by Gate, or nil.
func GetUserFromContext(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}

// GetUserIDFromContext returns the principal's id, or an empty string if
// the request is anonymous.
func GetUserIDFromContext(ctx context.Context) string {
	if u := GetUserFromContext(ctx); u != nil {
		return u.ID
	}
	return ""
}

// WithUser returns a copy of ctx carrying user as the principal.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
