package service

import (
	"context"
	"errors"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/atinyakov/RecipeShare/internal/models"
)

// TokenParser verifies a session token and returns the bound user id.
type TokenParser interface {
	Parse(token string) (string, error)
}

// PrincipalFinder resolves a user id to a stored user.
type PrincipalFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// SessionService resolves bearer tokens to principals.
type SessionService struct {
	users  PrincipalFinder
	tokens TokenParser
}

// NewSessionService constructs a SessionService.
func NewSessionService(users PrincipalFinder, tokens TokenParser) *SessionService {
	return &SessionService{users: users, tokens: tokens}
}

// Verify returns the user bound to token.
//
// It fails with apperrors.ErrMissingToken for an empty token,
// apperrors.ErrExpiredToken or apperrors.ErrInvalidToken when the token does
// not verify, and apperrors.ErrUnknownPrincipal when the bound user no longer
// exists.
func (s *SessionService) Verify(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.ErrMissingToken
	}

	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnknownPrincipal
		}
		return nil, err
	}
	return user, nil
}
