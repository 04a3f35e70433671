// Package service provides the business logic for accounts, sessions and
// recipes, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/atinyakov/RecipeShare/internal/auth"
	"github.com/atinyakov/RecipeShare/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the persistence operations
// required by the authentication and session services.
type UserRepository interface {
	// EmailExists reports whether a user with exactly this email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// Create stores a new user. A taken email or name yields apperrors.ErrConflict.
	Create(ctx context.Context, user *models.User) error
	// FindByEmailFold returns every user whose email matches ignoring
	// letter case, an exact match first.
	FindByEmailFold(ctx context.Context, email string) ([]*models.User, error)
	// FindByID returns the user with the given id or apperrors.ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// TokenIssuer signs session tokens bound to a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

var (
	errSignupFields = apperrors.ErrValidation.WithMessage("Name, email, and password are required")
	errLoginFields  = apperrors.ErrValidation.WithMessage("Email and password are required")
	errEmailTaken   = apperrors.ErrConflict.WithMessage("Email already in use")
	errPasswordLong = apperrors.ErrValidation.WithMessage("Password must be at most 72 bytes")
)

// AuthService implements signup and login.
type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService over the given user store and
// token issuer.
func NewAuthService(users UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup registers a new user and returns a session token bound to it.
// The email must not already be registered (exact match).
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return "", errSignupFields
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", errEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errPasswordLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		CreatedRecipes: []string{},
		SavedRecipes:   []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return s.tokens.Issue(user.ID)
}

// Login checks the credentials and returns a fresh session token. An unknown
// email and a wrong password both yield apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", errLoginFields
	}

	candidates, err := s.users.FindByEmailFold(ctx, email)
	if err != nil {
		return "", err
	}

	// Emails that differ only in case belong to different accounts, so
	// the password decides which one is meant.
	for _, user := range candidates {
		if auth.ComparePassword(password, user.PasswordHash) == nil {
			return s.tokens.Issue(user.ID)
		}
	}
	return "", apperrors.ErrInvalidCredentials
}
