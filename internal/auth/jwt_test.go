package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/atinyakov/RecipeShare/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse_Success(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("super-secret", time.Hour)

	tok, err := m.Issue("user-123")
	require.NoError(t, err)

	got, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestIssue_DistinctTokensSameIdentity(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("secret", time.Hour)
	base := time.Now()
	m.now = func() time.Time { return base }
	first, err := m.Issue("u1")
	require.NoError(t, err)

	m.now = func() time.Time { return base.Add(2 * time.Second) }
	second, err := m.Issue("u1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, tok := range []string{first, second} {
		id, err := m.Parse(tok)
		require.NoError(t, err)
		assert.Equal(t, "u1", id)
	}
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("secret", time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issuedAt }

	tok, err := m.Issue("u1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, apperrors.ErrExpiredToken)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("right-secret", time.Hour).Issue("u2")
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestParse_Tampered(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("secret", time.Hour)
	tok, err := m.Issue("u3")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	forged, err := NewTokenManager("other", time.Hour).Issue("attacker")
	require.NoError(t, err)
	parts[1] = strings.Split(forged, ".")[1]

	_, err = m.Parse(strings.Join(parts, "."))
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("k", time.Hour).Parse("not.a.jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u4"})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("k", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestParse_MissingUserID(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("k", time.Hour)
	tok, err := m.Issue("")
	require.NoError(t, err)

	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
