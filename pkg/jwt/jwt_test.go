package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestManager(verifyAudience bool) *TokenManager {
	tm := NewTokenManager(Options{
		Secret:         "test-secret",
		Issuer:         "mentor-mentee-app",
		Audience:       "mentor-mentee-users",
		TTL:            time.Hour,
		VerifyAudience: verifyAudience,
	})
	tm.now = func() time.Time { return issuedAt }
	return tm
}

func TestGenerateAndValidate_RoundTrip(t *testing.T) {
	tm := newTestManager(false)

	token, err := tm.GenerateToken("42", "mentor@example.com", "Kim", "mentor")
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "mentor", claims.Role)
	assert.Equal(t, "mentor@example.com", claims.Email)
	assert.Equal(t, "Kim", claims.Name)
	assert.Equal(t, "mentor-mentee-app", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"mentor-mentee-users"}, claims.Audience)
	assert.Equal(t, issuedAt, claims.IssuedAt.Time.UTC())
	assert.Equal(t, issuedAt, claims.NotBefore.Time.UTC())
	assert.Equal(t, issuedAt.Add(time.Hour), claims.ExpiresAt.Time.UTC())
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateToken_UniqueTokenIDs(t *testing.T) {
	tm := newTestManager(false)

	first, err := tm.GenerateToken("1", "a@example.com", "A", "mentee")
	require.NoError(t, err)
	second, err := tm.GenerateToken("1", "a@example.com", "A", "mentee")
	require.NoError(t, err)

	c1, err := tm.ValidateToken(first)
	require.NoError(t, err)
	c2, err := tm.ValidateToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestValidateToken_ExpiryWindow(t *testing.T) {
	tm := newTestManager(false)
	token, err := tm.GenerateToken("7", "x@example.com", "X", "mentee")
	require.NoError(t, err)

	tm.now = func() time.Time { return issuedAt.Add(time.Hour - time.Second) }
	_, err = tm.ValidateToken(token)
	assert.NoError(t, err, "one second before expiry must be valid")

	tm.now = func() time.Time { return issuedAt.Add(time.Hour + time.Second) }
	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_NotBeforeInFuture(t *testing.T) {
	tm := newTestManager(false)
	token, err := tm.GenerateToken("7", "x@example.com", "X", "mentee")
	require.NoError(t, err)

	tm.now = func() time.Time { return issuedAt.Add(-time.Minute) }
	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tm := newTestManager(false)
	token, err := tm.GenerateToken("7", "x@example.com", "X", "mentee")
	require.NoError(t, err)

	other := newTestManager(false)
	other.secret = []byte("another-secret")

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Malformed(t *testing.T) {
	tm := newTestManager(false)

	_, err := tm.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_RejectsUnsigned(t *testing.T) {
	tm := newTestManager(false)

	claims := SessionClaims{
		Role: "mentor",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_AudienceCheck(t *testing.T) {
	issuer := newTestManager(false)
	issuer.audience = "someone-else"
	token, err := issuer.GenerateToken("3", "x@example.com", "X", "mentee")
	require.NoError(t, err)

	relaxed := newTestManager(false)
	_, err = relaxed.ValidateToken(token)
	assert.NoError(t, err, "audience is not checked by default")

	strict := newTestManager(true)
	_, err = strict.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
