package identity

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "propertymasters"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, testIssuer, time.Hour)
	verifier := NewTokenVerifier(testSecret, testIssuer, nil)

	issued, err := issuer.Issue("user-42", RoleLandlord)
	require.NoError(t, err)
	require.NotEmpty(t, issued.TokenID)
	require.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, time.Minute)

	id, err := verifier.Verify(context.Background(), issued.Token)
	require.NoError(t, err)
	require.Equal(t, "user-42", id.ID)
	require.Equal(t, RoleLandlord, id.Role)
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, testIssuer, time.Hour)
	_, err := issuer.Issue("user-1", Role("wizard"))
	require.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, testIssuer, time.Hour)
	verifier := NewTokenVerifier("other-secret", testIssuer, nil)

	issued, err := issuer.Issue("user-1", RoleAdmin)
	require.NoError(t, err)
	_, err = verifier.Verify(context.Background(), issued.Token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, "someone-else", time.Hour)
	verifier := NewTokenVerifier(testSecret, testIssuer, nil)

	issued, err := issuer.Issue("user-1", RoleAdmin)
	require.NoError(t, err)
	_, err = verifier.Verify(context.Background(), issued.Token)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, testIssuer, time.Hour)
	issuer.clock = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	verifier := NewTokenVerifier(testSecret, testIssuer, nil)

	issued, err := issuer.Issue("user-1", RoleAgent)
	require.NoError(t, err)
	_, err = verifier.Verify(context.Background(), issued.Token)
	require.Error(t, err)
}

func TestVerifyRejectsUnknownRoleClaim(t *testing.T) {
	claims := Claims{
		Role: "wizard",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			Subject:   "user-1",
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	verifier := NewTokenVerifier(testSecret, testIssuer, nil)
	_, err = verifier.Verify(context.Background(), signed)
	require.Error(t, err)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	claims := Claims{
		Role: RoleTenant.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-2",
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	verifier := NewTokenVerifier(testSecret, testIssuer, nil)
	_, err = verifier.Verify(context.Background(), signed)
	require.Error(t, err)
}

func TestVerifyRejectsRevokedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	denylist := NewRedisDenylist(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	issuer := NewTokenIssuer(testSecret, testIssuer, time.Hour)
	verifier := NewTokenVerifier(testSecret, testIssuer, denylist)

	issued, err := issuer.Issue("user-1", RoleBuyer)
	require.NoError(t, err)

	// Valid before revocation.
	_, err = verifier.Verify(context.Background(), issued.Token)
	require.NoError(t, err)

	require.NoError(t, denylist.Revoke(context.Background(), issued.TokenID, time.Hour))
	_, err = verifier.Verify(context.Background(), issued.Token)
	require.Error(t, err)
}

func TestRedisDenylistEntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	denylist := NewRedisDenylist(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	require.NoError(t, denylist.Revoke(context.Background(), "jti-ttl", time.Minute))
	revoked, err := denylist.Revoked(context.Background(), "jti-ttl")
	require.NoError(t, err)
	require.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = denylist.Revoked(context.Background(), "jti-ttl")
	require.NoError(t, err)
	require.False(t, revoked)
}

func TestParseClaimsReturnsTokenID(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, testIssuer, time.Hour)
	verifier := NewTokenVerifier(testSecret, testIssuer, nil)

	issued, err := issuer.Issue("user-9", RoleSolicitor)
	require.NoError(t, err)

	claims, err := verifier.ParseClaims(issued.Token)
	require.NoError(t, err)
	require.Equal(t, issued.TokenID, claims.ID)
	require.Equal(t, "user-9", claims.Subject)
}
