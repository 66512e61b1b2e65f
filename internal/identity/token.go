package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Claims is the JWT payload carried by access tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Denylist records revoked token IDs until their natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisDenylist implements Denylist on Redis. Entries expire together with
// the token they revoke, so the list stays bounded.
type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist constructs a RedisDenylist.
func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

func (d *RedisDenylist) key(tokenID string) string {
	return "revoked:" + tokenID
}

// Revoke marks a token ID as revoked for the remaining token lifetime.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.key(tokenID), "1", ttl).Err()
}

// Revoked reports whether a token ID has been revoked.
func (d *RedisDenylist) Revoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, d.key(tokenID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ Denylist = (*RedisDenylist)(nil)

// TokenIssuer mints signed access tokens for authenticated users.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer signing with HMAC-SHA256.
func NewTokenIssuer(secret string, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		clock:  func() time.Time { return time.Now().UTC() },
	}
}

// IssuedToken pairs the signed token string with its metadata.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// Issue signs a token for the given principal.
func (i *TokenIssuer) Issue(userID string, role Role) (*IssuedToken, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("identity: cannot issue token for role %q", role)
	}
	now := i.clock()
	expiresAt := now.Add(i.ttl)
	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("identity: sign token: %w", err)
	}
	return &IssuedToken{Token: signed, TokenID: claims.ID, ExpiresAt: expiresAt}, nil
}

// TTL exposes the configured token lifetime.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// TokenVerifier validates signed access tokens and produces caller
// identities. A nil denylist disables revocation checks.
type TokenVerifier struct {
	secret   []byte
	issuer   string
	denylist Denylist
}

// NewTokenVerifier constructs a TokenVerifier.
func NewTokenVerifier(secret string, issuer string, denylist Denylist) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer, denylist: denylist}
}

// Verify parses and validates a token string. Any defect - bad signature,
// expiry, unknown role claim, revocation - fails verification; callers must
// not surface which check failed.
func (v *TokenVerifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("identity: parse token: %w", err)
	}
	role, err := ParseRole(claims.Role)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("identity: token missing subject")
	}
	if v.denylist != nil && claims.ID != "" {
		revoked, err := v.denylist.Revoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("identity: check revocation: %w", err)
		}
		if revoked {
			return nil, errors.New("identity: token revoked")
		}
	}
	return &Identity{ID: claims.Subject, Role: role}, nil
}

// ParseClaims validates the token signature and returns its claims. Used by
// logout to learn the token ID and expiry for revocation.
func (v *TokenVerifier) ParseClaims(tokenString string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("identity: parse token: %w", err)
	}
	return &claims, nil
}
