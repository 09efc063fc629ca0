// Package accesstoken signs and checks the fake API's HS256 access tokens.
package accesstoken

import (
	"fmt"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-internship-client/internal/config"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/users"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const issuer = "fakeapi"

var (
	ErrInvalid = errors.New("invalid access token")
	ErrRevoked = errors.New("access token revoked")
)

// Claims are the validated contents of an access token.
type Claims struct {
	UserID     string
	Email      string
	ID         string // jti
	Generation int
	ExpiresAt  time.Time
}

// Creator issues access tokens. Tokens carry a generation number; bumping the
// generation invalidates every token issued before it.
type Creator struct {
	config  config.FakeAPIConfig
	revoked *RevokedCache

	lock       sync.RWMutex
	generation int
}

func NewCreator(cfg config.FakeAPIConfig) *Creator {
	return &Creator{
		config:  cfg,
		revoked: NewRevokedCache(),
	}
}

func (c *Creator) Create(student *users.Student) (string, error) {
	c.lock.RLock()
	generation := c.generation
	c.lock.RUnlock()

	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"iss":   issuer,
		"sub":   student.ID,
		"email": student.Email,
		"gen":   generation,
		"iat":   now.Unix(),
		"exp":   now.Add(c.config.GetAccessTokenExpiry()).Unix(),
		"jti":   uuid.New().String(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(c.config.GetSigningSecret()))
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns its claims.
func (c *Creator) Parse(raw string) (*Claims, error) {
	token, err := jwtlib.Parse(raw, func(t *jwtlib.Token) (any, error) {
		return []byte(c.config.GetSigningSecret()), nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil || !token.Valid {
		return nil, errors.Wrap(ErrInvalid, fmt.Sprint(err))
	}
	mc, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrInvalid
	}

	claims := &Claims{}
	claims.UserID, _ = mc["sub"].(string)
	claims.Email, _ = mc["email"].(string)
	claims.ID, _ = mc["jti"].(string)
	if gen, ok := mc["gen"].(float64); ok {
		claims.Generation = int(gen)
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	c.lock.RLock()
	current := c.generation
	c.lock.RUnlock()
	if claims.Generation < current {
		return nil, errors.Wrap(ErrInvalid, "token generation expired")
	}
	if c.revoked.IsRevoked(claims.ID) {
		return nil, ErrRevoked
	}
	return claims, nil
}

// Revoke rejects the token with the given claims from now on.
func (c *Creator) Revoke(claims *Claims) {
	c.revoked.Add(claims.ID, claims.ExpiresAt)
}

// ExpireAll invalidates every token issued so far.
func (c *Creator) ExpireAll() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.generation++
}
