package tokens

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Vault gives typed access to the stored token pair and caches the current
// access token in memory so every request does not hit the store.
type Vault struct {
	store Store

	// writeMu orders writes so a conditional save cannot land after a Clear.
	writeMu sync.Mutex

	mu         sync.RWMutex
	access     string
	cached     bool
	generation uint64
}

// ErrSuperseded is returned by SaveAccessTokenIf when the session the token
// was issued for has since been cleared or replaced.
var ErrSuperseded = errors.New("session superseded")

func NewVault(store Store) (*Vault, error) {
	if store == nil {
		return nil, errors.New("[NewVault] store is required")
	}
	return &Vault{store: store}, nil
}

// AccessToken returns the current access token, or "" when signed out.
func (v *Vault) AccessToken(ctx context.Context) (string, error) {
	v.mu.RLock()
	access, cached, generation := v.access, v.cached, v.generation
	v.mu.RUnlock()
	if cached {
		return access, nil
	}

	access, err := v.store.Get(ctx, AccessTokenKey)
	if err != nil {
		return "", errors.Wrap(err, "reading access token")
	}
	v.mu.Lock()
	if v.generation == generation {
		v.access, v.cached = access, true
	}
	v.mu.Unlock()
	return access, nil
}

// RefreshToken is read straight from the store; it is only needed when refreshing.
func (v *Vault) RefreshToken(ctx context.Context) (string, error) {
	refresh, err := v.store.Get(ctx, RefreshTokenKey)
	if err != nil {
		return "", errors.Wrap(err, "reading refresh token")
	}
	return refresh, nil
}

// Token returns the stored pair as a bearer token, or nil with no access token.
func (v *Vault) Token(ctx context.Context) (*oauth2.Token, error) {
	access, err := v.AccessToken(ctx)
	if err != nil || access == "" {
		return nil, err
	}
	refresh, err := v.RefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	tok := &oauth2.Token{
		AccessToken:  access,
		TokenType:    "Bearer",
		RefreshToken: refresh,
	}
	if exp, ok := AccessExpiry(access); ok {
		tok.Expiry = exp
	}
	return tok, nil
}

// Save stores the access token and, when present, the refresh token.
func (v *Vault) Save(ctx context.Context, tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.New("[Save] access token is required")
	}
	v.writeMu.Lock()
	defer v.writeMu.Unlock()

	v.mu.Lock()
	v.generation++
	v.mu.Unlock()
	if err := v.saveAccess(ctx, tok.AccessToken); err != nil {
		return err
	}
	if tok.RefreshToken != "" {
		if err := v.store.Set(ctx, RefreshTokenKey, tok.RefreshToken); err != nil {
			return errors.Wrap(err, "writing refresh token")
		}
	}
	return nil
}

// SaveAccessToken replaces the access token used for new requests.
func (v *Vault) SaveAccessToken(ctx context.Context, access string) error {
	v.writeMu.Lock()
	defer v.writeMu.Unlock()
	return v.saveAccess(ctx, access)
}

// Generation identifies the current session. It changes on every Save and
// Clear.
func (v *Vault) Generation() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.generation
}

// SaveAccessTokenIf stores access only while the session is still the one
// identified by generation.
func (v *Vault) SaveAccessTokenIf(ctx context.Context, access string, generation uint64) error {
	v.writeMu.Lock()
	defer v.writeMu.Unlock()
	if v.Generation() != generation {
		return ErrSuperseded
	}
	return v.saveAccess(ctx, access)
}

func (v *Vault) saveAccess(ctx context.Context, access string) error {
	if err := v.store.Set(ctx, AccessTokenKey, access); err != nil {
		return errors.Wrap(err, "writing access token")
	}
	v.mu.Lock()
	v.access, v.cached = access, true
	v.mu.Unlock()
	return nil
}

// Clear deletes both tokens. Both deletes are attempted even if one fails.
func (v *Vault) Clear(ctx context.Context) error {
	v.writeMu.Lock()
	defer v.writeMu.Unlock()

	v.mu.Lock()
	v.access, v.cached = "", true
	v.generation++
	v.mu.Unlock()

	accessErr := v.store.Delete(ctx, AccessTokenKey)
	refreshErr := v.store.Delete(ctx, RefreshTokenKey)
	if accessErr != nil {
		return errors.Wrap(accessErr, "deleting access token")
	}
	if refreshErr != nil {
		return errors.Wrap(refreshErr, "deleting refresh token")
	}
	return nil
}

// AccessExpiry reads the exp claim of a JWT access token without verifying
// it. Opaque tokens report false.
func AccessExpiry(access string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
