package tokens_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-internship-client/tokens"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestVault_SaveAndClear(t *testing.T) {
	ctx := context.Background()
	store := tokens.NewMemoryStore()
	vault, err := tokens.NewVault(store)
	require.NoError(t, err)

	access, err := vault.AccessToken(ctx)
	require.NoError(t, err)
	require.Empty(t, access)

	tok, err := vault.Token(ctx)
	require.NoError(t, err)
	require.Nil(t, tok)

	require.NoError(t, vault.Save(ctx, &oauth2.Token{AccessToken: "a1", RefreshToken: "r1"}))

	stored, err := store.Get(ctx, tokens.RefreshTokenKey)
	require.NoError(t, err)
	require.Equal(t, "r1", stored)

	tok, err = vault.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "a1", tok.AccessToken)
	require.Equal(t, "r1", tok.RefreshToken)
	require.Equal(t, "Bearer", tok.TokenType)

	require.NoError(t, vault.Clear(ctx))
	access, err = vault.AccessToken(ctx)
	require.NoError(t, err)
	require.Empty(t, access)
	refresh, err := store.Get(ctx, tokens.RefreshTokenKey)
	require.NoError(t, err)
	require.Empty(t, refresh)
}

func TestVault_SaveAccessTokenIfRejectsClearedSession(t *testing.T) {
	ctx := context.Background()
	vault, err := tokens.NewVault(tokens.NewMemoryStore())
	require.NoError(t, err)
	require.NoError(t, vault.Save(ctx, &oauth2.Token{AccessToken: "a1", RefreshToken: "r1"}))

	generation := vault.Generation()
	require.NoError(t, vault.SaveAccessTokenIf(ctx, "a2", generation))

	require.NoError(t, vault.Clear(ctx))
	require.ErrorIs(t, vault.SaveAccessTokenIf(ctx, "a3", generation), tokens.ErrSuperseded)
	access, err := vault.AccessToken(ctx)
	require.NoError(t, err)
	require.Empty(t, access)

	require.NoError(t, vault.Save(ctx, &oauth2.Token{AccessToken: "b1"}))
	require.ErrorIs(t, vault.SaveAccessTokenIf(ctx, "a4", generation), tokens.ErrSuperseded)
	access, err = vault.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "b1", access)
}

func TestVault_SaveWithoutRefreshKeepsExisting(t *testing.T) {
	ctx := context.Background()
	store := tokens.NewMemoryStore()
	require.NoError(t, store.Set(ctx, tokens.RefreshTokenKey, "r-old"))
	vault, err := tokens.NewVault(store)
	require.NoError(t, err)

	require.NoError(t, vault.Save(ctx, &oauth2.Token{AccessToken: "a2"}))
	refresh, err := vault.RefreshToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "r-old", refresh)

	require.Error(t, vault.Save(ctx, &oauth2.Token{}))
}

func TestVault_ReadsThroughOnce(t *testing.T) {
	ctx := context.Background()
	store := tokens.NewMemoryStore()
	require.NoError(t, store.Set(ctx, tokens.AccessTokenKey, "persisted"))
	vault, err := tokens.NewVault(store)
	require.NoError(t, err)

	access, err := vault.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "persisted", access)

	require.NoError(t, vault.SaveAccessToken(ctx, "rotated"))
	access, err = vault.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "rotated", access)
}

func TestAccessExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	got, ok := tokens.AccessExpiry(signed)
	require.True(t, ok)
	require.True(t, exp.Equal(got))

	_, ok = tokens.AccessExpiry("opaque-token")
	require.False(t, ok)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store := tokens.NewFileStore(path)

	value, err := store.Get(ctx, tokens.AccessTokenKey)
	require.NoError(t, err)
	require.Empty(t, value)

	require.NoError(t, store.Set(ctx, tokens.AccessTokenKey, "a"))
	require.NoError(t, store.Set(ctx, tokens.RefreshTokenKey, "r"))

	reopened := tokens.NewFileStore(path)
	value, err = reopened.Get(ctx, tokens.AccessTokenKey)
	require.NoError(t, err)
	require.Equal(t, "a", value)

	require.NoError(t, reopened.Delete(ctx, tokens.AccessTokenKey))
	require.NoError(t, reopened.Delete(ctx, tokens.AccessTokenKey))
	value, err = store.Get(ctx, tokens.AccessTokenKey)
	require.NoError(t, err)
	require.Empty(t, value)
	value, err = store.Get(ctx, tokens.RefreshTokenKey)
	require.NoError(t, err)
	require.Equal(t, "r", value)
}
