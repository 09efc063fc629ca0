package accesstoken_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-internship-client/internal/config"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/accesstoken"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/users"
	"github.com/jrsteele09/go-internship-client/tokens"
	"github.com/stretchr/testify/require"
)

var student = &users.Student{ID: "student-1", Email: "yaw.asante@ttu.edu.gh"}

func TestCreateAndParse(t *testing.T) {
	c := accesstoken.NewCreator(config.FakeAPI{})

	raw, err := c.Create(student)
	require.NoError(t, err)

	claims, err := c.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "student-1", claims.UserID)
	require.Equal(t, "yaw.asante@ttu.edu.gh", claims.Email)
	require.NotEmpty(t, claims.ID)

	// The client reads the same expiry without the secret.
	exp, ok := tokens.AccessExpiry(raw)
	require.True(t, ok)
	require.WithinDuration(t, claims.ExpiresAt, exp, time.Second)
}

func TestParse_Rejects(t *testing.T) {
	c := accesstoken.NewCreator(config.FakeAPI{})
	raw, err := c.Create(student)
	require.NoError(t, err)

	_, err = c.Parse("not-a-jwt")
	require.ErrorIs(t, err, accesstoken.ErrInvalid)

	_, err = c.Parse(raw + "x")
	require.ErrorIs(t, err, accesstoken.ErrInvalid)

	claims, err := c.Parse(raw)
	require.NoError(t, err)
	c.Revoke(claims)
	_, err = c.Parse(raw)
	require.ErrorIs(t, err, accesstoken.ErrRevoked)
}

func TestExpireAll(t *testing.T) {
	c := accesstoken.NewCreator(config.FakeAPI{})
	before, err := c.Create(student)
	require.NoError(t, err)

	c.ExpireAll()
	_, err = c.Parse(before)
	require.ErrorIs(t, err, accesstoken.ErrInvalid)

	after, err := c.Create(student)
	require.NoError(t, err)
	_, err = c.Parse(after)
	require.NoError(t, err)
}

func TestParse_Expired(t *testing.T) {
	c := accesstoken.NewCreator(config.FakeAPI{})
	accesstoken.NowTimeFunc = func() time.Time { return time.Now().Add(-time.Hour) }
	raw, err := c.Create(student)
	accesstoken.NowTimeFunc = time.Now
	require.NoError(t, err)

	_, err = c.Parse(raw)
	require.ErrorIs(t, err, accesstoken.ErrInvalid)
}
