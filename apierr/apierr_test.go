package apierr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromResponse(t *testing.T) {
	t.Run("default message per status", func(t *testing.T) {
		e := apierr.FromResponse(403, nil)
		require.Equal(t, "HTTP_403", e.Code)
		require.Equal(t, 403, e.StatusCode)
		require.Equal(t, "You are not allowed to perform this action.", e.Message)
		require.Nil(t, e.FieldErrors)
	})

	t.Run("unknown status falls back", func(t *testing.T) {
		e := apierr.FromResponse(418, []byte("not json"))
		require.Equal(t, "Something went wrong. Please try again.", e.Message)
	})

	t.Run("server message and field errors win", func(t *testing.T) {
		body := []byte(`{"code":"EMAIL_TAKEN","message":"Email already registered","errors":{"email":"already in use","password":["too short","no digit"]}}`)
		e := apierr.FromResponse(422, body)
		require.Equal(t, "EMAIL_TAKEN", e.Code)
		require.Equal(t, "Email already registered", e.Message)
		require.Equal(t, map[string]string{
			"email":    "already in use",
			"password": "too short",
		}, e.FieldErrors)
	})

	t.Run("non string message is ignored", func(t *testing.T) {
		e := apierr.FromResponse(400, []byte(`{"message":["a","b"]}`))
		require.Equal(t, "Please check the information you entered.", e.Message)
	})
}

func TestFrom(t *testing.T) {
	original := apierr.FromResponse(500, nil)
	wrapped := fmt.Errorf("loading profile: %w", original)
	require.Same(t, original, apierr.From(wrapped))

	unknown := apierr.From(errors.New("boom"))
	require.Equal(t, apierr.CodeUnknown, unknown.Code)
	require.Equal(t, "boom", unknown.Message)

	require.Nil(t, apierr.From(nil))
}

func TestNetworkAndSessionExpired(t *testing.T) {
	net := apierr.Network(context.DeadlineExceeded)
	assert.Equal(t, 0, net.StatusCode)
	assert.ErrorIs(t, net, context.DeadlineExceeded)

	expired := apierr.SessionExpired(nil)
	assert.True(t, apierr.IsStatus(expired, 401))
	assert.True(t, apierr.IsCode(expired, apierr.CodeSessionExpired))
}
