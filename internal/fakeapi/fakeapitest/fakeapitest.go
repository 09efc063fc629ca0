// Package fakeapitest starts a fake API behind httptest and a client wired to it.
package fakeapitest

import (
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-internship-client/apiclient"
	"github.com/jrsteele09/go-internship-client/internal/config"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi"
	"github.com/jrsteele09/go-internship-client/tokens"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const (
	StudentEmail     = "kwabena.owusu@ttu.edu.gh"
	StudentPassword  = "Sunyani2026"
	StudentFirstName = "Kwabena"
	StudentLastName  = "Owusu"
)

type Env struct {
	API     *fakeapi.Server
	Server  *httptest.Server
	Store   *tokens.MemoryStore
	Vault   *tokens.Vault
	Client  *apiclient.Client
	Metrics *apiclient.Metrics
}

// New starts a fake API and a client with an empty token store. Both are
// torn down with the test.
func New(t testing.TB) *Env {
	t.Helper()

	api, err := fakeapi.New(config.New(), fakeapi.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	store := tokens.NewMemoryStore()
	vault, err := tokens.NewVault(store)
	require.NoError(t, err)

	metrics := apiclient.NewMetrics(prometheus.NewRegistry())
	client, err := apiclient.New(server.URL, vault,
		apiclient.WithLogger(zerolog.Nop()),
		apiclient.WithMetrics(metrics),
	)
	require.NoError(t, err)

	return &Env{
		API:     api,
		Server:  server,
		Store:   store,
		Vault:   vault,
		Client:  client,
		Metrics: metrics,
	}
}

// SeedStudent creates the verified default student.
func (e *Env) SeedStudent(t testing.TB) {
	t.Helper()
	_, err := e.API.SeedStudent(StudentEmail, StudentPassword, StudentFirstName, StudentLastName, true)
	require.NoError(t, err)
}
