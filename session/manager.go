package session

import (
	"context"

	"github.com/jrsteele09/go-internship-client/apiclient"
	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/jrsteele09/go-internship-client/auth"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Manager runs the session lifecycle: restore, login, logout and expiry.
type Manager struct {
	client     *apiclient.Client
	auth       *auth.Service
	dispatcher *Dispatcher
	logger     zerolog.Logger
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithDispatcher shares an existing dispatcher instead of creating one.
func WithDispatcher(d *Dispatcher) ManagerOption {
	return func(m *Manager) {
		m.dispatcher = d
	}
}

// NewManager wires the session state to client: a failed token refresh
// moves the session to Unauthenticated.
func NewManager(client *apiclient.Client, authService *auth.Service, options ...ManagerOption) (*Manager, error) {
	if client == nil {
		return nil, errors.New("[NewManager] api client is required")
	}
	if authService == nil {
		return nil, errors.New("[NewManager] auth service is required")
	}
	m := &Manager{
		client: client,
		auth:   authService,
		logger: log.Logger,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.dispatcher == nil {
		m.dispatcher = NewDispatcher()
	}

	client.OnSessionExpired(func(err error) {
		m.logger.Info().Err(err).Msg("Session expired")
		m.dispatcher.Dispatch(SessionExpired{Err: err})
	})
	return m, nil
}

func (m *Manager) State() State {
	return m.dispatcher.State()
}

func (m *Manager) Dispatcher() *Dispatcher {
	return m.dispatcher
}

func (m *Manager) Auth() *auth.Service {
	return m.auth
}

// Restore validates a stored access token against /auth/me. It always
// leaves the state out of Unknown; any failure clears the stored tokens.
func (m *Manager) Restore(ctx context.Context) State {
	vault := m.client.Vault()
	token, err := vault.AccessToken(ctx)
	if err != nil {
		m.logger.Err(err).Msg("Failed to read stored token")
	}
	if token == "" {
		return m.dispatcher.Dispatch(RestoreToken{})
	}

	user, err := m.auth.Me(ctx)
	if err != nil {
		m.logger.Debug().Err(err).Msg("Stored token rejected, signing out")
		if clearErr := vault.Clear(ctx); clearErr != nil {
			m.logger.Err(clearErr).Msg("Failed to clear tokens")
		}
		return m.dispatcher.Dispatch(RestoreToken{})
	}

	// The token may have been renewed while validating it.
	if current, err := vault.AccessToken(ctx); err == nil && current != "" {
		token = current
	}
	return m.dispatcher.Dispatch(RestoreToken{Session: FromUser(token, *user)})
}

// Login signs in and persists the returned tokens. A missing refresh token
// in the response leaves any stored refresh token in place.
func (m *Manager) Login(ctx context.Context, req auth.LoginRequest) (State, error) {
	resp, err := m.auth.Login(ctx, req)
	if err != nil {
		return m.State(), err
	}
	if err := m.client.Vault().Save(ctx, &oauth2.Token{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    "Bearer",
	}); err != nil {
		m.logger.Err(err).Msg("Failed to persist tokens")
		return m.State(), apierr.From(err)
	}
	m.logger.Info().Str("user", resp.User.ID).Bool("has_profile", resp.User.HasProfile).Msg("Logged in")
	return m.dispatcher.Dispatch(LoginSuccess{Response: *resp}), nil
}

// Logout notifies the server (ignoring failures), clears tokens and ends the session.
func (m *Manager) Logout(ctx context.Context) State {
	m.auth.Logout(ctx)
	if err := m.client.Vault().Clear(ctx); err != nil {
		m.logger.Err(err).Msg("Failed to clear tokens")
	}
	return m.dispatcher.Dispatch(Logout{})
}

// ProfileCreated flips the current session to a complete profile. Without a
// session it does nothing.
func (m *Manager) ProfileCreated() State {
	return m.dispatcher.Dispatch(ProfileCreated{})
}

func (m *Manager) Register(ctx context.Context, req auth.RegisterRequest) (*auth.MessageResponse, error) {
	return m.auth.Register(ctx, req)
}

func (m *Manager) VerifyOTP(ctx context.Context, req auth.VerifyOTPRequest) (*auth.MessageResponse, error) {
	return m.auth.VerifyOTP(ctx, req)
}

func (m *Manager) ResendOTP(ctx context.Context, email string) (*auth.MessageResponse, error) {
	return m.auth.ResendOTP(ctx, email)
}

func (m *Manager) ForgotPassword(ctx context.Context, email string) (*auth.MessageResponse, error) {
	return m.auth.ForgotPassword(ctx, auth.ForgotPasswordRequest{Email: email})
}

func (m *Manager) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) (*auth.MessageResponse, error) {
	return m.auth.ResetPassword(ctx, req)
}
