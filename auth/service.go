// Package auth wraps the authentication endpoints: registration, OTP
// verification, login, password reset and identity lookup.
package auth

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/jrsteele09/go-internship-client/apiclient"
	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const defaultResendCooldown = 60 * time.Second

// Service calls the auth endpoints. Everything except Logout and Me is sent
// without credentials, so a 401 there is a plain failure and never triggers
// a token refresh.
type Service struct {
	client   *apiclient.Client
	logger   zerolog.Logger
	cooldown time.Duration
	nowTime  func() time.Time

	resendLock sync.Mutex
	resend     map[string]*rate.Limiter // email -> OTP send limiter
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithResendCooldown sets the minimum gap between OTP sends to one address.
func WithResendCooldown(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.cooldown = d
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(client *apiclient.Client, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] api client is required")
	}
	s := &Service{
		client:   client,
		logger:   log.Logger,
		cooldown: defaultResendCooldown,
		nowTime:  time.Now,
		resend:   make(map[string]*rate.Limiter),
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Register creates an unverified account. The server emails an OTP, which
// starts the resend cooldown for that address.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := s.postMessage(ctx, RouteRegister, req)
	if err != nil {
		return nil, err
	}
	s.otpSent(req.Email)
	return out, nil
}

func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.postMessage(ctx, RouteVerifyOTP, req)
}

// ResendOTP asks for a new code. Calls inside the cooldown window fail with
// RATE_LIMITED without reaching the server.
func (s *Service) ResendOTP(ctx context.Context, email string) (*MessageResponse, error) {
	req := EmailRequest{Email: email}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if wait := s.ResendAvailableIn(email); wait > 0 {
		return nil, apierr.New(apierr.CodeRateLimited,
			fmt.Sprintf("Please wait %ds before requesting a new code.", int(math.Ceil(wait.Seconds()))),
			http.StatusTooManyRequests)
	}
	out, err := s.postMessage(ctx, RouteResendOTP, req)
	if err != nil {
		return nil, err
	}
	s.otpSent(email)
	return out, nil
}

// ResendAvailableIn reports how long until another OTP may be requested for email.
func (s *Service) ResendAvailableIn(email string) time.Duration {
	s.resendLock.Lock()
	defer s.resendLock.Unlock()

	limiter, ok := s.resend[email]
	if !ok {
		return 0
	}
	now := s.nowTime()
	r := limiter.ReserveN(now, 1)
	defer r.CancelAt(now)
	// Float token arithmetic leaves sub-millisecond residue at the boundary.
	return r.DelayFrom(now).Round(time.Millisecond)
}

// otpSent starts the cooldown for email.
func (s *Service) otpSent(email string) {
	if s.cooldown <= 0 {
		return
	}
	s.resendLock.Lock()
	defer s.resendLock.Unlock()

	limiter := rate.NewLimiter(rate.Every(s.cooldown), 1)
	limiter.AllowN(s.nowTime(), 1)
	s.resend[email] = limiter
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	httpReq, err := apiclient.JSON(http.MethodPost, RouteLogin, req)
	if err != nil {
		return nil, apierr.From(err)
	}
	var out LoginResponse
	if err := s.client.DoJSON(ctx, httpReq.Anonymous(), &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, apierr.New(apierr.CodeUnknown, "Login response did not include an access token.", http.StatusOK)
	}
	return &out, nil
}

// ForgotPassword emails a reset OTP, starting the resend cooldown.
func (s *Service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (*MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	out, err := s.postMessage(ctx, RouteForgotPassword, req)
	if err != nil {
		return nil, err
	}
	s.otpSent(req.Email)
	return out, nil
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.postMessage(ctx, RouteResetPassword, req)
}

// Logout tells the server to end the session. Failures are logged and ignored.
func (s *Service) Logout(ctx context.Context) {
	if _, err := s.client.Do(ctx, apiclient.NewRequest(http.MethodPost, RouteLogout)); err != nil {
		s.logger.Debug().Err(err).Msg("Server logout failed, ignoring")
	}
}

// Me returns the identity behind the current access token.
func (s *Service) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.DoJSON(ctx, apiclient.NewRequest(http.MethodGet, RouteMe), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) postMessage(ctx context.Context, route string, body any) (*MessageResponse, error) {
	req, err := apiclient.JSON(http.MethodPost, route, body)
	if err != nil {
		return nil, apierr.From(err)
	}
	var out MessageResponse
	if err := s.client.DoJSON(ctx, req.Anonymous(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
