package profile

import (
	"context"

	interrors "github.com/jrsteele09/go-internship-client/internal/errors"

	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/jrsteele09/go-internship-client/internal/dispatch"
	"github.com/jrsteele09/go-internship-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type State struct {
	Profile *StudentProfile
	Loading bool
	Err     error
}

type Event interface {
	profileEvent()
}

type LoadStart struct{}

type LoadSuccess struct{ Profile *StudentProfile }

type LoadError struct{ Err error }

type ImageUpdated struct{ Profile *StudentProfile }

// Reset drops the loaded profile, used when the session ends.
type Reset struct{}

func (LoadStart) profileEvent()    {}
func (LoadSuccess) profileEvent()  {}
func (LoadError) profileEvent()    {}
func (ImageUpdated) profileEvent() {}
func (Reset) profileEvent()        {}

func Reduce(state State, event Event) State {
	switch e := event.(type) {
	case LoadStart:
		state.Loading = true
		state.Err = nil
	case LoadSuccess:
		state.Loading = false
		state.Profile = e.Profile
	case LoadError:
		state.Loading = false
		state.Err = e.Err
	case ImageUpdated:
		state.Profile = e.Profile
	case Reset:
		return State{}
	}
	return state
}

type Dispatcher = dispatch.Dispatcher[State, Event]

// Tracker keeps the profile State loaded for the signed-in student.
type Tracker struct {
	service    *Service
	sessions   *session.Manager
	dispatcher *Dispatcher
	logger     zerolog.Logger
}

// TrackerOption defines a function type to modify the Tracker instance.
type TrackerOption func(*Tracker)

func WithLogger(logger zerolog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = logger
	}
}

func NewTracker(service *Service, sessions *session.Manager, options ...TrackerOption) (*Tracker, error) {
	if service == nil {
		return nil, errors.New("[NewTracker] profile service is required")
	}
	if sessions == nil {
		return nil, errors.New("[NewTracker] session manager is required")
	}
	t := &Tracker{
		service:    service,
		sessions:   sessions,
		dispatcher: dispatch.New(State{}, Reduce),
		logger:     log.Logger,
	}
	for _, opt := range options {
		opt(t)
	}

	sessions.Dispatcher().Subscribe(func(s session.State, _ session.Event) {
		if !s.IsAuthenticated() {
			t.dispatcher.Dispatch(Reset{})
		}
	})
	return t, nil
}

func (t *Tracker) State() State {
	return t.dispatcher.State()
}

// Load fetches the profile when the signed-in student has one.
func (t *Tracker) Load(ctx context.Context) State {
	if t.sessions.State().Phase() != session.AuthenticatedComplete {
		return t.State()
	}
	return t.Refetch(ctx)
}

// Refetch reloads the profile unconditionally. Failures are recorded in State.
func (t *Tracker) Refetch(ctx context.Context) State {
	t.dispatcher.Dispatch(LoadStart{})
	p, err := t.service.Mine(ctx)
	if t.signedOut() {
		return t.State()
	}
	if err != nil {
		t.logger.Err(err).Msg("Failed to load profile")
		return t.dispatcher.Dispatch(LoadError{Err: err})
	}
	return t.dispatcher.Dispatch(LoadSuccess{Profile: p})
}

// Create submits the onboarding profile and marks the session complete
// without requiring a new login.
func (t *Tracker) Create(ctx context.Context, req CreateProfileRequest) (*StudentProfile, error) {
	if !t.sessions.State().IsAuthenticated() {
		return nil, apierr.Wrap(interrors.ErrNoSession, apierr.CodeSessionExpired, apierr.DefaultMessage(401), 401)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := t.service.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	t.dispatcher.Dispatch(LoadSuccess{Profile: p})
	t.sessions.ProfileCreated()
	t.logger.Info().Str("profile", p.ID).Msg("Profile created")
	return p, nil
}

func (t *Tracker) UpdateImage(ctx context.Context, jpeg []byte) (*StudentProfile, error) {
	p, err := t.service.UpdateImage(ctx, jpeg)
	if err != nil {
		return nil, err
	}
	if !t.signedOut() {
		t.dispatcher.Dispatch(ImageUpdated{Profile: p})
	}
	return p, nil
}

func (t *Tracker) signedOut() bool {
	return !t.sessions.State().IsAuthenticated()
}
