package internship

import (
	"context"

	"github.com/jrsteele09/go-internship-client/location"
	"github.com/jrsteele09/go-internship-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Tracker keeps the internship State in step with the server and the session.
type Tracker struct {
	service    *Service
	sessions   *session.Manager
	location   location.Provider
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

// NewTracker creates a tracker. When the session ends the state is reset.
func NewTracker(service *Service, sessions *session.Manager, provider location.Provider, options ...TrackerOption) (*Tracker, error) {
	if service == nil {
		return nil, errors.New("[NewTracker] internship service is required")
	}
	if sessions == nil {
		return nil, errors.New("[NewTracker] session manager is required")
	}
	if provider == nil {
		return nil, errors.New("[NewTracker] location provider is required")
	}
	t := &Tracker{
		service:    service,
		sessions:   sessions,
		location:   provider,
		dispatcher: NewDispatcher(),
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

func (t *Tracker) Dispatcher() *Dispatcher {
	return t.dispatcher
}

// Load fetches the registration record and assignment concurrently. It only
// runs for a signed-in student with a complete profile; otherwise the state
// is returned unchanged.
func (t *Tracker) Load(ctx context.Context) State {
	if t.sessions.State().Phase() != session.AuthenticatedComplete {
		return t.State()
	}
	t.dispatcher.Dispatch(LoadStart{})

	var (
		record     *AssumptionOfDutyRecord
		assignment *Assignment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		record, err = t.service.MyAssumptionOfDuty(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		assignment, err = t.service.MyAssignment(gctx)
		return err
	})
	err := g.Wait()
	if t.signedOut() {
		return t.State()
	}
	if err != nil {
		t.logger.Err(err).Msg("Failed to load internship status")
		return t.dispatcher.Dispatch(LoadError{Err: err})
	}
	return t.dispatcher.Dispatch(LoadSuccess{Record: record, Assignment: assignment})
}

func (t *Tracker) FetchActivePeriod(ctx context.Context) (*Period, error) {
	period, err := t.service.ActivePeriod(ctx)
	if err != nil {
		return nil, err
	}
	t.dispatcher.Dispatch(ActivePeriodSet{Period: period})
	return period, nil
}

// SubmitRegistration validates reg, resolves the active period if it is not
// known yet, captures the current coordinates and submits the assumption of duty.
func (t *Tracker) SubmitRegistration(ctx context.Context, reg Registration) (*AssumptionOfDutyRecord, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	period := t.State().ActivePeriod
	if period == nil {
		var err error
		if period, err = t.FetchActivePeriod(ctx); err != nil {
			return nil, err
		}
	}
	coords, err := t.location.Coordinates(ctx)
	if err != nil {
		return nil, err
	}

	record, err := t.service.SubmitAssumptionOfDuty(ctx, AssumptionOfDutyRequest{
		Registration: reg,
		PeriodID:     period.ID,
		Latitude:     coords.Latitude,
		Longitude:    coords.Longitude,
	})
	if err != nil {
		return nil, err
	}
	t.logger.Info().Str("record", record.ID).Str("period", period.ID).Msg("Internship registration submitted")
	if !t.signedOut() {
		t.dispatcher.Dispatch(RegistrationSuccess{Record: record})
	}
	return record, nil
}

func (t *Tracker) RefreshAssignment(ctx context.Context) (*Assignment, error) {
	assignment, err := t.service.MyAssignment(ctx)
	if err != nil {
		return nil, err
	}
	if !t.signedOut() {
		t.dispatcher.Dispatch(AssignmentLoaded{Assignment: assignment})
	}
	return assignment, nil
}

// signedOut reports whether the session ended, in which case the Reset from
// the session listener must not be overwritten by a late response.
func (t *Tracker) signedOut() bool {
	return !t.sessions.State().IsAuthenticated()
}
