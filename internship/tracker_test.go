package internship_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/jrsteele09/go-internship-client/auth"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/fakeapitest"
	"github.com/jrsteele09/go-internship-client/internship"
	"github.com/jrsteele09/go-internship-client/location"
	"github.com/jrsteele09/go-internship-client/profile"
	"github.com/jrsteele09/go-internship-client/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Sunyani, Bono Region.
var sunyani = location.Static{Latitude: 7.3349, Longitude: -2.3123}

type testFixture struct {
	env      *fakeapitest.Env
	sessions *session.Manager
	service  *internship.Service
	tracker  *internship.Tracker
}

func setupTestFixture(t *testing.T, provider location.Provider) *testFixture {
	env := fakeapitest.New(t)
	env.SeedStudent(t)
	authService, err := auth.NewService(env.Client, auth.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	sessions, err := session.NewManager(env.Client, authService, session.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	service, err := internship.NewService(env.Client)
	require.NoError(t, err)
	tracker, err := internship.NewTracker(service, sessions, provider, internship.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return &testFixture{env: env, sessions: sessions, service: service, tracker: tracker}
}

// onboard logs in and creates a profile so the session is complete.
func (f *testFixture) onboard(t *testing.T) {
	ctx := context.Background()
	_, err := f.sessions.Login(ctx, auth.LoginRequest{
		Email:    fakeapitest.StudentEmail,
		Password: fakeapitest.StudentPassword,
	})
	require.NoError(t, err)

	profiles, err := profile.NewService(f.env.Client)
	require.NoError(t, err)
	_, err = profiles.Create(ctx, profile.CreateProfileRequest{
		IndexNumber:     "BC/ITS/22/014",
		Faculty:         "Applied Science and Technology",
		Department:      "Computer Science",
		Programme:       "BTech Information Technology",
		Level:           "300",
		Session:         profile.SessionRegular,
		CertificateType: profile.CertificateBTech,
		Gender:          profile.GenderMale,
		DateOfBirth:     "2002-07-19",
		PhoneNumber:     "+233201234567",
	})
	require.NoError(t, err)
	f.sessions.ProfileCreated()
	require.Equal(t, session.AuthenticatedComplete, f.sessions.State().Phase())
}

func registration() internship.Registration {
	return internship.Registration{
		CompanyName:       "Volta River Authority",
		CompanyPhone:      "+233302664941",
		CompanyEmail:      "hr@vra.com",
		CompanyAddress:    "Electro-Volta House",
		CompanySupervisor: "Mrs. Efua Sarpong",
		SupervisorPhone:   "+233244000111",
		CompanyCity:       "Accra",
		CommencementDate:  "2026-06-01T08:00:00Z",
	}
}

func TestNewTracker(t *testing.T) {
	f := setupTestFixture(t, sunyani)
	_, err := internship.NewTracker(nil, f.sessions, sunyani)
	require.Error(t, err)
	_, err = internship.NewTracker(f.service, nil, sunyani)
	require.Error(t, err)
	_, err = internship.NewTracker(f.service, f.sessions, nil)
	require.Error(t, err)
}

func TestServiceNotFoundResponses(t *testing.T) {
	f := setupTestFixture(t, sunyani)
	f.onboard(t)
	ctx := context.Background()

	record, err := f.service.MyAssumptionOfDuty(ctx)
	require.NoError(t, err)
	require.Nil(t, record)

	assignment, err := f.service.MyAssignment(ctx)
	require.NoError(t, err)
	require.Equal(t, &internship.Assignment{AssignmentStatus: internship.AssignmentPending}, assignment)
}

func TestLoadSkippedUntilProfileComplete(t *testing.T) {
	f := setupTestFixture(t, sunyani)
	_, err := f.sessions.Login(context.Background(), auth.LoginRequest{
		Email:    fakeapitest.StudentEmail,
		Password: fakeapitest.StudentPassword,
	})
	require.NoError(t, err)

	f.env.Server.Close()
	state := f.tracker.Load(context.Background())
	require.Equal(t, internship.Initial(), state)
}

func TestLoadNotRegistered(t *testing.T) {
	f := setupTestFixture(t, sunyani)
	f.onboard(t)

	state := f.tracker.Load(context.Background())
	require.NoError(t, state.Err)
	require.False(t, state.Loading)
	require.Equal(t, internship.NotRegistered, state.Status)
	require.Nil(t, state.Record)
	require.Equal(t, internship.AssignmentPending, state.Assignment.AssignmentStatus)
}

func TestSubmitRegistrationThroughAssignment(t *testing.T) {
	f := setupTestFixture(t, sunyani)
	f.onboard(t)
	ctx := context.Background()

	record, err := f.tracker.SubmitRegistration(ctx, registration())
	require.NoError(t, err)
	require.Equal(t, f.env.API.ActivePeriod().ID, record.PeriodID)
	require.InDelta(t, sunyani.Latitude, record.Latitude, 1e-9)
	require.InDelta(t, sunyani.Longitude, record.Longitude, 1e-9)
	require.Equal(t, internship.RegisteredPendingAssignment, record.Status)

	state := f.tracker.State()
	require.Equal(t, internship.RegisteredPendingAssignment, state.Status)
	require.Equal(t, record.ID, state.Record.ID)
	require.NotNil(t, state.ActivePeriod)

	_, err = f.tracker.SubmitRegistration(ctx, registration())
	require.Equal(t, "ALREADY_REGISTERED", apierr.From(err).Code)

	zone := &internship.AssignedZone{ID: "zone-bono", Name: "Bono Central", Region: "Bono"}
	require.NoError(t, f.env.API.AssignSupervisor(fakeapitest.StudentEmail, internship.AssignedSupervisor{
		ID:      "sup-1",
		Name:    "Dr. Kwame Boateng",
		Email:   "kwame.boateng@ttu.edu.gh",
		Phone:   "+233244123456",
		StaffID: "TTU-0412",
	}, zone))

	assignment, err := f.tracker.RefreshAssignment(ctx)
	require.NoError(t, err)
	require.Equal(t, "Dr. Kwame Boateng", assignment.Supervisor.Name)
	require.Equal(t, internship.Assigned, f.tracker.State().Status)

	state = f.tracker.Load(ctx)
	require.Equal(t, internship.Assigned, state.Status)
	require.Equal(t, "Bono Central", state.Assignment.Zone.Name)
	require.Equal(t, internship.Assigned, state.Record.Status)
}

func TestSubmitRegistrationValidation(t *testing.T) {
	f := setupTestFixture(t, sunyani)
	f.onboard(t)
	f.env.Server.Close()

	reg := registration()
	reg.CompanyEmail = "not-an-email"
	_, err := f.tracker.SubmitRegistration(context.Background(), reg)
	e := apierr.From(err)
	require.Equal(t, apierr.CodeValidation, e.Code)
	require.Contains(t, e.FieldErrors, "companyEmail")
}

func TestSubmitRegistrationWithoutLocation(t *testing.T) {
	noFix := location.ProviderFunc(func(context.Context) (location.Coordinates, error) {
		return location.Coordinates{}, location.Unavailable(errors.New("gps disabled"))
	})
	f := setupTestFixture(t, noFix)
	f.onboard(t)

	_, err := f.tracker.SubmitRegistration(context.Background(), registration())
	require.Equal(t, apierr.CodeLocationUnavailable, apierr.From(err).Code)
	require.Nil(t, f.tracker.State().Record)
}

func TestSubmitRegistrationNoActivePeriod(t *testing.T) {
	f := setupTestFixture(t, sunyani)
	f.onboard(t)
	f.env.API.SetActivePeriod(nil)

	_, err := f.tracker.FetchActivePeriod(context.Background())
	require.Equal(t, http.StatusNotFound, apierr.From(err).StatusCode)

	_, err = f.tracker.SubmitRegistration(context.Background(), registration())
	require.Equal(t, "NO_ACTIVE_PERIOD", apierr.From(err).Code)
}

func TestLogoutResetsInternship(t *testing.T) {
	f := setupTestFixture(t, sunyani)
	f.onboard(t)
	ctx := context.Background()
	_, err := f.tracker.SubmitRegistration(ctx, registration())
	require.NoError(t, err)

	f.sessions.Logout(ctx)
	require.Equal(t, internship.Initial(), f.tracker.State())
}

func TestSessionEndingDuringLoadStaysReset(t *testing.T) {
	f := setupTestFixture(t, sunyani)
	f.onboard(t)
	_, err := f.tracker.SubmitRegistration(context.Background(), registration())
	require.NoError(t, err)
	f.env.API.ExpireAccessTokens()
	release := f.env.API.GateRefresh()
	defer release()

	loaded := make(chan internship.State, 1)
	go func() { loaded <- f.tracker.Load(context.Background()) }()
	require.Eventually(t, func() bool { return f.env.API.RefreshCalls() == 1 }, 5*time.Second, 5*time.Millisecond)

	f.sessions.Dispatcher().Dispatch(session.Logout{})
	require.Equal(t, internship.Initial(), f.tracker.State())
	release()

	require.Equal(t, internship.Initial(), <-loaded)
	require.Equal(t, internship.Initial(), f.tracker.State())
}

func TestExpiredTokenBurstRefreshesOnce(t *testing.T) {
	const callers = 5
	f := setupTestFixture(t, sunyani)
	f.onboard(t)
	f.env.API.ExpireAccessTokens()
	release := f.env.API.GateRefresh()
	defer release()

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.service.MyAssignment(context.Background())
		}()
	}

	coordinator := f.env.Client.Coordinator()
	require.Eventually(t, func() bool {
		return f.env.API.RefreshCalls() == 1 && coordinator.Pending() == callers-1
	}, 5*time.Second, 5*time.Millisecond)
	release()
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 1, f.env.API.RefreshCalls())
	require.Equal(t, session.AuthenticatedComplete, f.sessions.State().Phase())
}
