package session_test

import (
	"errors"
	"testing"

	"github.com/jrsteele09/go-internship-client/auth"
	"github.com/jrsteele09/go-internship-client/session"
	"github.com/stretchr/testify/require"
)

var testUser = auth.User{
	ID:         "user-1",
	Email:      "ama.mensah@ttu.edu.gh",
	FirstName:  "Ama",
	LastName:   "Mensah",
	IsVerified: true,
}

func loggedIn(hasProfile bool) session.State {
	user := testUser
	user.HasProfile = hasProfile
	return session.Reduce(session.Initial(), session.LoginSuccess{Response: auth.LoginResponse{
		AccessToken: "access-1",
		User:        user,
	}})
}

type unknownEvent struct{ session.Event }

func TestReduce_Phases(t *testing.T) {
	require.Equal(t, session.Unknown, session.Initial().Phase())
	require.Equal(t, session.Unauthenticated, session.Reduce(session.Initial(), session.RestoreToken{}).Phase())
	require.Equal(t, session.AuthenticatedIncomplete, loggedIn(false).Phase())
	require.Equal(t, session.AuthenticatedComplete, loggedIn(true).Phase())
}

func TestReduce_LoginSuccess(t *testing.T) {
	state := loggedIn(false)
	require.True(t, state.IsAuthenticated())
	require.Equal(t, &session.AuthSession{
		Token:      "access-1",
		UserID:     "user-1",
		Email:      "ama.mensah@ttu.edu.gh",
		FirstName:  "Ama",
		LastName:   "Mensah",
		IsVerified: true,
	}, state.Session)
}

func TestReduce_ProfileCreated(t *testing.T) {
	before := loggedIn(false)
	after := session.Reduce(before, session.ProfileCreated{})

	require.Equal(t, session.AuthenticatedComplete, after.Phase())
	require.Equal(t, before.Session.UserID, after.Session.UserID)
	require.False(t, before.Session.HasProfile, "previous state must not be modified")

	again := session.Reduce(after, session.ProfileCreated{})
	require.Equal(t, after, again)
}

func TestReduce_ProfileCreatedWithoutSessionIsNoop(t *testing.T) {
	for _, state := range []session.State{
		session.Initial(),
		session.Reduce(session.Initial(), session.RestoreToken{}),
	} {
		require.NotPanics(t, func() {
			require.Equal(t, state, session.Reduce(state, session.ProfileCreated{}))
		})
	}
}

func TestReduce_LogoutAndExpiry(t *testing.T) {
	for _, event := range []session.Event{session.Logout{}, session.SessionExpired{Err: errors.New("refresh rejected")}} {
		state := session.Reduce(loggedIn(true), event)
		require.Equal(t, session.Unauthenticated, state.Phase())
		require.Nil(t, state.Session)
	}
}

func TestReduce_RestoreCopiesSession(t *testing.T) {
	restored := &session.AuthSession{Token: "t", UserID: "u", HasProfile: true}
	state := session.Reduce(session.Initial(), session.RestoreToken{Session: restored})
	restored.HasProfile = false
	require.True(t, state.Session.HasProfile)
}

func TestReduce_UnknownEventIsIgnored(t *testing.T) {
	state := loggedIn(true)
	require.Equal(t, state, session.Reduce(state, unknownEvent{}))
	require.Equal(t, state, session.Reduce(state, nil))
}

func TestDispatcher_RecordsEvents(t *testing.T) {
	d := session.NewDispatcher()
	var phases []session.Phase
	d.Subscribe(func(s session.State, _ session.Event) { phases = append(phases, s.Phase()) })

	d.Dispatch(session.RestoreToken{})
	d.Dispatch(session.LoginSuccess{Response: auth.LoginResponse{AccessToken: "a", User: testUser}})
	d.Dispatch(session.ProfileCreated{})
	d.Dispatch(session.Logout{})

	require.Equal(t, []session.Phase{
		session.Unauthenticated,
		session.AuthenticatedIncomplete,
		session.AuthenticatedComplete,
		session.Unauthenticated,
	}, phases)
	require.Len(t, d.Events(), 4)
}
