// Package session tracks who is signed in and how far through onboarding
// they are. Transitions are computed by Reduce; Manager performs the I/O.
package session

import (
	"github.com/jrsteele09/go-internship-client/auth"
	"github.com/jrsteele09/go-internship-client/internal/dispatch"
)

// Phase is the navigation gate derived from State.
type Phase int

const (
	Unknown Phase = iota
	Unauthenticated
	AuthenticatedIncomplete
	AuthenticatedComplete
)

func (p Phase) String() string {
	switch p {
	case Unauthenticated:
		return "unauthenticated"
	case AuthenticatedIncomplete:
		return "authenticated (profile incomplete)"
	case AuthenticatedComplete:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuthSession is the signed-in identity.
type AuthSession struct {
	Token      string `json:"token"`
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	IsVerified bool   `json:"isVerified"`
	HasProfile bool   `json:"hasProfile"`
}

// FromUser builds a session for token and the identity it belongs to.
func FromUser(token string, user auth.User) *AuthSession {
	return &AuthSession{
		Token:      token,
		UserID:     user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsVerified: user.IsVerified,
		HasProfile: user.HasProfile,
	}
}

// State is treated as immutable; Reduce always returns a fresh value and
// never modifies the Session it was given.
type State struct {
	Session *AuthSession
	Loading bool
}

// Initial is the state before any stored token has been checked.
func Initial() State {
	return State{Loading: true}
}

func (s State) IsAuthenticated() bool {
	return s.Session != nil
}

func (s State) Phase() Phase {
	switch {
	case s.Loading:
		return Unknown
	case s.Session == nil:
		return Unauthenticated
	case s.Session.HasProfile:
		return AuthenticatedComplete
	default:
		return AuthenticatedIncomplete
	}
}

// Event is one of RestoreToken, LoginSuccess, Logout, SessionExpired or ProfileCreated.
type Event interface {
	sessionEvent()
}

// RestoreToken reports the outcome of validating a stored token. A nil
// Session means there was nothing valid to restore.
type RestoreToken struct{ Session *AuthSession }

type LoginSuccess struct{ Response auth.LoginResponse }

type Logout struct{}

// SessionExpired is raised when the access token could not be renewed.
type SessionExpired struct{ Err error }

// ProfileCreated marks the onboarding profile as submitted.
type ProfileCreated struct{}

func (RestoreToken) sessionEvent()   {}
func (LoginSuccess) sessionEvent()   {}
func (Logout) sessionEvent()         {}
func (SessionExpired) sessionEvent() {}
func (ProfileCreated) sessionEvent() {}

// Reduce is total: unrecognised events leave the state unchanged.
func Reduce(state State, event Event) State {
	switch e := event.(type) {
	case RestoreToken:
		return State{Session: copySession(e.Session)}
	case LoginSuccess:
		return State{Session: FromUser(e.Response.AccessToken, e.Response.User)}
	case Logout, SessionExpired:
		return State{}
	case ProfileCreated:
		if state.Session == nil {
			return state
		}
		s := *state.Session
		s.HasProfile = true
		return State{Session: &s, Loading: state.Loading}
	default:
		return state
	}
}

func copySession(s *AuthSession) *AuthSession {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// Dispatcher holds the single live session state.
type Dispatcher = dispatch.Dispatcher[State, Event]

func NewDispatcher() *Dispatcher {
	return dispatch.New(Initial(), Reduce)
}
