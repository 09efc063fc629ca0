package fakeapi

import (
	"sync"
	"time"

	"github.com/jrsteele09/go-internship-client/internal/fakeapi/users"
	"github.com/jrsteele09/go-internship-client/internal/utils"
	"github.com/jrsteele09/go-internship-client/internship"
	"github.com/pkg/errors"
)

// SeedStudent creates an account directly, skipping registration.
func (s *Server) SeedStudent(email, password, firstName, lastName string, verified bool) (*users.Student, error) {
	hash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "hashing password")
	}
	student := &users.Student{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		DateJoined:   time.Now(),
		Verified:     verified,
	}
	if err := s.users.Upsert(student); err != nil {
		return nil, err
	}
	return student, nil
}

// OTP returns the code most recently issued to email, or "".
func (s *Server) OTP(email string) string {
	return s.records.otp(email)
}

// ExpireAccessTokens makes every access token issued so far fail with 401.
func (s *Server) ExpireAccessTokens() {
	s.tokens.ExpireAll()
}

// RevokeRefreshTokens deletes every refresh token so the next refresh fails.
func (s *Server) RevokeRefreshTokens() int {
	return s.refresh.RevokeAll()
}

// GateRefresh holds every refresh request until the returned release func
// is called. Calling release more than once is safe.
func (s *Server) GateRefresh() (release func()) {
	gate := make(chan struct{})
	s.gateLock.Lock()
	s.refreshGate = gate
	s.gateLock.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.gateLock.Lock()
			if s.refreshGate == gate {
				s.refreshGate = nil
			}
			s.gateLock.Unlock()
			close(gate)
		})
	}
}

func (s *Server) currentGate() chan struct{} {
	s.gateLock.Lock()
	defer s.gateLock.Unlock()
	return s.refreshGate
}

// RefreshCalls counts requests received on the refresh endpoint.
func (s *Server) RefreshCalls() int {
	return int(s.refreshCalls.Load())
}

// AssignSupervisor allocates a supervisor (and optionally a zone) to the
// student with email.
func (s *Server) AssignSupervisor(email string, supervisor internship.AssignedSupervisor, zone *internship.AssignedZone) error {
	student, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	s.records.setAssignment(student.ID, &internship.Assignment{
		Supervisor:       utils.Ptr(supervisor),
		Zone:             zone,
		AssignmentStatus: internship.AssignmentAssigned,
	})
	return nil
}

// SetActivePeriod replaces the active period; nil closes registration.
func (s *Server) SetActivePeriod(period *internship.Period) {
	s.records.setPeriod(period)
}

// ActivePeriod returns the current active period, if any.
func (s *Server) ActivePeriod() *internship.Period {
	return s.records.activePeriod()
}
