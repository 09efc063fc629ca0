package fakeapi

import (
	"sync"

	interrors "github.com/jrsteele09/go-internship-client/internal/errors"
	"github.com/jrsteele09/go-internship-client/internship"
	"github.com/jrsteele09/go-internship-client/profile"
)

// records holds everything other than accounts and tokens, keyed by student id
// (OTPs by email).
type records struct {
	lock        sync.RWMutex
	otps        map[string]string
	profiles    map[string]*profile.StudentProfile
	duties      map[string]*internship.AssumptionOfDutyRecord
	assignments map[string]*internship.Assignment
	period      *internship.Period
}

func newRecords() *records {
	return &records{
		otps:        make(map[string]string),
		profiles:    make(map[string]*profile.StudentProfile),
		duties:      make(map[string]*internship.AssumptionOfDutyRecord),
		assignments: make(map[string]*internship.Assignment),
	}
}

func (r *records) setOTP(email, otp string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.otps[email] = otp
}

func (r *records) otp(email string) string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.otps[email]
}

// consumeOTP checks otp and deletes it on a match.
func (r *records) consumeOTP(email, otp string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if want, ok := r.otps[email]; !ok || want != otp {
		return false
	}
	delete(r.otps, email)
	return true
}

func (r *records) profile(userID string) (*profile.StudentProfile, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, interrors.Wrapf(interrors.ErrNotFound, "profile for %s", userID)
	}
	cp := *p
	return &cp, nil
}

// putProfile stores p. With create set it fails if a profile already exists.
func (r *records) putProfile(p *profile.StudentProfile, create bool) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, exists := r.profiles[p.UserID]; exists && create {
		return false
	}
	cp := *p
	r.profiles[p.UserID] = &cp
	return true
}

func (r *records) duty(userID string) (*internship.AssumptionOfDutyRecord, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	d, ok := r.duties[userID]
	if !ok {
		return nil, interrors.Wrapf(interrors.ErrNotFound, "assumption of duty for %s", userID)
	}
	cp := *d
	return &cp, nil
}

func (r *records) createDuty(d *internship.AssumptionOfDutyRecord) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, exists := r.duties[d.StudentID]; exists {
		return false
	}
	cp := *d
	r.duties[d.StudentID] = &cp
	return true
}

func (r *records) assignment(userID string) (*internship.Assignment, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	a, ok := r.assignments[userID]
	if !ok {
		return nil, interrors.Wrapf(interrors.ErrNotFound, "assignment for %s", userID)
	}
	cp := *a
	return &cp, nil
}

func (r *records) setAssignment(userID string, a *internship.Assignment) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.assignments[userID] = a
	if d, ok := r.duties[userID]; ok {
		d.Status = internship.DeriveStatus(d, a)
	}
}

func (r *records) activePeriod() *internship.Period {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.period == nil {
		return nil
	}
	cp := *r.period
	return &cp
}

func (r *records) setPeriod(p *internship.Period) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.period = p
}
