// Package internship covers internship registration (assumption of duty)
// and the supervisor assignment that follows it.
package internship

import (
	"github.com/jrsteele09/go-internship-client/internal/dispatch"
)

// DeriveStatus is the only way a Status is produced.
func DeriveStatus(record *AssumptionOfDutyRecord, assignment *Assignment) Status {
	switch {
	case record == nil:
		return NotRegistered
	case assignment == nil || assignment.Supervisor == nil:
		return RegisteredPendingAssignment
	default:
		return Assigned
	}
}

// State holds the latest source records. Status is kept consistent with
// them by Reduce.
type State struct {
	Status       Status
	Record       *AssumptionOfDutyRecord
	Assignment   *Assignment
	ActivePeriod *Period
	Loading      bool
	Err          error
}

func Initial() State {
	return State{Status: NotRegistered}
}

type Event interface {
	internshipEvent()
}

type LoadStart struct{}

type LoadSuccess struct {
	Record     *AssumptionOfDutyRecord
	Assignment *Assignment
}

type LoadError struct{ Err error }

type RegistrationSuccess struct{ Record *AssumptionOfDutyRecord }

type AssignmentLoaded struct{ Assignment *Assignment }

type ActivePeriodSet struct{ Period *Period }

// Reset drops everything, used when the session ends.
type Reset struct{}

func (LoadStart) internshipEvent()           {}
func (LoadSuccess) internshipEvent()         {}
func (LoadError) internshipEvent()           {}
func (RegistrationSuccess) internshipEvent() {}
func (AssignmentLoaded) internshipEvent()    {}
func (ActivePeriodSet) internshipEvent()     {}
func (Reset) internshipEvent()               {}

func Reduce(state State, event Event) State {
	switch e := event.(type) {
	case LoadStart:
		state.Loading = true
		state.Err = nil
	case LoadSuccess:
		state.Loading = false
		state.Record = e.Record
		state.Assignment = e.Assignment
	case LoadError:
		state.Loading = false
		state.Err = e.Err
	case RegistrationSuccess:
		state.Record = e.Record
	case AssignmentLoaded:
		state.Assignment = e.Assignment
	case ActivePeriodSet:
		state.ActivePeriod = e.Period
	case Reset:
		return Initial()
	default:
		return state
	}
	state.Status = DeriveStatus(state.Record, state.Assignment)
	return state
}

type Dispatcher = dispatch.Dispatcher[State, Event]

func NewDispatcher() *Dispatcher {
	return dispatch.New(Initial(), Reduce)
}
