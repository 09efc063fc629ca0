package internship_test

import (
	"errors"
	"testing"

	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/jrsteele09/go-internship-client/internship"
	"github.com/stretchr/testify/require"
)

var (
	record     = &internship.AssumptionOfDutyRecord{ID: "aod-1"}
	supervisor = &internship.AssignedSupervisor{ID: "sup-1", Name: "Dr. Kwame Boateng"}
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name       string
		record     *internship.AssumptionOfDutyRecord
		assignment *internship.Assignment
		want       internship.Status
	}{
		{"no record, no assignment", nil, nil, internship.NotRegistered},
		{"no record, assigned", nil, &internship.Assignment{Supervisor: supervisor}, internship.NotRegistered},
		{"record, no assignment", record, nil, internship.RegisteredPendingAssignment},
		{"record, pending assignment", record, internship.PendingAssignment(), internship.RegisteredPendingAssignment},
		{"record, zone only", record, &internship.Assignment{Zone: &internship.AssignedZone{ID: "z"}}, internship.RegisteredPendingAssignment},
		{"record, supervisor", record, &internship.Assignment{Supervisor: supervisor}, internship.Assigned},
		{"record, empty supervisor", record, &internship.Assignment{Supervisor: &internship.AssignedSupervisor{}}, internship.Assigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, internship.DeriveStatus(tt.record, tt.assignment))
		})
	}
}

func TestReduce_StatusFollowsRecords(t *testing.T) {
	state := internship.Initial()
	require.Equal(t, internship.NotRegistered, state.Status)

	state = internship.Reduce(state, internship.LoadStart{})
	require.True(t, state.Loading)

	state = internship.Reduce(state, internship.LoadSuccess{Assignment: internship.PendingAssignment()})
	require.False(t, state.Loading)
	require.Equal(t, internship.NotRegistered, state.Status)

	state = internship.Reduce(state, internship.RegistrationSuccess{Record: record})
	require.Equal(t, internship.RegisteredPendingAssignment, state.Status)

	state = internship.Reduce(state, internship.AssignmentLoaded{Assignment: &internship.Assignment{Supervisor: supervisor}})
	require.Equal(t, internship.Assigned, state.Status)

	state = internship.Reduce(state, internship.AssignmentLoaded{Assignment: nil})
	require.Equal(t, internship.RegisteredPendingAssignment, state.Status)
}

func TestReduce_ErrorsAndPeriod(t *testing.T) {
	boom := errors.New("boom")
	state := internship.Reduce(internship.Initial(), internship.LoadStart{})
	state = internship.Reduce(state, internship.LoadError{Err: boom})
	require.False(t, state.Loading)
	require.ErrorIs(t, state.Err, boom)

	state = internship.Reduce(state, internship.LoadStart{})
	require.NoError(t, state.Err)

	period := &internship.Period{ID: "p-1"}
	state = internship.Reduce(state, internship.ActivePeriodSet{Period: period})
	require.Same(t, period, state.ActivePeriod)

	state = internship.Reduce(state, internship.Reset{})
	require.Equal(t, internship.Initial(), state)
}

func TestReduce_UnknownEvent(t *testing.T) {
	state := internship.Reduce(internship.Initial(), internship.RegistrationSuccess{Record: record})
	require.Equal(t, state, internship.Reduce(state, nil))
}

func TestRegistrationValidate(t *testing.T) {
	valid := internship.Registration{
		CompanyName:       "Volta River Authority",
		CompanyPhone:      "+233302664941",
		CompanyEmail:      "hr@vra.com",
		CompanyAddress:    "Electro-Volta House",
		CompanySupervisor: "Mrs. Efua Sarpong",
		SupervisorPhone:   "+233244000111",
		CompanyCity:       "Accra",
		CommencementDate:  "2026-06-01T08:00:00Z",
	}
	require.NoError(t, valid.Validate())

	invalid := valid
	invalid.CompanyPhone = "0302664941"
	invalid.CommencementDate = "2026-06-01"
	invalid.CompanyCity = ""
	err := invalid.Validate()
	require.Error(t, err)

	fields := apierr.From(err).FieldErrors
	require.Len(t, fields, 3)
	require.Contains(t, fields, "companyPhone")
	require.Contains(t, fields, "commencementDate")
	require.Contains(t, fields, "companyCity")
}
