package fakeapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-internship-client/internship"
)

func (s *Server) ActivePeriodHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period := s.records.activePeriod()
		if period == nil {
			writeError(w, http.StatusNotFound, "NO_ACTIVE_PERIOD", "There is no active internship period.", nil)
			return
		}
		writeJSON(w, http.StatusOK, period)
	}
}

func (s *Server) SubmitAssumptionOfDutyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := claimsFrom(r.Context()).UserID
		var req internship.AssumptionOfDutyRequest
		if !decode(w, r, &req) {
			return
		}
		if err := req.Registration.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}
		if period := s.records.activePeriod(); period == nil || period.ID != req.PeriodID {
			writeError(w, http.StatusBadRequest, "INVALID_PERIOD", "Registration is not open for this period.",
				map[string]string{"periodId": "Not the active period"})
			return
		}
		if _, err := s.records.profile(userID); err != nil {
			writeError(w, http.StatusForbidden, "PROFILE_REQUIRED", "Create your profile before registering.", nil)
			return
		}

		now := time.Now().UTC()
		record := &internship.AssumptionOfDutyRecord{
			AssumptionOfDutyRequest: req,
			ID:                      uuid.New().String(),
			StudentID:               userID,
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		assignment, _ := s.records.assignment(userID)
		record.Status = internship.DeriveStatus(record, assignment)
		if !s.records.createDuty(record) {
			writeError(w, http.StatusConflict, "ALREADY_REGISTERED", "You have already registered for this period.", nil)
			return
		}
		writeJSON(w, http.StatusCreated, record)
	}
}

func (s *Server) MyAssumptionOfDutyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := s.records.duty(claimsFrom(r.Context()).UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "NOT_REGISTERED", "", nil)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func (s *Server) MyAssignmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignment, err := s.records.assignment(claimsFrom(r.Context()).UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "NOT_ASSIGNED", "", nil)
			return
		}
		writeJSON(w, http.StatusOK, assignment)
	}
}
