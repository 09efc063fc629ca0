package internship

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-internship-client/apiclient"
	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/pkg/errors"
)

// Service calls the internship endpoints. The two "my record" lookups treat
// 404 as an empty state.
type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] api client is required")
	}
	return &Service{client: client}, nil
}

func (s *Service) ActivePeriod(ctx context.Context) (*Period, error) {
	var period Period
	if err := s.client.DoJSON(ctx, apiclient.NewRequest(http.MethodGet, RouteActivePeriod), &period); err != nil {
		return nil, err
	}
	return &period, nil
}

func (s *Service) SubmitAssumptionOfDuty(ctx context.Context, req AssumptionOfDutyRequest) (*AssumptionOfDutyRecord, error) {
	httpReq, err := apiclient.JSON(http.MethodPost, RouteAssumptionOfDuty, req)
	if err != nil {
		return nil, apierr.From(err)
	}
	var record AssumptionOfDutyRecord
	if err := s.client.DoJSON(ctx, httpReq, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// MyAssumptionOfDuty returns nil, nil when the student has not registered.
func (s *Service) MyAssumptionOfDuty(ctx context.Context) (*AssumptionOfDutyRecord, error) {
	var record AssumptionOfDutyRecord
	err := s.client.DoJSON(ctx, apiclient.NewRequest(http.MethodGet, RouteMyAssumptionOfDuty), &record)
	if apierr.IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MyAssignment returns a PENDING assignment with no supervisor or zone when
// none has been made.
func (s *Service) MyAssignment(ctx context.Context) (*Assignment, error) {
	var assignment Assignment
	err := s.client.DoJSON(ctx, apiclient.NewRequest(http.MethodGet, RouteMyAssignment), &assignment)
	if apierr.IsStatus(err, http.StatusNotFound) {
		return PendingAssignment(), nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
