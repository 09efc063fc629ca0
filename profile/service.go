// Package profile manages the student profile created during onboarding.
package profile

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-internship-client/apiclient"
	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/pkg/errors"
)

type Service struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] api client is required")
	}
	return &Service{client: client}, nil
}

func (s *Service) Create(ctx context.Context, req CreateProfileRequest) (*StudentProfile, error) {
	httpReq, err := apiclient.JSON(http.MethodPost, RouteProfile, req)
	if err != nil {
		return nil, apierr.From(err)
	}
	return s.do(ctx, httpReq)
}

func (s *Service) Mine(ctx context.Context) (*StudentProfile, error) {
	return s.do(ctx, apiclient.NewRequest(http.MethodGet, RouteMyProfile))
}

// UpdateImage uploads a JPEG as the profile picture.
func (s *Service) UpdateImage(ctx context.Context, jpeg []byte) (*StudentProfile, error) {
	httpReq, err := apiclient.Multipart(http.MethodPatch, RouteMyProfileImage, ImageField, ImageFileName, ImageContentType, jpeg)
	if err != nil {
		return nil, apierr.From(err)
	}
	return s.do(ctx, httpReq)
}

func (s *Service) do(ctx context.Context, req apiclient.Request) (*StudentProfile, error) {
	var p StudentProfile
	if err := s.client.DoJSON(ctx, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
