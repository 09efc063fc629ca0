package fakeapi

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-internship-client/profile"
)

const maxImageBytes = 5 << 20

func (s *Server) CreateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		student, ok := s.currentStudent(w, r)
		if !ok {
			return
		}
		var req profile.CreateProfileRequest
		if !decode(w, r, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}

		now := time.Now().UTC()
		p := &profile.StudentProfile{
			CreateProfileRequest: req,
			ID:                   uuid.New().String(),
			UserID:               student.ID,
			FirstName:            student.FirstName,
			LastName:             student.LastName,
			Email:                student.Email,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if !s.records.putProfile(p, true) {
			writeError(w, http.StatusConflict, "PROFILE_EXISTS", "Your profile has already been created.", nil)
			return
		}
		if err := s.users.SetHasProfile(student.ID, true); err != nil {
			s.logger.Err(err).Msg("Failed to flag profile on student")
		}
		writeJSON(w, http.StatusCreated, p)
	}
}

func (s *Server) MyProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.records.profile(claimsFrom(r.Context()).UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "PROFILE_NOT_FOUND", "", nil)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// ProfileImageHandler accepts a multipart upload with a single JPEG part.
func (s *Server) ProfileImageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.records.profile(claimsFrom(r.Context()).UserID)
		if err != nil {
			writeError(w, http.StatusNotFound, "PROFILE_NOT_FOUND", "", nil)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
		file, header, err := r.FormFile(profile.ImageField)
		if err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "An image file is required.", map[string]string{profile.ImageField: "Required"})
			return
		}
		defer file.Close()
		if ct := header.Header.Get("Content-Type"); ct != profile.ImageContentType {
			writeError(w, http.StatusUnprocessableEntity, "UNSUPPORTED_IMAGE", "Only JPEG images are accepted.", map[string]string{profile.ImageField: "Must be a JPEG image"})
			return
		}
		if _, err := io.Copy(io.Discard, file); err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "", nil)
			return
		}

		p.ProfileImageURL = "/uploads/" + uuid.New().String() + ".jpg"
		p.UpdatedAt = time.Now().UTC()
		s.records.putProfile(p, false)
		writeJSON(w, http.StatusOK, p)
	}
}
