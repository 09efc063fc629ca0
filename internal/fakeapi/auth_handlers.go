package fakeapi

import (
	"crypto/rand"
	"math/big"
	"net/http"
	"strings"
	"time"

	interrors "github.com/jrsteele09/go-internship-client/internal/errors"

	"github.com/jrsteele09/go-internship-client/auth"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/users"
)

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterRequest
		if !decode(w, r, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}
		if _, err := s.users.GetByEmail(req.Email); err == nil {
			writeError(w, http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists.", nil)
			return
		}

		hash, err := users.HashPassword(req.Password)
		if err != nil {
			s.logger.Err(err).Msg("Failed to hash password")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "", nil)
			return
		}
		student := &users.Student{
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			DateJoined:   time.Now(),
		}
		if err := s.users.Upsert(student); err != nil {
			s.logger.Err(err).Msg("Failed to store student")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "", nil)
			return
		}
		s.sendOTP(req.Email)
		writeMessage(w, http.StatusCreated, "Registration successful. Check your email for the verification code.")
	}
}

func (s *Server) VerifyOTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.VerifyOTPRequest
		if !decode(w, r, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}
		if !s.records.consumeOTP(req.Email, req.OTP) {
			writeError(w, http.StatusBadRequest, "INVALID_OTP", "The code is invalid or has expired.", nil)
			return
		}
		if err := s.users.SetVerified(req.Email, true); err != nil {
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "", nil)
			return
		}
		writeMessage(w, http.StatusOK, "Email verified. You can now log in.")
	}
}

func (s *Server) ResendOTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.EmailRequest
		if !decode(w, r, &req) {
			return
		}
		student, err := s.users.GetByEmail(req.Email)
		if err != nil {
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "No account uses this email.", nil)
			return
		}
		if student.Verified {
			writeError(w, http.StatusConflict, "ALREADY_VERIFIED", "This account is already verified.", nil)
			return
		}
		s.sendOTP(req.Email)
		writeMessage(w, http.StatusOK, "A new verification code has been sent.")
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if !decode(w, r, &req) {
			return
		}
		student, err := s.users.GetByEmail(req.Email)
		if err != nil || !student.CheckPassword(req.Password) {
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Incorrect email or password.", nil)
			return
		}
		if !student.Verified {
			writeError(w, http.StatusForbidden, "ACCOUNT_NOT_VERIFIED", "Please verify your email before logging in.", nil)
			return
		}

		access, err := s.tokens.Create(student)
		if err != nil {
			s.logger.Err(err).Msg("Failed to create access token")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "", nil)
			return
		}
		refreshToken, err := s.refresh.Create(student.ID)
		if err != nil {
			s.logger.Err(err).Msg("Failed to create refresh token")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "", nil)
			return
		}
		student.LastLogin = time.Now()
		_ = s.users.Upsert(student)

		writeJSON(w, http.StatusOK, auth.LoginResponse{
			AccessToken:  access,
			RefreshToken: refreshToken,
			User:         toUser(student),
		})
	}
}

// RefreshHandler exchanges a refresh token for a new access token. The
// refresh token itself is not rotated.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.refreshCalls.Add(1)
		if gate := s.currentGate(); gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		var req auth.RefreshRequest
		if !decode(w, r, &req) {
			return
		}
		stored, err := s.refresh.Get(req.RefreshToken)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "", nil)
			return
		}
		student, err := s.users.GetByID(stored.UserID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "", nil)
			return
		}
		access, err := s.tokens.Create(student)
		if err != nil {
			s.logger.Err(err).Msg("Failed to create access token")
			writeError(w, http.StatusInternalServerError, "INTERNAL", "", nil)
			return
		}
		writeJSON(w, http.StatusOK, auth.RefreshResponse{AccessToken: access})
	}
}

// ForgotPasswordHandler answers the same way whether or not the account exists.
func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.ForgotPasswordRequest
		if !decode(w, r, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}
		if _, err := s.users.GetByEmail(req.Email); err == nil {
			s.sendOTP(req.Email)
		} else if !interrors.Is(err, interrors.ErrNotFound) {
			s.logger.Err(err).Msg("Failed to look up student")
		}
		writeMessage(w, http.StatusOK, "If an account exists for this email, a reset code has been sent.")
	}
}

func (s *Server) ResetPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.ResetPasswordRequest
		if !decode(w, r, &req) {
			return
		}
		if err := req.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}
		student, err := s.users.GetByEmail(req.Email)
		if err != nil || !s.records.consumeOTP(req.Email, req.OTP) {
			writeError(w, http.StatusBadRequest, "INVALID_OTP", "The code is invalid or has expired.", nil)
			return
		}
		hash, err := users.HashPassword(req.NewPassword)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "INTERNAL", "", nil)
			return
		}
		student.PasswordHash = hash
		_ = s.users.Upsert(student)
		s.refresh.RevokeUser(student.ID)
		writeMessage(w, http.StatusOK, "Password updated. Please log in.")
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r.Context())
		s.tokens.Revoke(claims)
		s.refresh.RevokeUser(claims.UserID)
		writeMessage(w, http.StatusOK, "Logged out.")
	}
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		student, ok := s.currentStudent(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toUser(student))
	}
}

// currentStudent loads the account behind the request's access token.
func (s *Server) currentStudent(w http.ResponseWriter, r *http.Request) (*users.Student, bool) {
	claims := claimsFrom(r.Context())
	student, err := s.users.GetByID(claims.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "", nil)
		return nil, false
	}
	return student, true
}

// sendOTP stands in for emailing a code: it is stored and logged.
func (s *Server) sendOTP(email string) {
	otp := generateOTP(s.config.GetOTPLength())
	s.records.setOTP(email, otp)
	s.logger.Info().Str("email", email).Str("otp", otp).Msg("OTP issued")
}

func generateOTP(length int) string {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			n = big.NewInt(int64(i))
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits)
}

func toUser(s *users.Student) auth.User {
	return auth.User{
		ID:         s.ID,
		Email:      s.Email,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		IsVerified: s.Verified,
		HasProfile: s.HasProfile,
	}
}
