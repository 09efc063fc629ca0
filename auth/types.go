package auth

import "github.com/jrsteele09/go-internship-client/apiclient"

// Routes of the authentication API.
const (
	RouteRegister       = "/auth/register"
	RouteVerifyOTP      = "/auth/verify-otp"
	RouteResendOTP      = "/auth/resend-otp"
	RouteLogin          = "/auth/login"
	RouteRefresh        = apiclient.RouteRefresh
	RouteForgotPassword = "/auth/forgot-password"
	RouteResetPassword  = "/auth/reset-password"
	RouteLogout         = "/auth/logout"
	RouteMe             = "/auth/me"
)

// StudentEmailDomain is the only address domain accepted at registration.
const StudentEmailDomain = "@ttu.edu.gh"

// OTPLength is the number of digits in a one-time password.
const OTPLength = 6

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest asks for a reset OTP to be sent to Email.
type ForgotPasswordRequest = EmailRequest

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// User is the identity returned by login and /auth/me. HasProfile drives
// the onboarding gate.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	IsVerified bool   `json:"isVerified"`
	HasProfile bool   `json:"hasProfile"`
}

// LoginResponse carries the token pair; RefreshToken may be omitted by the server.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	User         User   `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
