package auth

import (
	"github.com/jrsteele09/go-internship-client/internal/validate"
)

const minPasswordLength = 8

func (r RegisterRequest) Validate() error {
	f := validate.Fields{}
	f.Email("email", r.Email)
	f.Suffix("email", r.Email, StudentEmailDomain, "Email must be a TTU address")
	f.MinLen("password", r.Password, minPasswordLength)
	f.Required("firstName", r.FirstName)
	f.Required("lastName", r.LastName)
	return f.Err()
}

func (r LoginRequest) Validate() error {
	f := validate.Fields{}
	f.Email("email", r.Email)
	f.Required("password", r.Password)
	return f.Err()
}

func (r VerifyOTPRequest) Validate() error {
	f := validate.Fields{}
	f.Email("email", r.Email)
	f.Len("otp", r.OTP, OTPLength, "OTP must be 6 digits")
	return f.Err()
}

func (r EmailRequest) Validate() error {
	f := validate.Fields{}
	f.Email("email", r.Email)
	return f.Err()
}

func (r ResetPasswordRequest) Validate() error {
	f := validate.Fields{}
	f.Email("email", r.Email)
	f.Len("otp", r.OTP, OTPLength, "OTP must be 6 digits")
	f.MinLen("newPassword", r.NewPassword, minPasswordLength)
	return f.Err()
}
