package cli

import (
	"fmt"
	"io"

	"github.com/jrsteele09/go-internship-client/auth"
	"github.com/spf13/cobra"
)

func (a *app) newRegisterCommand() *cobra.Command {
	var req auth.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account with a TTU student email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.sessions.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), resp.Message)
			fmt.Fprintf(cmd.OutOrStdout(), "Next: internctl verify --email %s --otp <code>\n", req.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "student email ending in "+auth.StudentEmailDomain)
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	return cmd
}

func (a *app) newVerifyCommand() *cobra.Command {
	var req auth.VerifyOTPRequest
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an account with the emailed one-time code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.sessions.VerifyOTP(cmd.Context(), req)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.OTP, "otp", "", "6-digit code")
	return cmd
}

func (a *app) newResendOTPCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resend-otp",
		Short: "Send a new verification code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.sessions.ResendOTP(cmd.Context(), email)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func (a *app) newLoginCommand() *cobra.Command {
	var req auth.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := a.sessions.Login(cmd.Context(), req)
			if err != nil {
				return err
			}
			s := state.Session
			return a.emit(cmd.OutOrStdout(), s, func(w io.Writer) {
				fmt.Fprintf(w, "Welcome, %s %s.\n", s.FirstName, s.LastName)
				if !s.HasProfile {
					printMessage(w, "Your profile is incomplete. Run `internctl profile create` to finish onboarding.")
				}
			})
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	return cmd
}

func (a *app) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.sessions.Logout(cmd.Context())
			printMessage(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (a *app) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := a.sessions.State()
			return a.emit(cmd.OutOrStdout(), state.Session, func(w io.Writer) {
				if !state.IsAuthenticated() {
					printMessage(w, "Not logged in.")
					return
				}
				s := state.Session
				field(w, "Name", s.FirstName+" "+s.LastName)
				field(w, "Email", s.Email)
				field(w, "Status", state.Phase().String())
			})
		},
	}
}

func (a *app) newForgotPasswordCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Email a password reset code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.sessions.ForgotPassword(cmd.Context(), email)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func (a *app) newResetPasswordCommand() *cobra.Command {
	var req auth.ResetPasswordRequest
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password using a reset code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.sessions.ResetPassword(cmd.Context(), req)
			if err != nil {
				return err
			}
			printMessage(cmd.OutOrStdout(), resp.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.OTP, "otp", "", "6-digit reset code")
	cmd.Flags().StringVar(&req.NewPassword, "new-password", "", "new password")
	return cmd
}
