package cli

import (
	"io"
	"os"

	"github.com/jrsteele09/go-internship-client/profile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or create the student profile",
	}
	cmd.AddCommand(a.newProfileShowCommand(), a.newProfileCreateCommand(), a.newProfileImageCommand())
	return cmd
}

func (a *app) newProfileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireProfile(); err != nil {
				return err
			}
			state := a.profiles.Load(cmd.Context())
			if state.Err != nil {
				return state.Err
			}
			return a.emit(cmd.OutOrStdout(), state.Profile, func(w io.Writer) {
				printProfile(w, state.Profile)
			})
		},
	}
}

func (a *app) newProfileCreateCommand() *cobra.Command {
	var (
		req                              profile.CreateProfileRequest
		session, certificateType, gender string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Complete onboarding by creating your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Session = profile.Session(session)
			req.CertificateType = profile.CertificateType(certificateType)
			req.Gender = profile.Gender(gender)
			p, err := a.profiles.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), p, func(w io.Writer) {
				printMessage(w, "Profile created.")
				printProfile(w, p)
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&req.IndexNumber, "index-number", "", "student index number")
	flags.StringVar(&req.Faculty, "faculty", "", "faculty")
	flags.StringVar(&req.Department, "department", "", "department")
	flags.StringVar(&req.Programme, "programme", "", "programme of study")
	flags.StringVar(&req.Level, "level", "", "level, e.g. 300")
	flags.StringVar(&session, "session", string(profile.SessionRegular), "Regular, Weekend or Evening")
	flags.StringVar(&certificateType, "certificate", string(profile.CertificateHND), "certificate type")
	flags.StringVar(&gender, "gender", "", "MALE, FEMALE or OTHER")
	flags.StringVar(&req.DateOfBirth, "date-of-birth", "", "YYYY-MM-DD")
	flags.StringVar(&req.PhoneNumber, "phone", "", "phone number, e.g. +233201234567")
	return cmd
}

func (a *app) newProfileImageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "image <photo.jpg>",
		Short: "Upload a JPEG profile picture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireProfile(); err != nil {
				return err
			}
			jpeg, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "reading %s", args[0])
			}
			p, err := a.profiles.UpdateImage(cmd.Context(), jpeg)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), p, func(w io.Writer) {
				field(w, "Image", p.ProfileImageURL)
			})
		},
	}
}

func printProfile(w io.Writer, p *profile.StudentProfile) {
	field(w, "Name", p.FirstName+" "+p.LastName)
	field(w, "Email", p.Email)
	field(w, "Index number", p.IndexNumber)
	field(w, "Faculty", p.Faculty)
	field(w, "Department", p.Department)
	field(w, "Programme", p.Programme)
	field(w, "Level", p.Level)
	field(w, "Session", string(p.Session))
	field(w, "Certificate", string(p.CertificateType))
	field(w, "Gender", string(p.Gender))
	field(w, "Date of birth", p.DateOfBirth)
	field(w, "Phone", p.PhoneNumber)
	field(w, "Image", p.ProfileImageURL)
}
