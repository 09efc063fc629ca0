package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jrsteele09/go-internship-client/internal/utils"
	"github.com/jrsteele09/go-internship-client/internship"
	"github.com/jrsteele09/go-internship-client/location"
	"github.com/spf13/cobra"
)

func (a *app) newInternshipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "internship",
		Short: "Register for an internship and follow your assignment",
	}
	cmd.AddCommand(
		a.newInternshipStatusCommand(),
		a.newInternshipPeriodCommand(),
		a.newInternshipRegisterCommand(),
		a.newInternshipAssignmentCommand(),
	)
	return cmd
}

func (a *app) newInternshipStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your registration and assignment status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireProfile(); err != nil {
				return err
			}
			state := a.internships.Load(cmd.Context())
			if state.Err != nil {
				return state.Err
			}
			return a.emit(cmd.OutOrStdout(), state, func(w io.Writer) {
				field(w, "Status", string(state.Status))
				if state.Record != nil {
					field(w, "Company", state.Record.CompanyName)
					field(w, "City", state.Record.CompanyCity)
					field(w, "Commencement", state.Record.CommencementDate)
				}
				printAssignment(w, state.Assignment)
			})
		},
	}
}

func (a *app) newInternshipPeriodCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "period",
		Short: "Show the active internship period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.requireSession(); err != nil {
				return err
			}
			period, err := a.internships.FetchActivePeriod(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), period, func(w io.Writer) {
				field(w, "Period", period.Name)
				field(w, "Starts", period.StartDate.Format(time.DateOnly))
				field(w, "Ends", period.EndDate.Format(time.DateOnly))
			})
		},
	}
}

func (a *app) newInternshipRegisterCommand() *cobra.Command {
	var (
		reg      internship.Registration
		lat, lng float64
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Submit your assumption of duty for the active period",
		Long: `Submit your assumption of duty for the active period.

Your current position is recorded with the submission; pass it with --lat and --lng.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireProfile(); err != nil {
				return err
			}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				a.fix = &location.Coordinates{Latitude: lat, Longitude: lng, At: time.Now()}
			}
			record, err := a.internships.SubmitRegistration(cmd.Context(), reg)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), record, func(w io.Writer) {
				printMessage(w, "Assumption of duty submitted.")
				field(w, "Status", string(record.Status))
				field(w, "Company", record.CompanyName)
				field(w, "Location", fmt.Sprintf("%.5f, %.5f", record.Latitude, record.Longitude))
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&reg.CompanyName, "company-name", "", "company name")
	flags.StringVar(&reg.CompanyPhone, "company-phone", "", "company phone, e.g. +233302123456")
	flags.StringVar(&reg.CompanyEmail, "company-email", "", "company email")
	flags.StringVar(&reg.CompanyAddress, "company-address", "", "company address")
	flags.StringVar(&reg.CompanySupervisor, "company-supervisor", "", "name of your supervisor at the company")
	flags.StringVar(&reg.SupervisorPhone, "supervisor-phone", "", "supervisor phone")
	flags.StringVar(&reg.CompanyCity, "company-city", "", "city")
	flags.StringVar(&reg.CommencementDate, "commencement-date", "", "start date, e.g. 2026-06-01T08:00:00Z")
	flags.Float64Var(&lat, "lat", 0, "current latitude")
	flags.Float64Var(&lng, "lng", 0, "current longitude")
	return cmd
}

func (a *app) newInternshipAssignmentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assignment",
		Short: "Show your supervisor and zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireProfile(); err != nil {
				return err
			}
			assignment, err := a.internships.RefreshAssignment(cmd.Context())
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), assignment, func(w io.Writer) {
				printAssignment(w, assignment)
			})
		},
	}
}

func printAssignment(w io.Writer, assignment *internship.Assignment) {
	if assignment == nil {
		return
	}
	field(w, "Assignment", assignment.AssignmentStatus)
	supervisor := utils.ValueOr(assignment.Supervisor, internship.AssignedSupervisor{Name: "Not yet assigned"})
	field(w, "Supervisor", supervisor.Name)
	field(w, "Supervisor email", supervisor.Email)
	field(w, "Supervisor phone", supervisor.Phone)
	zone := utils.Value(assignment.Zone)
	field(w, "Zone", zone.Name)
	field(w, "Region", zone.Region)
}
