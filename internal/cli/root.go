// Package cli implements internctl, a command-line client for the
// internship portal.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-internship-client/apiclient"
	"github.com/jrsteele09/go-internship-client/apierr"
	"github.com/jrsteele09/go-internship-client/auth"
	"github.com/jrsteele09/go-internship-client/internal/config"
	"github.com/jrsteele09/go-internship-client/internship"
	"github.com/jrsteele09/go-internship-client/location"
	"github.com/jrsteele09/go-internship-client/profile"
	"github.com/jrsteele09/go-internship-client/session"
	"github.com/jrsteele09/go-internship-client/tokens"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// skipSetup marks commands that run without a client or session.
const skipSetup = "internctl/skip-setup"

// app holds the flags shared by every command and the services built from them.
type app struct {
	cfg config.Config

	baseURL    string
	tokenFile  string
	logLevel   string
	jsonOutput bool

	// Coordinates given on the command line, if any.
	fix    *location.Coordinates
	logger zerolog.Logger

	client      *apiclient.Client
	sessions    *session.Manager
	profiles    *profile.Tracker
	internships *internship.Tracker
}

// NewRootCommand builds the internctl command tree.
func NewRootCommand(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg}

	root := &cobra.Command{
		Use:           "internctl",
		Short:         "Command-line client for the TTU internship portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations:   map[string]string{skipSetup: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipSetup] == "true" || cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			banner := figure.NewFigure(a.cfg.GetAppName(), "cybermedium", true)
			fmt.Fprintln(cmd.OutOrStdout(), banner.String())
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.baseURL, "base-url", cfg.GetBaseURL(), "internship API base URL")
	flags.StringVar(&a.tokenFile, "token-file", cfg.GetTokenFile(), "where credentials are stored")
	flags.StringVar(&a.logLevel, "log-level", cfg.GetLogLevel(), "log level (debug, info, warn, error, disabled)")
	flags.BoolVar(&a.jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(
		a.newRegisterCommand(),
		a.newVerifyCommand(),
		a.newResendOTPCommand(),
		a.newLoginCommand(),
		a.newLogoutCommand(),
		a.newWhoamiCommand(),
		a.newForgotPasswordCommand(),
		a.newResetPasswordCommand(),
		a.newProfileCommand(),
		a.newInternshipCommand(),
	)
	return root
}

// Execute runs internctl and reports a failure on stderr. It returns the
// process exit code.
func Execute(ctx context.Context, cfg config.Config, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

// setup wires the client stack and restores any stored session.
func (a *app) setup(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", a.logLevel)
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	vault, err := tokens.NewVault(tokens.NewFileStore(a.tokenFile))
	if err != nil {
		return err
	}
	if a.client, err = apiclient.New(a.baseURL, vault,
		apiclient.WithTimeout(a.cfg.GetRequestTimeout()),
		apiclient.WithLogger(a.logger),
	); err != nil {
		return err
	}
	authService, err := auth.NewService(a.client,
		auth.WithResendCooldown(a.cfg.GetOTPResendCooldown()),
		auth.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	if a.sessions, err = session.NewManager(a.client, authService, session.WithLogger(a.logger)); err != nil {
		return err
	}

	profileService, err := profile.NewService(a.client)
	if err != nil {
		return err
	}
	if a.profiles, err = profile.NewTracker(profileService, a.sessions, profile.WithLogger(a.logger)); err != nil {
		return err
	}

	internshipService, err := internship.NewService(a.client)
	if err != nil {
		return err
	}
	recorder := &location.Recorder{Provider: location.ProviderFunc(a.commandLineFix)}
	provider := location.Fallback{LastKnown: recorder, Current: recorder, MaxAge: a.cfg.GetLocationMaxAge()}
	if a.internships, err = internship.NewTracker(internshipService, a.sessions, provider, internship.WithLogger(a.logger)); err != nil {
		return err
	}

	state := a.sessions.Restore(cmd.Context())
	a.logger.Debug().Stringer("phase", state.Phase()).Msg("Session restored")
	return nil
}

func (a *app) commandLineFix(context.Context) (location.Coordinates, error) {
	if a.fix == nil {
		return location.Coordinates{}, location.Unavailable(errNoFix)
	}
	return *a.fix, nil
}

// requireSession fails unless a student is signed in.
func (a *app) requireSession() (*session.AuthSession, error) {
	state := a.sessions.State()
	if !state.IsAuthenticated() {
		return nil, apierr.Wrap(errNotSignedIn, apierr.CodeSessionExpired, "You are not logged in. Run `internctl login` first.", 0)
	}
	return state.Session, nil
}

// requireProfile fails unless the signed-in student has completed onboarding.
func (a *app) requireProfile() error {
	s, err := a.requireSession()
	if err != nil {
		return err
	}
	if !s.HasProfile {
		return apierr.New(apierr.CodeValidation, "Create your profile first with `internctl profile create`.", 0)
	}
	return nil
}
