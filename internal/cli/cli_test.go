package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-internship-client/internal/cli"
	"github.com/jrsteele09/go-internship-client/internal/config"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/fakeapitest"
	"github.com/jrsteele09/go-internship-client/internship"
	"github.com/jrsteele09/go-internship-client/tokens"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	env       *fakeapitest.Env
	tokenFile string
}

type result struct {
	code   int
	stdout string
	stderr string
}

func setupTestFixture(t *testing.T) *testFixture {
	return &testFixture{
		env:       fakeapitest.New(t),
		tokenFile: filepath.Join(t.TempDir(), "tokens.json"),
	}
}

func (f *testFixture) run(args ...string) result {
	var stdout, stderr bytes.Buffer
	args = append(args, "--base-url", f.env.Server.URL, "--token-file", f.tokenFile, "--log-level", "disabled")
	code := cli.Execute(context.Background(), config.New(), args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func (f *testFixture) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	res := f.run(args...)
	require.Zero(t, res.code, res.stderr)
	return res.stdout
}

func (f *testFixture) storedAccessToken(t *testing.T) string {
	token, err := tokens.NewFileStore(f.tokenFile).Get(context.Background(), tokens.AccessTokenKey)
	require.NoError(t, err)
	return token
}

func (f *testFixture) login(t *testing.T) {
	f.mustRun(t, "login", "--email", fakeapitest.StudentEmail, "--password", fakeapitest.StudentPassword)
}

var profileArgs = []string{
	"profile", "create",
	"--index-number", "BC/ITS/22/014",
	"--faculty", "Applied Science and Technology",
	"--department", "Computer Science",
	"--programme", "BTech Information Technology",
	"--level", "300",
	"--certificate", "HND",
	"--gender", "MALE",
	"--date-of-birth", "2002-07-19",
	"--phone", "+233201234567",
}

var registrationArgs = []string{
	"internship", "register",
	"--company-name", "Volta River Authority",
	"--company-phone", "+233302664941",
	"--company-email", "hr@vra.com",
	"--company-address", "Electro-Volta House",
	"--company-supervisor", "Mrs. Efua Sarpong",
	"--supervisor-phone", "+233244000111",
	"--company-city", "Accra",
	"--commencement-date", "2026-06-01T08:00:00Z",
}

func TestRootShowsHelp(t *testing.T) {
	f := setupTestFixture(t)
	out := f.mustRun(t)
	require.Contains(t, out, "internctl")
	require.Contains(t, out, "Available Commands")
}

func TestUnknownFlag(t *testing.T) {
	f := setupTestFixture(t)
	res := f.run("whoami", "--nope")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "Error:")
}

func TestOnboardingJourney(t *testing.T) {
	f := setupTestFixture(t)

	out := f.mustRun(t, "register",
		"--email", fakeapitest.StudentEmail,
		"--password", fakeapitest.StudentPassword,
		"--first-name", fakeapitest.StudentFirstName,
		"--last-name", fakeapitest.StudentLastName)
	require.Contains(t, out, "internctl verify")

	res := f.run("login", "--email", fakeapitest.StudentEmail, "--password", fakeapitest.StudentPassword)
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "verify your email")

	f.mustRun(t, "verify", "--email", fakeapitest.StudentEmail, "--otp", f.env.API.OTP(fakeapitest.StudentEmail))

	out = f.mustRun(t, "login", "--email", fakeapitest.StudentEmail, "--password", fakeapitest.StudentPassword)
	require.Contains(t, out, "Welcome, Kwabena Owusu.")
	require.Contains(t, out, "profile create")
	require.NotEmpty(t, f.storedAccessToken(t))

	out = f.mustRun(t, "whoami")
	require.Contains(t, out, fakeapitest.StudentEmail)
	require.Contains(t, out, "profile incomplete")

	res = f.run("internship", "status")
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "Create your profile first")

	out = f.mustRun(t, profileArgs...)
	require.Contains(t, out, "Profile created.")
	require.Contains(t, out, "BC/ITS/22/014")

	out = f.mustRun(t, "whoami", "--json")
	var whoami struct {
		Email      string `json:"email"`
		HasProfile bool   `json:"hasProfile"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &whoami))
	require.Equal(t, fakeapitest.StudentEmail, whoami.Email)
	require.True(t, whoami.HasProfile)

	out = f.mustRun(t, "internship", "period")
	require.Contains(t, out, f.env.API.ActivePeriod().Name)

	res = f.run(registrationArgs...)
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "Unable to retrieve your current location")

	out = f.mustRun(t, append(registrationArgs, "--lat", "7.3349", "--lng", "-2.3123")...)
	require.Contains(t, out, string(internship.RegisteredPendingAssignment))
	require.Contains(t, out, "7.33490, -2.31230")

	out = f.mustRun(t, "internship", "assignment")
	require.Contains(t, out, internship.AssignmentPending)

	require.NoError(t, f.env.API.AssignSupervisor(fakeapitest.StudentEmail, internship.AssignedSupervisor{
		ID:    "sup-1",
		Name:  "Dr. Kwame Boateng",
		Email: "kwame.boateng@ttu.edu.gh",
	}, nil))

	out = f.mustRun(t, "internship", "assignment")
	require.Contains(t, out, "Dr. Kwame Boateng")
	require.NotContains(t, out, "Zone")

	out = f.mustRun(t, "internship", "status", "--json")
	var status map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	require.Equal(t, string(internship.Assigned), status["Status"])

	f.mustRun(t, "logout")
	require.Empty(t, f.storedAccessToken(t))
	require.Contains(t, f.mustRun(t, "whoami"), "Not logged in.")
}

func TestFieldErrorsArePrinted(t *testing.T) {
	f := setupTestFixture(t)
	f.env.SeedStudent(t)
	f.login(t)

	args := append([]string{}, profileArgs...)
	args = append(args, "--phone", "0201234567")
	res := f.run(args...)
	require.Equal(t, 1, res.code)
	require.Contains(t, res.stderr, "phoneNumber: Invalid phone number")
}

func TestExpiredSessionSignsOut(t *testing.T) {
	f := setupTestFixture(t)
	f.env.SeedStudent(t)
	f.login(t)

	f.env.API.ExpireAccessTokens()
	require.Contains(t, f.mustRun(t, "whoami"), "Kwabena")

	f.env.API.ExpireAccessTokens()
	f.env.API.RevokeRefreshTokens()
	require.Contains(t, f.mustRun(t, "whoami"), "Not logged in.")
	require.Empty(t, f.storedAccessToken(t))
}

func TestPasswordReset(t *testing.T) {
	f := setupTestFixture(t)
	f.env.SeedStudent(t)

	f.mustRun(t, "forgot-password", "--email", fakeapitest.StudentEmail)
	f.mustRun(t, "reset-password",
		"--email", fakeapitest.StudentEmail,
		"--otp", f.env.API.OTP(fakeapitest.StudentEmail),
		"--new-password", "Techiman2027")

	res := f.run("login", "--email", fakeapitest.StudentEmail, "--password", fakeapitest.StudentPassword)
	require.Equal(t, 1, res.code)
	f.mustRun(t, "login", "--email", fakeapitest.StudentEmail, "--password", "Techiman2027")
}
