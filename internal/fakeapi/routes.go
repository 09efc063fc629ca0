package fakeapi

import (
	"github.com/jrsteele09/go-internship-client/auth"
	"github.com/jrsteele09/go-internship-client/internship"
	"github.com/jrsteele09/go-internship-client/profile"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteMetrics serves the server's Prometheus metrics.
const RouteMetrics = "/metrics"

func (s *Server) initRoutes() {
	public := s.APIMiddleware()
	protected := s.APIMiddleware(s.RequireBearer)

	// AUTH
	s.RegisterRouteHandler("POST "+auth.RouteRegister, ChainMiddleware(s.RegisterHandler(), public...))
	s.RegisterRouteHandler("POST "+auth.RouteVerifyOTP, ChainMiddleware(s.VerifyOTPHandler(), public...))
	s.RegisterRouteHandler("POST "+auth.RouteResendOTP, ChainMiddleware(s.ResendOTPHandler(), public...))
	s.RegisterRouteHandler("POST "+auth.RouteLogin, ChainMiddleware(s.LoginHandler(), public...))
	s.RegisterRouteHandler("POST "+auth.RouteRefresh, ChainMiddleware(s.RefreshHandler(), public...))
	s.RegisterRouteHandler("POST "+auth.RouteForgotPassword, ChainMiddleware(s.ForgotPasswordHandler(), public...))
	s.RegisterRouteHandler("POST "+auth.RouteResetPassword, ChainMiddleware(s.ResetPasswordHandler(), public...))
	s.RegisterRouteHandler("POST "+auth.RouteLogout, ChainMiddleware(s.LogoutHandler(), protected...))
	s.RegisterRouteHandler("GET "+auth.RouteMe, ChainMiddleware(s.MeHandler(), protected...))

	// PROFILE
	s.RegisterRouteHandler("POST "+profile.RouteProfile, ChainMiddleware(s.CreateProfileHandler(), protected...))
	s.RegisterRouteHandler("GET "+profile.RouteMyProfile, ChainMiddleware(s.MyProfileHandler(), protected...))
	s.RegisterRouteHandler("PATCH "+profile.RouteMyProfileImage, ChainMiddleware(s.ProfileImageHandler(), protected...))

	// INTERNSHIP
	s.RegisterRouteHandler("GET "+internship.RouteActivePeriod, ChainMiddleware(s.ActivePeriodHandler(), protected...))
	s.RegisterRouteHandler("POST "+internship.RouteAssumptionOfDuty, ChainMiddleware(s.SubmitAssumptionOfDutyHandler(), protected...))
	s.RegisterRouteHandler("GET "+internship.RouteMyAssumptionOfDuty, ChainMiddleware(s.MyAssumptionOfDutyHandler(), protected...))
	s.RegisterRouteHandler("GET "+internship.RouteMyAssignment, ChainMiddleware(s.MyAssignmentHandler(), protected...))

	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}
