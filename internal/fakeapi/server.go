// Package fakeapi is an in-memory implementation of the internship REST API.
// It backs the integration tests and the cmd/fakeapi binary, and exposes
// controls for exercising token expiry and refresh races.
package fakeapi

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-internship-client/internal/config"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/accesstoken"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/refresh"
	refreshrepofake "github.com/jrsteele09/go-internship-client/internal/fakeapi/refresh/repofake"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/users"
	fakeuserrepo "github.com/jrsteele09/go-internship-client/internal/fakeapi/users/repofake"
	"github.com/jrsteele09/go-internship-client/internship"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	users    users.Repo
	refresh  *refresh.Manager
	tokens   *accesstoken.Creator
	records  *records
	logger   zerolog.Logger
	registry *prometheus.Registry
	requests *prometheus.CounterVec

	gateLock     sync.Mutex
	refreshGate  chan struct{}
	refreshCalls atomic.Int64
}

// Option defines a function type to modify the Server instance.
type Option func(*Server)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithUserRepo replaces the in-memory student store.
func WithUserRepo(repo users.Repo) Option {
	return func(s *Server) {
		s.users = repo
	}
}

func New(cfg config.Config, options ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("[fakeapi.New] config is required")
	}
	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		users:    fakeuserrepo.NewFakeUserRepo(),
		refresh:  refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), cfg),
		tokens:   accesstoken.NewCreator(cfg),
		records:  newRecords(),
		logger:   log.Logger,
		registry: prometheus.NewRegistry(),
	}
	for _, opt := range options {
		opt(s)
	}

	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fakeapi_requests_total",
		Help: "Requests served by the fake internship API, by route and status.",
	}, []string{"route", "status"})
	s.registry.MustRegister(s.requests)

	s.records.setPeriod(defaultPeriod(time.Now()))
	s.initRoutes()
	s.logRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists every registered pattern.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		s.logger.Debug().Str("method", fmt.Sprintf("%-6s", method)).Msg(path)
	}
}

// defaultPeriod is the active period a fresh server starts with.
func defaultPeriod(now time.Time) *internship.Period {
	start := time.Date(now.Year(), time.June, 1, 0, 0, 0, 0, time.UTC)
	return &internship.Period{
		ID:        uuid.New().String(),
		Name:      fmt.Sprintf("%d Industrial Training Period", now.Year()),
		StartDate: start,
		EndDate:   start.AddDate(0, 3, 0),
		IsActive:  true,
	}
}
