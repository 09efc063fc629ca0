package fakeapi

import (
	"context"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	interrors "github.com/jrsteele09/go-internship-client/internal/errors"
	"github.com/jrsteele09/go-internship-client/internal/fakeapi/accesstoken"
)

type contextKey string

const claimsKey contextKey = "claims"

func ChainMiddleware(routeFunction http.HandlerFunc, mw ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	chainedHandler := routeFunction
	// Apply middleware in reverse order
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

// APIMiddleware is applied to every route; extra middleware runs innermost.
func (s *Server) APIMiddleware(mw ...func(http.HandlerFunc) http.HandlerFunc) []func(http.HandlerFunc) http.HandlerFunc {
	chainedMiddleWare := []func(http.HandlerFunc) http.HandlerFunc{
		s.MetricsMiddleware,
		s.LoggingMiddleware,
		s.RecoverMiddleware,
	}
	return append(chainedMiddleWare, mw...)
}

// statusRecorder captures the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) MetricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.requests.WithLabelValues(r.Pattern, strconv.Itoa(rec.status)).Inc()
	}
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.env != "DEV" {
			next(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("Request")
	}
}

func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().Interface("panic", rec).Str("stack", string(debug.Stack())).Msg("Recovered from panic")
				writeError(w, http.StatusInternalServerError, "INTERNAL", "", nil)
			}
		}()
		next(w, r)
	}
}

// RequireBearer rejects requests without a valid access token and stores
// the token claims in the request context.
func (s *Server) RequireBearer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			s.logger.Debug().Err(interrors.ErrNoAccessToken).Str("path", r.URL.Path).Msg("Rejected request")
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "", nil)
			return
		}
		claims, err := s.tokens.Parse(raw)
		if err != nil {
			s.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected access token")
			writeError(w, http.StatusUnauthorized, "TOKEN_EXPIRED", "", nil)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

func claimsFrom(ctx context.Context) *accesstoken.Claims {
	claims, _ := ctx.Value(claimsKey).(*accesstoken.Claims)
	return claims
}
