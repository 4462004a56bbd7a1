package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/metrics"
	"github.com/sandevgo/sejarahbot/pkg/log"
)

type identityKey struct{}

// IdentityFromCtx returns the requester set by Authenticate.
func IdentityFromCtx(ctx context.Context) (core.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(core.Identity)
	return id, ok
}

// Authenticate rejects requests without a valid bearer token.
func Authenticate(authority core.SessionAuthority) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := authority.VerifyToken(r.Header.Get("Authorization"))
			if err != nil {
				log.FromCtx(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("unauthenticated request")
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Token tidak valid"})
				return
			}
			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestLogger logs one line per request and records it in the collector.
func requestLogger(mc *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			logger := log.FromCtx(r.Context()).With().
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Logger()
			ctx := logger.WithContext(r.Context())

			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			elapsed := time.Since(start)
			mc.ObserveHTTP(r.Method, route, strconv.Itoa(status), elapsed)

			logger.Debug().
				Str("method", r.Method).
				Str("route", route).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("http request")
		})
	}
}
