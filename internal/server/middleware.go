package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fredbugatti/PMS-2026-Residential-sub001/internal/ledger"
	"github.com/go-chi/chi/v5/middleware"
)

// ActorHeader carries the authenticated user as set by the auth layer in
// front of this service.
const ActorHeader = "X-Actor"

type ctxKey int

const actorKey ctxKey = iota

func (s *Server) actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := ledger.Actor(strings.TrimSpace(r.Header.Get(ActorHeader)))
		if a == "" {
			a = s.defaultActor
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, a)))
	})
}

func actorFrom(r *http.Request) ledger.Actor {
	if a, ok := r.Context().Value(actorKey).(ledger.Actor); ok {
		return a
	}
	return ledger.SystemActor
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		ev := s.log.Debug()
		if ww.Status() >= http.StatusInternalServerError {
			ev = s.log.Warn()
		}
		ev.Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
