package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"github.com/urfave/negroni"
	"golang.org/x/sync/semaphore"
)

const RequestIDHeader = "X-Request-Id"

type ctxKey int

const requestIDKey ctxKey = iota

// RequestIDFromContext returns the id assigned by the request id middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID reuses an inbound X-Request-Id or assigns a fresh uuid, echoes it
// on the response and stores it in the request context.
func requestID() negroni.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	}
}

func accessLog(l logging.Logger) negroni.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		start := time.Now()
		next(w, r)

		status := http.StatusOK
		if rw, ok := w.(negroni.ResponseWriter); ok && rw.Status() != 0 {
			status = rw.Status()
		}

		l.Debug(r.Context(), "request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start).String(),
			"request_id", RequestIDFromContext(r.Context()),
		)
	}
}

// recovery turns a handler panic into a 500. The panic is not propagated:
// a panic that poisoned the store is reported through the store itself.
func recovery(l logging.Logger, rd *render.Render) negroni.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			httpPanicCounter.Inc()
			l.Error(r.Context(), "panic while serving request",
				"panic", fmt.Sprint(rec),
				"path", r.URL.Path,
				"request_id", RequestIDFromContext(r.Context()),
			)
			if rw, ok := w.(negroni.ResponseWriter); ok && rw.Written() {
				return
			}
			rd.JSON(w, http.StatusInternalServerError, internalErrorMessage)
		}()
		next(w, r)
	}
}

// limiter bounds the number of requests being served at once. A request
// waits for a slot until its context ends, then gets 503. Paths in exempt
// bypass the limit. max <= 0 disables limiting.
func limiter(max int, rd *render.Render, exempt ...string) negroni.HandlerFunc {
	if max <= 0 {
		return func(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) { next(w, r) }
	}

	sem := semaphore.NewWeighted(int64(max))
	skip := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		skip[p] = struct{}{}
	}

	return func(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		if _, ok := skip[r.URL.Path]; ok {
			next(w, r)
			return
		}
		if err := sem.Acquire(r.Context(), 1); err != nil {
			httpRejectedCounter.Inc()
			rd.JSON(w, http.StatusServiceUnavailable, "server busy")
			return
		}
		defer sem.Release(1)
		next(w, r)
	}
}

// instrument records per-route metrics. It runs as mux middleware so the
// matched route template is known.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		start := time.Now()
		next.ServeHTTP(w, r)

		status := http.StatusOK
		if rw, ok := w.(negroni.ResponseWriter); ok && rw.Status() != 0 {
			status = rw.Status()
		}
		httpRequestCounter.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func bodyLimit(n int64) negroni.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, n)
		}
		next(w, r)
	}
}
