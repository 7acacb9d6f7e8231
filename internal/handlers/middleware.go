package handlers

import (
	"context"
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"focus_forge/internal/auth"
	"focus_forge/internal/ratelimit"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

type requestInfoKey struct{}

// requestInfo is filled in as the request moves through the chain.
type requestInfo struct {
	id     string
	userID string
}

// requestLogger tags each request with an ID and logs it once finished.
func requestLogger(log *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		info := &requestInfo{id: requestID}
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestInfoKey{}, info)))

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		log.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"request_id", info.id,
			"user_id", info.userID,
		)
	})
}

func recoverer(log *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Errorw("panic serving request", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the first X-Forwarded-For hop, then RemoteAddr.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type rateRule struct {
	bucket string
	limit  int
	window time.Duration
}

// rateLimit counts requests per key in fixed windows. Backend errors let
// the request through.
func rateLimit(log *zap.SugaredLogger, limiter ratelimit.Limiter, rule rateRule, key func(*http.Request) string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		op := "handlers.rateLimit"

		res, err := limiter.Allow(r.Context(), rule.bucket+":"+key(r), rule.limit, rule.window)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "op", op, "bucket", rule.bucket, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth verifies the bearer token and stores the user ID in the
// request context.
func requireAuth(verifier *auth.Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := verifier.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			message := "invalid or expired token"
			if errors.Is(err, auth.ErrMissingToken) {
				message = "missing bearer token"
			}
			w.Header().Set("WWW-Authenticate", `Bearer realm="focus_forge"`)
			writeError(w, http.StatusUnauthorized, message)
			return
		}

		if info, ok := r.Context().Value(requestInfoKey{}).(*requestInfo); ok {
			info.userID = claims.Subject
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), claims.Subject)))
	})
}
