package handler

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Shivanand-hulikatti/sports-academy/internal/auth"
	"github.com/Shivanand-hulikatti/sports-academy/internal/metrics"
	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

type ctxKey int

const (
	claimsKey ctxKey = iota
	roleKey
	peerKey
)

// ClaimsFrom returns the verified claims stored by RequireToken.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

// RoleFrom returns the role resolved by RequireRole.
func RoleFrom(ctx context.Context) model.Role {
	role, _ := ctx.Value(roleKey).(model.Role)
	return role
}

func (h *Handler) entry(r *http.Request) *logrus.Entry {
	return h.log.WithFields(logrus.Fields{
		"request_id": chimiddleware.GetReqID(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
	})
}

// ─── Authorization chain ──────────────────────────────────────────────────────

// RequireToken verifies the bearer token and stores its claims in the context.
func (h *Handler) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			h.reject(w, r, http.StatusUnauthorized, auth.ErrUnauthorized, nil)
			return
		}
		claims, err := h.tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			h.reject(w, r, http.StatusUnauthorized, auth.ErrUnauthorized, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// RequireRole admits callers whose stored role is one of roles. It must run
// after RequireToken.
func (h *Handler) RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				h.reject(w, r, http.StatusUnauthorized, auth.ErrUnauthorized, nil)
				return
			}
			role, err := h.roles.RoleOf(r.Context(), claims.Email)
			if err != nil {
				h.fail(w, r, err, "")
				return
			}
			if !role.IsAny(roles...) {
				h.reject(w, r, http.StatusForbidden, auth.ErrForbidden, nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), roleKey, role)))
		})
	}
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, status int, reason, cause error) {
	label := "unauthorized"
	if status == http.StatusForbidden {
		label = "forbidden"
	}
	metrics.AuthRejected(label)
	e := h.entry(r).WithField("reason", label)
	if cause != nil {
		e = e.WithError(cause)
	}
	e.Info("request rejected")
	writeError(w, status, reason.Error())
}

// ─── Access log ───────────────────────────────────────────────────────────────

// Logger writes one structured line per request.
func Logger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.WithFields(logrus.Fields{
				"request_id":  chimiddleware.GetReqID(r.Context()),
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(start).Milliseconds(),
				"remote":      r.RemoteAddr,
			}).Info("http request")
		})
	}
}

// ─── CORS ─────────────────────────────────────────────────────────────────────

// CORS allows the configured origins; "*" allows any.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || allowed[origin]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
				w.Header().Set("Access-Control-Max-Age", "3600")
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ─── Rate limiting ────────────────────────────────────────────────────────────

// PeerAddr records the transport-level peer address before RealIP replaces
// RemoteAddr with a client-supplied forwarding header.
func PeerAddr(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), peerKey, r.RemoteAddr)))
	})
}

func peerHost(r *http.Request) string {
	addr, ok := r.Context().Value(peerKey).(string)
	if !ok {
		addr = r.RemoteAddr
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// RateLimiter keeps one token bucket per peer IP. Forwarding headers are
// ignored, so behind a reverse proxy every client shares the proxy's bucket.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter allows perSecond requests per client with the given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[key]
	if !ok {
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

// Handler rejects requests over the limit with 429.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter(peerHost(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Prune drops all buckets once the map grows past max.
func (rl *RateLimiter) Prune(max int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.limiters) > max {
		rl.limiters = make(map[string]*rate.Limiter)
	}
}
