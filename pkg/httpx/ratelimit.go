package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/republichq/republic/pkg/slogx"
)

// RateLimit describes a token bucket: Requests per Window, refilled evenly,
// with up to Burst requests admitted back to back.
type RateLimit struct {
	Requests int
	Window   time.Duration
	Burst    int
}

// Limit profiles. Each can be overridden with RATELIMIT_<NAME>_REQUESTS,
// RATELIMIT_<NAME>_WINDOW_SEC and RATELIMIT_<NAME>_BURST.
var (
	// StrictLimit guards credential endpoints: register, login, password reset.
	StrictLimit = RateLimit{Requests: 5, Window: time.Minute, Burst: 5}

	// SessionLimit applies to logged-in account operations.
	SessionLimit = RateLimit{Requests: 30, Window: time.Minute, Burst: 30}

	// PublicLimit applies to anonymous tracking beacons.
	PublicLimit = RateLimit{Requests: 600, Window: time.Minute, Burst: 120}
)

func init() {
	StrictLimit = RateLimitFromEnv("STRICT", StrictLimit)
	SessionLimit = RateLimitFromEnv("SESSION", SessionLimit)
	PublicLimit = RateLimitFromEnv("PUBLIC", PublicLimit)
}

// RateLimitFromEnv overlays positive integer values from the environment on
// def. Malformed or non-positive values are ignored.
func RateLimitFromEnv(name string, def RateLimit) RateLimit {
	out := def
	if n, ok := positiveEnv("RATELIMIT_" + name + "_REQUESTS"); ok {
		out.Requests = n
	}
	if n, ok := positiveEnv("RATELIMIT_" + name + "_WINDOW_SEC"); ok {
		out.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv("RATELIMIT_" + name + "_BURST"); ok {
		out.Burst = n
	}
	return out
}

func positiveEnv(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyFunc groups requests into buckets. An empty key bypasses limiting.
type KeyFunc func(*http.Request) string

// ClientIP honours X-Forwarded-For and X-Real-IP before RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SessionUser keys on the user id placed in the context by RequireSession.
func SessionUser(r *http.Request) string {
	if id, ok := UserIDFromContext(r.Context()); ok {
		return "u" + strconv.FormatInt(id, 10)
	}
	return ""
}

// FormField keys on a submitted form value, typically the email.
func FormField(name string) KeyFunc {
	return func(r *http.Request) string {
		if err := r.ParseForm(); err != nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(r.FormValue(name)))
	}
}

// Keys joins the non-empty keys of fns with ":".
func Keys(fns ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(fns))
		for _, fn := range fns {
			if k := fn(r); k != "" {
				parts = append(parts, k)
			}
		}
		return strings.Join(parts, ":")
	}
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type buckets struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	byKey     map[string]*bucket
	lastSweep time.Time
}

func (b *buckets) get(key string, now time.Time) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastSweep) > b.idle {
		for k, bk := range b.byKey {
			if now.Sub(bk.lastSeen) > b.idle {
				delete(b.byKey, k)
			}
		}
		b.lastSweep = now
	}

	bk, ok := b.byKey[key]
	if !ok {
		bk = &bucket{lim: rate.NewLimiter(b.limit, b.burst)}
		b.byKey[key] = bk
	}
	bk.lastSeen = now
	return bk.lim
}

// RateLimitBy rejects requests with 429 once the bucket for key(r) is empty.
func RateLimitBy(rl RateLimit, key KeyFunc) Middleware {
	b := &buckets{
		limit:     rate.Limit(float64(rl.Requests) / rl.Window.Seconds()),
		burst:     rl.Burst,
		idle:      max(rl.Window, 5*time.Minute),
		byKey:     make(map[string]*bucket),
		lastSweep: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			lim := b.get(k, time.Now())
			if lim.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := lim.Reserve()
			wait := res.Delay()
			res.Cancel()
			retry := max(int(wait.Seconds()), 1)

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", k,
				"path", r.URL.Path,
				"retry_after", retry,
			)

			w.Header().Set("Retry-After", strconv.Itoa(retry))
			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

func RateLimitByIP(rl RateLimit) Middleware { return RateLimitBy(rl, ClientIP) }

// RateLimitByUser falls back to the client IP for anonymous requests.
func RateLimitByUser(rl RateLimit) Middleware {
	return RateLimitBy(rl, Keys(SessionUser, ClientIP))
}

func RateLimitByIPAndField(rl RateLimit, field string) Middleware {
	return RateLimitBy(rl, Keys(ClientIP, FormField(field)))
}
