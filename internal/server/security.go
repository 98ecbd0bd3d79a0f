package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/osse101/mobmoney/internal/logger"
)

// AuthMiddleware validates API key
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range PublicPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			providedKey := r.Header.Get(HeaderAPIKey)

			// Use constant time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip, ClassifyTraffic(r.URL.Path))

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware limits request body size
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// Traffic is the request budget a route draws from
type Traffic string

const (
	TrafficDeathIngest Traffic = "death_ingest"
	TrafficAdmin       Traffic = "admin"
)

// ClassifyTraffic maps a request path to its budget
func ClassifyTraffic(path string) Traffic {
	if path == DeathIngestPath {
		return TrafficDeathIngest
	}
	return TrafficAdmin
}

// SuspiciousActivityDetector counts requests and failed logins per client IP
// within a fixed window
type SuspiciousActivityDetector struct {
	mu             sync.Mutex
	failedAuthByIP map[string]int
	requests       map[Traffic]map[string]int
	budgets        map[Traffic]int
	windowStart    time.Time
	now            func() time.Time
}

// NewSuspiciousActivityDetector creates a detector. now may be nil.
func NewSuspiciousActivityDetector(now func() time.Time) *SuspiciousActivityDetector {
	if now == nil {
		now = time.Now
	}
	s := &SuspiciousActivityDetector{
		budgets: map[Traffic]int{
			TrafficDeathIngest: MaxDeathEventsPerWindow,
			TrafficAdmin:       MaxAdminRequestsPerWindow,
		},
		now: now,
	}
	s.reset()
	return s
}

// RecordFailedAuth records a failed authentication attempt
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string, traffic Traffic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetIfWindowPassed()
	s.failedAuthByIP[ip]++

	if s.failedAuthByIP[ip] >= FailedAuthAlertCount {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"traffic", traffic,
			"count", s.failedAuthByIP[ip])
	}
}

// RecordRequest counts a request against its traffic budget and reports
// false once ip has spent that budget for the current window
func (s *SuspiciousActivityDetector) RecordRequest(ip string, traffic Traffic) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetIfWindowPassed()
	counts, ok := s.requests[traffic]
	if !ok {
		traffic = TrafficAdmin
		counts = s.requests[traffic]
	}
	counts[ip]++

	n := counts[ip]
	if n <= s.budgets[traffic] {
		return true
	}
	if n%HighRateLogEvery == 0 {
		slog.Warn(SecurityAlertHighRate,
			"ip", ip,
			"traffic", traffic,
			"count", n,
			"window", DetectorWindow)
	}
	return false
}

// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) resetIfWindowPassed() {
	if s.now().Sub(s.windowStart) > DetectorWindow {
		s.reset()
	}
}

func (s *SuspiciousActivityDetector) reset() {
	s.failedAuthByIP = make(map[string]int)
	s.requests = make(map[Traffic]map[string]int, len(s.budgets))
	for traffic := range s.budgets {
		s.requests[traffic] = make(map[string]int)
	}
	s.windowStart = s.now()
}

// SecurityLoggingMiddleware enforces the per-IP traffic budgets
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractIP(r, trustedProxies)

			if !detector.RecordRequest(ip, ClassifyTraffic(r.URL.Path)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractIP gets the client IP address from request.
// It only trusts X-Forwarded-For if the request comes from a trusted proxy.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if slices.Contains(trustedProxies, remoteIP) {
		forwarded := r.Header.Get(HeaderForwardedFor)
		if forwarded != "" {
			// rightmost hop is the one the trusted proxy saw
			ips := strings.Split(forwarded, ",")
			return strings.TrimSpace(ips[len(ips)-1])
		}
	}

	return remoteIP
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME sniffing
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			// Prevent clickjacking
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			// Enable XSS protection (for older browsers)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			// Control referrer information
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}
