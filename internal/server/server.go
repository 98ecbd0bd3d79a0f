package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/mobmoney/internal/admin"
	"github.com/osse101/mobmoney/internal/handler"
	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/metrics"
	"github.com/osse101/mobmoney/internal/sse"
)

// RewardService is what the HTTP surface drives: death ingestion plus the
// operator commands
type RewardService interface {
	handler.DeathSink
	admin.Service
}

// Options configure a Server. LedgerDB, Gatherer and Stream may be nil.
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Service        RewardService
	LedgerDB       handler.Pinger
	Gatherer       prometheus.Gatherer
	Stream         *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree. Chi middleware executes in the order
// defined, outermost first.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector(nil)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.LedgerDB))
	r.Handle("/metrics", promhttp.Handler())

	deathHandler := handler.NewDeathHandler(opts.Service)
	adminHandler := handler.NewAdminHandler(opts.Service)
	adminMetricsHandler := handler.NewAdminMetricsHandler(opts.Gatherer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/events/death", deathHandler.HandleDeath)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/reload", adminHandler.HandleReload)
			r.Get("/metrics", adminMetricsHandler.HandleGetMetrics)
			r.Get("/metrics/status", adminHandler.HandleMetricsStatus)
			r.Post("/metrics/record", adminHandler.HandleMetricsRecord)
			if opts.Stream != nil {
				r.Get("/stream", sse.Handler(opts.Stream))
			}
		})
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the Flusher of the stream endpoint
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func isProbePath(path string) bool {
	for _, p := range PublicPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isProbePath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		if logger.DebugEnabled() {
			sanitizedHeaders := make(http.Header)
			for k, v := range r.Header {
				if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
					sanitizedHeaders[k] = []string{RedactedValue}
				} else {
					sanitizedHeaders[k] = v
				}
			}
			log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)
		}

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
