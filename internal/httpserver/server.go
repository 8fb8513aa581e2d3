package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nataliaSk777/tochka-opory/internal/metrics"
	"github.com/nataliaSk777/tochka-opory/internal/payments"
)

// SeenCache short-circuits duplicate webhook notifications. Id помечается
// только после успешной обработки.
type SeenCache interface {
	Seen(ctx context.Context, id string) bool
	MarkSeen(ctx context.Context, id string)
}

// Server exposes the health, metrics and YooKassa webhook endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *metrics.Metrics
	payments   *payments.Service
	seen       SeenCache
}

func New(addr string, logger *slog.Logger, m *metrics.Metrics, paymentsSvc *payments.Service, seen SeenCache) *Server {
	s := &Server{
		logger:   logger.With("component", "http"),
		metrics:  m,
		payments: paymentsSvc,
		seen:     seen,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", rootHandler)
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/yookassa/webhook", s.handleWebhook)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins listening for incoming HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server listen: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}

// webhookNotification — то немногое, что мы читаем из тела уведомления.
// Состояние платежа телу не доверяем, его даёт API.
type webhookNotification struct {
	Event  string `json:"event"`
	Object struct {
		ID string `json:"id"`
	} `json:"object"`
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var note webhookNotification
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&note); err != nil {
		s.metrics.WebhookEvents.WithLabelValues("bad_body").Inc()
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}
	if note.Object.ID == "" {
		s.metrics.WebhookEvents.WithLabelValues("no_payment_id").Inc()
		http.Error(w, "no payment id", http.StatusBadRequest)
		return
	}

	s.logger.Info("webhook notification", "event", note.Event, "payment_id", note.Object.ID)

	if s.seen != nil && s.seen.Seen(r.Context(), note.Object.ID) {
		s.metrics.WebhookEvents.WithLabelValues("duplicate").Inc()
		writeOK(w)
		return
	}

	if err := s.payments.Reconcile(r.Context(), note.Object.ID); err != nil {
		s.logger.Error("webhook reconcile failed", "payment_id", note.Object.ID, "error", err)
		s.metrics.WebhookEvents.WithLabelValues("error").Inc()
		// ЮKassa повторяет уведомления: отвечаем 200, чтобы не зациклить.
		// Id не помечаем, повтор провайдера обработается заново
		writeOK(w)
		return
	}

	if s.seen != nil {
		s.seen.MarkSeen(r.Context(), note.Object.ID)
	}
	s.metrics.WebhookEvents.WithLabelValues("ok").Inc()
	writeOK(w)
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "ts": time.Now().UnixMilli()})
}

func writeOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
