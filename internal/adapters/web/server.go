// Package web exposes the control surface of a running installation: status,
// roster, burst history, pause/resume and the printable roster sheet.
package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/ghostfield/internal/adapters/reporting"
	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
	"github.com/lcalzada-xor/ghostfield/internal/core/ports"
)

// Controller is the slice of the scheduler the control surface needs.
type Controller interface {
	Pause()
	Resume()
	Status() domain.SchedulerStatus
}

// ReportExporter renders the roster sheet for download.
type ReportExporter interface {
	ExportRosterSheet(sheet reporting.RosterSheet) ([]byte, error)
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr       string
	Controller Controller
	Roster     domain.Roster
	Plan       domain.ChannelPlan
	Bursts     ports.BurstSink
	Reporter   ReportExporter
	WSManager  *WSManager
	TokenHash  string

	srv *http.Server
}

// NewServer creates the control server. tokenHash is a bcrypt hash of the
// API token; when empty the API is open.
func NewServer(addr string, ctrl Controller, roster domain.Roster, plan domain.ChannelPlan, bursts ports.BurstSink, reporter ReportExporter, tokenHash string) *Server {
	return &Server{
		Addr:       addr,
		Controller: ctrl,
		Roster:     roster,
		Plan:       plan,
		Bursts:     bursts,
		Reporter:   reporter,
		WSManager:  NewWSManager(),
		TokenHash:  tokenHash,
	}
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()

	protect := TokenMiddleware(s.TokenHash)

	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/roster", s.handleRoster).Methods(http.MethodGet)
	r.HandleFunc("/api/bursts", s.handleBursts).Methods(http.MethodGet)
	r.HandleFunc("/api/report", s.handleReport).Methods(http.MethodGet)

	r.Handle("/api/pause", protect(http.HandlerFunc(s.handlePause))).Methods(http.MethodPost)
	r.Handle("/api/resume", protect(http.HandlerFunc(s.handleResume))).Methods(http.MethodPost)

	r.HandleFunc("/ws", s.WSManager.HandleWebSocket)
	r.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(r, "ghostfield-web")
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:    s.Addr,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		log.Println("Web server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
