package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/healthlog/internal/service"
	"github.com/limbo/healthlog/pkg/httputil"
)

const defaultRequestTimeout = 5 * time.Second

type Server struct {
	mx             *chi.Mux
	mu             sync.Mutex
	httpServer     *http.Server
	recordsService service.RecordsServiceI
	statsService   service.StatsServiceI
	jwtService     JWTServiceI
	statsCache     StatsCacheI
	requestTimeout time.Duration
}

type ServicesList struct {
	RecordsService service.RecordsServiceI
	StatsService   service.StatsServiceI
	JwtService     JWTServiceI
	// Optional, stats are computed on every request when nil
	StatsCache     StatsCacheI
	RequestTimeout time.Duration
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:             chi.NewMux(),
		recordsService: servicesOptions.RecordsService,
		statsService:   servicesOptions.StatsService,
		jwtService:     servicesOptions.JwtService,
		statsCache:     servicesOptions.StatsCache,
		requestTimeout: servicesOptions.RequestTimeout,
	}
	if s.requestTimeout <= 0 {
		s.requestTimeout = defaultRequestTimeout
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Get("/health", s.Health)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
		r.Route("/records", func(r chi.Router) {
			r.Post("/", s.CreateRecord)
			r.Get("/", s.ListRecords)
			r.Post("/batch-delete", s.DeleteRecords)
			r.Get("/{id}", s.GetRecord)
			r.Patch("/{id}", s.UpdateRecord)
			r.Delete("/{id}", s.DeleteRecord)
		})
		r.Route("/stats", func(r chi.Router) {
			r.Get("/overview", s.StatsOverview)
			r.Get("/daily", s.StatsDaily)
			r.Get("/weekly", s.StatsWeekly)
			r.Get("/monthly", s.StatsMonthly)
			r.Get("/quality", s.StatsQuality)
			r.Get("/frequency", s.StatsFrequency)
		})
	})
	s.mx.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteErrorResponse(w, http.StatusNotFound, "route not found", nil)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run blocks until the server stops. It returns nil after Shutdown.
func (s *Server) Run(address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.requestTimeout + 5*time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()
	slog.Info("starting server", slog.String("address", address))
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
