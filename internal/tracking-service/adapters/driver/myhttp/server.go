package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/config"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/adapters/driven/bm"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/adapters/driven/db"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/adapters/driven/geocode"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/adapters/driver/myhttp/handle"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/adapters/driver/myhttp/middleware"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/tracking-service/core/services"
)

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
	mb     ports.IEventBroker
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config) *Server {
	return &Server{
		ctx:    ctx,
		appCtx: appCtx,
		cfg:    cfg,
		mylog:  mylog,
		mux:    http.NewServeMux(),
	}
}

func (s *Server) Run() error {
	mylog := s.mylog.Action("server_started")

	database, err := db.New(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	mylog.Info("successful database connection")

	mb, err := bm.New(s.appCtx, *s.cfg.RabbitMq, s.mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.mb = mb
	mylog.Info("successful message broker connection")

	if err := s.Configure(); err != nil {
		return err
	}

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.TrackingServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.TrackingServicePort)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("shutting down http server")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("failed to shut down http server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.mb != nil {
		if err := s.mb.Close(); err != nil {
			s.mylog.Error("failed to close message broker", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("database closed")
	}

	s.mylog.Info("http server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires the repositories, services, handlers and routes.
func (s *Server) Configure() error {
	trackingRepo := db.NewTrackingRepo(s.db)
	reservationGuard := db.NewReservationGuard(s.db)
	geocoder := geocode.NewNominatim(s.cfg.Geocoder)

	trackingService := services.NewTrackingService(s.appCtx, s.mylog,
		trackingRepo, reservationGuard, geocoder, s.mb)

	trackingHandler := handle.NewTrackingHandler(trackingService, s.mylog)

	auth := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	s.mux.Handle("POST /reservations/{reservation_id}/tracking",
		auth.WrapRole(services.RoleTransporteur, trackingHandler.Record()))
	s.mux.Handle("GET /reservations/{reservation_id}/tracking",
		auth.Wrap(trackingHandler.List()))

	return nil
}
