package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/adapters/driven/db"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/adapters/driver/myhttp/handle"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/adapters/driver/myhttp/middleware"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/auth-service/core/services"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/config"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/storage"
)

const WaitTime = 10

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
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

	if err := s.Configure(); err != nil {
		return err
	}

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.AuthServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.AuthServicePort)

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
	// Repositories
	authRepo := db.NewAuthRepo(s.db)
	profileRepo := db.NewProfileRepo(s.db)
	kycRepo := db.NewKycRepo(s.db)

	files, err := storage.NewDiskStore(s.cfg.Storage.RootDir, s.cfg.Storage.PublicBaseURL)
	if err != nil {
		return err
	}

	// Services
	authService := services.NewAuthService(s.appCtx, s.cfg, s.mylog, authRepo)
	profileService := services.NewProfileService(s.appCtx, s.mylog, authRepo, profileRepo)
	kycService := services.NewKycService(s.appCtx, s.mylog, kycRepo, profileRepo, files)

	// Handlers
	authHandler := handle.NewAuthHandler(authService, s.mylog)
	profileHandler := handle.NewProfileHandler(profileService, s.mylog)
	kycHandler := handle.NewKycHandler(kycService, s.mylog)

	auth := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	// Auth
	s.mux.Handle("POST /auth/register", authHandler.Register())
	s.mux.Handle("POST /auth/login", authHandler.Login())

	// Profiles
	s.mux.Handle("GET /profiles/me", auth.Wrap(profileHandler.Me()))
	s.mux.Handle("PUT /profiles/me", auth.Wrap(profileHandler.Update()))

	// KYC
	s.mux.Handle("POST /kyc/documents", auth.Wrap(kycHandler.Submit()))
	s.mux.Handle("GET /kyc/status", auth.Wrap(kycHandler.Status()))

	return nil
}
