package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/adapters/driven/bm"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/adapters/driven/consumer"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/adapters/driven/db"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/adapters/driver/myhttp/handle"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/adapters/driver/myhttp/middleware"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/adapters/driver/myhttp/ws"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/ports"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/booking-service/core/services"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/config"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/mylogger"
	"github.com/fami1212/maroc-senegal-parcel-connect/internal/storage"

	"github.com/robfig/cron/v3"
)

const WaitTime = 10

// reconcileSpec runs the trip status reconciler every five minutes.
const reconcileSpec = "*/5 * * * *"

type Server struct {
	mux    *http.ServeMux
	cfg    *config.Config
	srv    *http.Server
	mylog  mylogger.Logger
	db     *db.DB
	mb     ports.IEventBroker
	cron   *cron.Cron
	ctx    context.Context
	appCtx context.Context
	mu     sync.Mutex
	wg     sync.WaitGroup
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

// Run initializes the adapters and starts listening. It returns when the
// server stops.
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
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.BookingServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.BookingServicePort)

	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("shutting down http server")

	s.wg.Wait()

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}

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
	// Repositories
	expeditionRepo := db.NewExpeditionRepo(s.db)
	tripRepo := db.NewTripRepo(s.db)
	reservationRepo := db.NewReservationRepo(s.db)
	paymentRepo := db.NewPaymentRepo(s.db)
	reviewRepo := db.NewReviewRepo(s.db)
	notificationRepo := db.NewNotificationRepo(s.db)
	messageRepo := db.NewMessageRepo(s.db)
	statsRepo := db.NewStatsRepo(s.db)
	profileGuard := db.NewProfileGuard(s.db)

	files, err := storage.NewDiskStore(s.cfg.Storage.RootDir, s.cfg.Storage.PublicBaseURL)
	if err != nil {
		return err
	}

	// Websocket dispatcher
	eventHandler := ws.NewEventHandler(s.cfg.App.JwtSecret)
	dispatcher := ws.NewDispatcher(s.mylog, *eventHandler)
	dispatcher.InitHandler()

	// Services
	notificationService := services.NewNotificationService(s.appCtx, s.mylog, notificationRepo, dispatcher)
	expeditionService := services.NewExpeditionService(s.appCtx, s.mylog, expeditionRepo)
	tripService := services.NewTripService(s.appCtx, s.mylog, tripRepo)
	reservationService := services.NewReservationService(s.appCtx, s.mylog,
		reservationRepo, expeditionRepo, tripRepo, profileGuard, s.mb, notificationService, files)
	paymentService := services.NewPaymentService(s.appCtx, s.mylog,
		paymentRepo, reservationRepo, s.mb, notificationService)
	reviewService := services.NewReviewService(s.appCtx, s.mylog,
		reviewRepo, reservationRepo, notificationService)
	messageService := services.NewMessageService(s.appCtx, s.mylog,
		messageRepo, reservationRepo, dispatcher)
	statsService := services.NewStatsService(s.appCtx, s.mylog, statsRepo)

	// Broker consumers
	notifications := consumer.New(s.appCtx, s.mylog, dispatcher, s.mb, notificationService)
	if err := notifications.Run(); err != nil {
		return fmt.Errorf("failed to start broker consumers: %w", err)
	}

	// Trip status reconciler
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(reconcileSpec, func() {
		if err := tripService.ReconcileStatuses(); err != nil {
			s.mylog.Action("cron").Error("trip reconciliation failed", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule trip reconciler: %w", err)
	}
	s.cron.Start()

	// Handlers
	expeditionHandler := handle.NewExpeditionHandler(expeditionService, s.mylog)
	tripHandler := handle.NewTripHandler(tripService, s.mylog)
	reservationHandler := handle.NewReservationHandler(reservationService, s.mylog)
	paymentHandler := handle.NewPaymentHandler(paymentService, s.mylog)
	reviewHandler := handle.NewReviewHandler(reviewService, s.mylog)
	notificationHandler := handle.NewNotificationHandler(notificationService, s.mylog)
	messageHandler := handle.NewMessageHandler(messageService, s.mylog)
	statsHandler := handle.NewStatsHandler(statsService, s.mylog)

	auth := middleware.NewAuthMiddleware(s.cfg.App.JwtSecret)

	// Expeditions
	s.mux.Handle("POST /expeditions", auth.WrapRole(services.RoleClient, expeditionHandler.Create()))
	s.mux.Handle("GET /expeditions", auth.Wrap(expeditionHandler.List()))
	s.mux.Handle("GET /expeditions/{expedition_id}", auth.Wrap(expeditionHandler.Get()))
	s.mux.Handle("PUT /expeditions/{expedition_id}", auth.WrapRole(services.RoleClient, expeditionHandler.Update()))
	s.mux.Handle("DELETE /expeditions/{expedition_id}", auth.WrapRole(services.RoleClient, expeditionHandler.Delete()))

	// Trips
	s.mux.Handle("POST /trips", auth.WrapRole(services.RoleTransporteur, tripHandler.Create()))
	s.mux.Handle("GET /trips", auth.Wrap(tripHandler.List()))
	s.mux.Handle("GET /trips/{trip_id}", auth.Wrap(tripHandler.Get()))
	s.mux.Handle("PUT /trips/{trip_id}", auth.WrapRole(services.RoleTransporteur, tripHandler.Update()))
	s.mux.Handle("DELETE /trips/{trip_id}", auth.WrapRole(services.RoleTransporteur, tripHandler.Delete()))

	// Reservations
	s.mux.Handle("POST /reservations", auth.WrapRole(services.RoleClient, reservationHandler.Book()))
	s.mux.Handle("GET /reservations", auth.Wrap(reservationHandler.List()))
	s.mux.Handle("GET /reservations/{reservation_id}", auth.Wrap(reservationHandler.Get()))
	s.mux.Handle("POST /reservations/{reservation_id}/status", auth.Wrap(reservationHandler.UpdateStatus()))
	s.mux.Handle("POST /reservations/{reservation_id}/proof", auth.WrapRole(services.RoleTransporteur, reservationHandler.SubmitProof()))
	s.mux.Handle("GET /reservations/{reservation_id}/proof", auth.Wrap(reservationHandler.GetProof()))
	s.mux.Handle("POST /reservations/{reservation_id}/payments", auth.WrapRole(services.RoleClient, paymentHandler.Create()))
	s.mux.Handle("POST /reservations/{reservation_id}/reviews", auth.Wrap(reviewHandler.Create()))
	s.mux.Handle("POST /reservations/{reservation_id}/messages", auth.Wrap(messageHandler.Send()))
	s.mux.Handle("GET /reservations/{reservation_id}/messages", auth.Wrap(messageHandler.List()))

	// Payments
	s.mux.Handle("GET /payments", auth.Wrap(paymentHandler.List()))
	s.mux.Handle("GET /payments/earnings", auth.WrapRole(services.RoleTransporteur, paymentHandler.Earnings()))

	// Reviews
	s.mux.Handle("GET /users/{user_id}/reviews", auth.Wrap(reviewHandler.ListForUser()))

	// Notifications
	s.mux.Handle("GET /notifications", auth.Wrap(notificationHandler.List()))
	s.mux.Handle("POST /notifications/read-all", auth.Wrap(notificationHandler.MarkAllRead()))
	s.mux.Handle("POST /notifications/{notification_id}/read", auth.Wrap(notificationHandler.MarkRead()))
	s.mux.Handle("DELETE /notifications/{notification_id}", auth.Wrap(notificationHandler.Delete()))

	// Stats
	s.mux.Handle("GET /stats/dashboard", auth.Wrap(statsHandler.Dashboard()))

	// Uploaded files
	s.mux.Handle("GET /files/", http.StripPrefix("/files/",
		http.FileServer(http.Dir(s.cfg.Storage.RootDir))))

	// Websocket routes
	s.mux.Handle("/ws/users/{user_id}", dispatcher.WsHandler())

	return nil
}
