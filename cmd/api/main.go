package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rsvpdesk/rsvpdesk-go/internal/config"
	"github.com/rsvpdesk/rsvpdesk-go/internal/handler"
	"github.com/rsvpdesk/rsvpdesk-go/internal/middleware"
	"github.com/rsvpdesk/rsvpdesk-go/internal/model"
	"github.com/rsvpdesk/rsvpdesk-go/internal/notify"
	"github.com/rsvpdesk/rsvpdesk-go/internal/repository"
	"github.com/rsvpdesk/rsvpdesk-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	db, err := repository.NewDB(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.InitSchema(ctx, db, cfg.DatabaseDriver); err != nil {
		slog.Error("schema initialization failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	eventRepo := repository.NewEventRepository(db)
	inviteRepo := repository.NewInviteRepository(db)

	var dispatcher notify.Dispatcher = notify.Log{}
	if cfg.WhatsAppEnabled {
		wa, err := notify.NewWhatsApp(ctx, cfg.WhatsAppDataDir, cfg.PublicBaseURL)
		if err != nil {
			slog.Error("whatsapp dispatcher setup failed", "error", err)
			os.Exit(1)
		}
		if err := wa.Connect(ctx); err != nil {
			slog.Error("whatsapp connection failed", "error", err)
			os.Exit(1)
		}
		defer wa.Disconnect()
		dispatcher = wa
	}

	authService := service.NewAuthService(userRepo, sessionRepo)
	eventService := service.NewEventService(eventRepo, inviteRepo, dispatcher)
	inviteService := service.NewInviteService(inviteRepo)

	if err := authService.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("admin bootstrap failed", "error", err)
		os.Exit(1)
	}

	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	inviteHandler := handler.NewInviteHandler(inviteService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/signup", authHandler.HandleSignup)
		r.Post("/api/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessionRepo, model.RoleUser))
		r.Post("/api/events", eventHandler.HandleCreate)
		r.Get("/api/events/mine", eventHandler.HandleListMine)
		r.Post("/api/events/{event_id}/pay", eventHandler.HandlePay)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessionRepo, model.RoleAdmin))
		r.Get("/api/admin/events", eventHandler.HandleListPending)
		r.Post("/api/admin/events/{event_id}/decision", eventHandler.HandleDecide)
		r.Get("/api/admin/events/{event_id}/invites", inviteHandler.HandleListByEvent)
	})

	r.Get("/api/invites/{invite_id}", inviteHandler.HandleGet)
	r.Post("/api/invites/{invite_id}/respond", inviteHandler.HandleRespond)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
