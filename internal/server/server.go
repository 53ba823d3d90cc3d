package server

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/duetapp/duet/internal/backup"
	"github.com/duetapp/duet/internal/handler"
	"github.com/duetapp/duet/internal/middleware"
	"github.com/duetapp/duet/internal/persistence"
	"github.com/duetapp/duet/internal/remote"
	"github.com/duetapp/duet/internal/store"
)

type Server struct {
	authH     *handler.AuthHandler
	statusH   *handler.StatusHandler
	foodH     *handler.FoodHandler
	calendarH *handler.CalendarHandler
	backupH   *handler.BackupHandler

	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// New wires the entity stores over the shared database: a SQLite KV
// for local persistence and SQLite-backed identity/document services
// as the remote collaborators.
func New(db *sql.DB, backupCfg backup.Config, logger *slog.Logger) (*Server, error) {
	kv := persistence.NewSQLiteStore(db)
	docs := remote.NewSQLiteDocuments(db)
	ident := remote.NewSQLiteIdentity(db)

	authStore, err := store.NewAuthStore(kv, docs, ident)
	if err != nil {
		return nil, fmt.Errorf("auth store: %w", err)
	}
	statusStore, err := store.NewStatusStore(kv)
	if err != nil {
		return nil, fmt.Errorf("status store: %w", err)
	}
	foodStore, err := store.NewFoodStore(kv)
	if err != nil {
		return nil, fmt.Errorf("food store: %w", err)
	}
	calendarStore, err := store.NewCalendarStore(kv)
	if err != nil {
		return nil, fmt.Errorf("calendar store: %w", err)
	}

	backupMgr := backup.NewManager(backupCfg, db, logger.With("component", "backup"))

	return &Server{
		authH:       handler.NewAuthHandler(authStore, logger.With("component", "auth")),
		statusH:     handler.NewStatusHandler(statusStore),
		foodH:       handler.NewFoodHandler(foodStore),
		calendarH:   handler.NewCalendarHandler(calendarStore),
		backupH:     handler.NewBackupHandler(backupMgr, logger.With("component", "backup")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}, nil
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Auth / partner link. Credential endpoints are rate limited by IP.
	authLimit := middleware.RateLimit(s.rateLimiter, middleware.RealIP, 10, time.Minute)
	mux.Handle("POST /api/register", authLimit(http.HandlerFunc(s.authH.Register)))
	mux.Handle("POST /api/login", authLimit(http.HandlerFunc(s.authH.Login)))
	mux.HandleFunc("POST /api/logout", s.authH.Logout)
	mux.Handle("POST /api/connect", authLimit(http.HandlerFunc(s.authH.Connect)))
	mux.HandleFunc("GET /api/me", s.authH.Me)

	// Status
	mux.HandleFunc("GET /api/status", s.statusH.Get)
	mux.HandleFunc("POST /api/status", s.statusH.SetMine)
	mux.HandleFunc("POST /api/status/partner", s.statusH.SetPartner)

	// Food randomizer
	mux.HandleFunc("GET /api/food", s.foodH.List)
	mux.HandleFunc("POST /api/food", s.foodH.Create)
	mux.HandleFunc("DELETE /api/food/{id}", s.foodH.Delete)
	mux.HandleFunc("POST /api/food/randomize", s.foodH.Randomize)
	mux.HandleFunc("DELETE /api/food/selection", s.foodH.ClearSelection)

	// Calendar
	mux.HandleFunc("GET /api/events", s.calendarH.List)
	mux.HandleFunc("POST /api/events", s.calendarH.Create)
	mux.HandleFunc("PUT /api/events/{id}", s.calendarH.Update)
	mux.HandleFunc("DELETE /api/events/{id}", s.calendarH.Delete)
	mux.HandleFunc("GET /api/events/upcoming", s.calendarH.Upcoming)

	// Backups
	mux.HandleFunc("POST /api/backup/run", s.backupH.Run)
	mux.HandleFunc("GET /api/backup/status", s.backupH.Status)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}
