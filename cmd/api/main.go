package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Avi9631/partner-platform/internal/config"
	"github.com/Avi9631/partner-platform/internal/domain/auth"
	"github.com/Avi9631/partner-platform/internal/domain/business"
	"github.com/Avi9631/partner-platform/internal/domain/developer"
	"github.com/Avi9631/partner-platform/internal/domain/draft"
	"github.com/Avi9631/partner-platform/internal/domain/pghostel"
	"github.com/Avi9631/partner-platform/internal/domain/project"
	"github.com/Avi9631/partner-platform/internal/domain/property"
	"github.com/Avi9631/partner-platform/internal/domain/publish"
	"github.com/Avi9631/partner-platform/internal/domain/realtime"
	"github.com/Avi9631/partner-platform/internal/domain/user"
	"github.com/Avi9631/partner-platform/internal/domain/wallet"
	"github.com/Avi9631/partner-platform/internal/middleware"
	"github.com/Avi9631/partner-platform/internal/pkg/database"
	"github.com/Avi9631/partner-platform/internal/pkg/jwt"
	"github.com/Avi9631/partner-platform/internal/pkg/lock"
	"github.com/Avi9631/partner-platform/internal/pkg/logger"
	pkgresponse "github.com/Avi9631/partner-platform/internal/pkg/response"
)

// handlers groups everything the router mounts.
type handlers struct {
	auth       *auth.Handler
	users      *user.Handler
	businesses *business.Handler
	wallet     *wallet.Handler
	drafts     *draft.Handler
	publish    *publish.Handler
	developers *developer.Handler
	projects   *project.Handler
	properties *property.Handler
	hostels    *pghostel.Handler
	realtime   *realtime.Handler
}

func main() {
	cfg := config.Load()

	logFile, err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env, LogFile: cfg.LogFile})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open log file")
	}
	defer logFile.Close()

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting partner platform API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if cfg.DBAutoMigrate {
		if err := database.Migrate(context.Background(), db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if redis == nil {
		log.Fatal().Msg("REDIS_URL is required: OTP codes and refresh tokens live in Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Realtime ----------
	hub := realtime.NewHub(redis)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Wallet and drafts ----------
	ledger := wallet.NewLedger(db)
	walletService := wallet.NewService(ledger, hub)
	draftStore := draft.NewStore(db)
	draftService := draft.NewService(draftStore)

	// ---------- Listings ----------
	developerRepo := developer.NewRepository(db)
	projectRepo := project.NewRepository(db)
	propertyRepo := property.NewRepository(db)
	hostelRepo := pghostel.NewRepository(db)

	developerService := developer.NewService(db, developerRepo, draftStore)
	projectService := project.NewService(db, projectRepo, draftStore)
	propertyService := property.NewService(db, propertyRepo, draftStore)
	hostelService := pghostel.NewService(db, hostelRepo, draftStore)

	// ---------- Publishing ----------
	publishRequests := publish.NewRequests(db)
	workflow := publish.NewWorkflow(db, draftStore, ledger, publishRequests,
		lock.NewLocker(redis, "publish:lock:"), hub,
		publish.Config{Fee: cfg.PublishFee, LockTTL: cfg.PublishLockTTL},
		developer.NewTarget(developerRepo),
		project.NewTarget(projectRepo),
		property.NewTarget(propertyRepo),
		pghostel.NewTarget(hostelRepo),
	)
	sweeper := publish.NewWorker(publishRequests, cfg.IdempotencySweepInterval, cfg.IdempotencyRetention)
	sweeper.Start()
	defer sweeper.Stop()

	// ---------- Users and auth ----------
	userRepo := user.NewRepository(db)
	userService := user.NewService(db, userRepo, ledger, hub, cfg.WelcomeBonus)
	businessService := business.NewService(db, business.NewRepository(db), ledger, hub, cfg.WelcomeBonus)
	authStore := auth.NewRedisStore(redis)
	authService := auth.NewService(userRepo, authStore, authStore, jwtService,
		auth.NewLogSender(cfg.IsDevelopment()),
		auth.Config{CodeTTL: cfg.OTPTTL, ResendCooldown: cfg.OTPResendCooldown, MaxAttempts: cfg.OTPMaxAttempts},
	)

	h := handlers{
		auth:       auth.NewHandler(authService),
		users:      user.NewHandler(userService),
		businesses: business.NewHandler(businessService),
		wallet:     wallet.NewHandler(walletService),
		drafts:     draft.NewHandler(draftService),
		publish:    publish.NewHandler(workflow),
		developers: developer.NewHandler(developerService),
		projects:   project.NewHandler(projectService),
		properties: property.NewHandler(propertyService),
		hostels:    pghostel.NewHandler(hostelService),
		realtime:   realtime.NewHandler(hub, jwtService, cfg.AllowedOrigins),
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, middleware.Auth(jwtService), h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newRouter(cfg *config.Config, authMiddleware func(http.Handler) http.Handler, h handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// The websocket upgrade authenticates itself and must not be compressed.
	r.Get("/ws", h.realtime.ServeWS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		r.Use(chimw.Compress(5))

		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/auth", h.auth.Routes())
		r.Mount("/users", h.users.Routes(authMiddleware))
		r.Mount("/admin/users", h.users.AdminRoutes(authMiddleware))
		r.Mount("/businesses", h.businesses.Routes(authMiddleware))
		r.Mount("/admin/businesses", h.businesses.AdminRoutes(authMiddleware))
		r.Mount("/wallet", h.wallet.Routes(authMiddleware))
		r.Mount("/drafts", h.drafts.Routes(authMiddleware))

		r.Mount("/developers", h.developers.Routes(authMiddleware, h.publish.For(draft.TypeDeveloper)))
		r.Mount("/projects", h.projects.Routes(authMiddleware, h.publish.For(draft.TypeProject)))
		r.Mount("/properties", h.properties.Routes(authMiddleware, h.publish.For(draft.TypeProperty)))
		r.Mount("/pg-hostels", h.hostels.Routes(authMiddleware, h.publish.For(draft.TypePGHostel)))
	})

	return r
}
