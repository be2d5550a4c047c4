package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/crownsite/server/internal/config"
	"github.com/crownsite/server/internal/handlers"
	custommw "github.com/crownsite/server/internal/middleware"
	"github.com/crownsite/server/internal/observability"
	"github.com/crownsite/server/internal/repository"
	"github.com/crownsite/server/internal/services"
)

const serviceVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize telemetry (no-op when OTEL_ENABLED=false)
	telemetryCtx := context.Background()
	telemetry, err := observability.Initialize(telemetryCtx, observability.NewConfig("crownsite-server", serviceVersion))
	if err != nil {
		log.Printf("Telemetry initialization failed, continuing without: %v", err)
	}

	// Initialize database
	db := openDatabase(cfg)
	defer db.Close()

	// Queries run through the traced wrapper when telemetry is up
	var qdb repository.DB = db
	if traced, err := observability.NewTraceDB(db); err == nil {
		qdb = traced
	}

	// Repositories
	slideRepo := repository.NewSlideRepository(qdb)
	postRepo := repository.NewPostRepository(qdb)
	statRepo := repository.NewStatRepository(qdb)
	countryRepo := repository.NewCountryRepository(qdb)
	albumRepo := repository.NewAlbumRepository(qdb)
	newsRepo := repository.NewNewsRepository(qdb)
	sponsorRepo := repository.NewSponsorRepository(qdb)
	registrationRepo := repository.NewRegistrationRepository(qdb)
	sessionRepo := repository.NewSessionRepository(qdb)
	credentialRepo := repository.NewCredentialRepository(qdb)

	// Services
	authService := services.NewAuthService(credentialRepo, sessionRepo, cfg.Security.SessionTTLHours)
	if err := authService.SeedPasscode(context.Background(), cfg.Security.AdminPasscode); err != nil {
		log.Fatalf("Failed to seed admin passcode: %v", err)
	}

	storageService, err := services.NewMediaStorageService(
		cfg.MediaStorage.BasePath,
		cfg.MediaStorage.PublicBaseURL,
		cfg.MediaStorage.AllowedExtensions,
		cfg.MediaStorage.MaxFileSizeMB,
	)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}
	thumbnailService := services.NewThumbnailService(cfg.MediaStorage.BasePath)

	dashboardService := services.NewDashboardService(
		slideRepo, postRepo, statRepo, countryRepo,
		albumRepo, newsRepo, sponsorRepo, registrationRepo,
		cfg.Dashboard.PageSize,
		time.Duration(cfg.Dashboard.MutationTimeoutSeconds)*time.Second,
	)
	siteContentService := services.NewSiteContentService(
		slideRepo, postRepo, statRepo, countryRepo,
		albumRepo, newsRepo, sponsorRepo,
		cfg.Dashboard.PageSize,
	)
	registrationService := services.NewRegistrationService(registrationRepo, countryRepo, storageService)
	nameCheckService := services.NewNameCheckService(countryRepo,
		time.Duration(cfg.Dashboard.NameCheckDebounceMs)*time.Millisecond)

	hub := services.NewWebSocketHub()
	go hub.Run()

	maintenanceService := services.NewMaintenanceService(authService, dashboardService,
		time.Duration(cfg.Dashboard.WorkspaceMaxIdleHours)*time.Hour)
	maintenanceService.Start()
	defer maintenanceService.Stop()

	bizMetrics, err := observability.NewBusinessMetrics()
	if err != nil {
		log.Printf("Business metrics unavailable: %v", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, dashboardService, bizMetrics)
	siteHandler := handlers.NewSiteHandler(siteContentService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService, dashboardService, bizMetrics, cfg.MediaStorage.MaxFileSizeMB)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, hub, bizMetrics)
	albumHandler := handlers.NewAlbumHandler(dashboardService, albumRepo, hub)
	mediaHandler := handlers.NewMediaHandler(storageService, thumbnailService, bizMetrics)
	wsHandler := handlers.NewWebSocketHandler(hub, nameCheckService)
	healthHandler := handlers.NewHealthHandler()

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.TracingMiddleware("crownsite-server"))
	if httpMetrics, err := observability.NewHTTPMetrics(); err == nil {
		r.Use(observability.MetricsMiddleware(httpMetrics))
	}

	// Health
	r.Get("/health", healthHandler.HealthCheck)
	r.Get("/api/health", healthHandler.HealthCheck)

	// Public site content
	r.Route("/api", func(r chi.Router) {
		r.Get("/landing", siteHandler.Landing)
		r.Get("/countries", siteHandler.Countries)
		r.Get("/albums", siteHandler.Albums)
		r.Get("/albums/{slug}", siteHandler.AlbumBySlug)
		r.Get("/news", siteHandler.News)
		r.Post("/registrations", registrationHandler.Submit)

		r.Post("/auth/login", authHandler.Login)

		// Admin dashboard routes require a valid session
		r.Group(func(r chi.Router) {
			r.Use(custommw.SessionAuth(authService))

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/session", authHandler.Session)

			r.Route("/admin", func(r chi.Router) {
				r.Route("/slides", func(r chi.Router) {
					r.Get("/", dashboardHandler.ListSlides)
					r.Post("/", dashboardHandler.CreateSlide)
					r.Put("/{id}", dashboardHandler.UpdateSlide)
					r.Delete("/{id}", dashboardHandler.DeleteSlide)
				})
				r.Route("/posts", func(r chi.Router) {
					r.Get("/", dashboardHandler.ListPosts)
					r.Post("/", dashboardHandler.CreatePost)
					r.Put("/{id}", dashboardHandler.UpdatePost)
					r.Delete("/{id}", dashboardHandler.DeletePost)
				})
				r.Route("/stats", func(r chi.Router) {
					r.Get("/", dashboardHandler.ListStats)
					r.Post("/", dashboardHandler.CreateStat)
					r.Put("/{id}", dashboardHandler.UpdateStat)
					r.Delete("/{id}", dashboardHandler.DeleteStat)
				})
				r.Route("/countries", func(r chi.Router) {
					r.Get("/", dashboardHandler.ListCountries)
					r.Post("/", dashboardHandler.CreateCountry)
					r.Put("/{id}", dashboardHandler.UpdateCountry)
					r.Delete("/{id}", dashboardHandler.DeleteCountry)
				})
				r.Route("/news", func(r chi.Router) {
					r.Get("/", dashboardHandler.ListNews)
					r.Post("/", dashboardHandler.CreateNews)
					r.Put("/{id}", dashboardHandler.UpdateNews)
					r.Delete("/{id}", dashboardHandler.DeleteNews)
				})
				r.Route("/sponsors", func(r chi.Router) {
					r.Get("/", dashboardHandler.ListSponsors)
					r.Post("/", dashboardHandler.CreateSponsor)
					r.Put("/{id}", dashboardHandler.UpdateSponsor)
					r.Delete("/{id}", dashboardHandler.DeleteSponsor)
				})
				r.Route("/albums", func(r chi.Router) {
					r.Get("/", albumHandler.ListAlbums)
					r.Post("/", albumHandler.CreateAlbum)
					r.Put("/{id}", albumHandler.UpdateAlbum)
					r.Delete("/{id}", albumHandler.DeleteAlbum)
					r.Post("/{id}/images", albumHandler.AddImage)
					r.Put("/{id}/images/{imageId}", albumHandler.UpdateImage)
					r.Delete("/{id}/images/{imageId}", albumHandler.DeleteImage)
				})
				r.Route("/registrations", func(r chi.Router) {
					r.Get("/", registrationHandler.List)
					r.Delete("/{id}", registrationHandler.Delete)
				})
				r.Post("/media/upload", mediaHandler.Upload)
			})
		})
	})

	// Dashboard WebSocket (content events and the name availability channel)
	r.Group(func(r chi.Router) {
		r.Use(custommw.SessionAuth(authService))
		r.Get("/ws", wsHandler.HandleConnection)
	})

	// Stored media and thumbnails
	fileServer := http.StripPrefix(cfg.MediaStorage.PublicBaseURL+"/",
		http.FileServer(http.Dir(storageService.BasePath())))
	r.Get(cfg.MediaStorage.PublicBaseURL+"/*", fileServer.ServeHTTP)

	// Create server
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Longer for uploads
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("CrownSite Server starting on %s", cfg.ServerAddress)
		log.Printf("Media storage path: %s", cfg.MediaStorage.BasePath)
		log.Printf("Dashboard page size: %d", cfg.Dashboard.PageSize)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(ctx); err != nil {
			log.Printf("Telemetry shutdown error: %v", err)
		}
	}

	log.Println("Server stopped")
}

func openDatabase(cfg *config.Config) *sql.DB {
	if cfg.UsePostgres() {
		log.Println("Using PostgreSQL database")
		db, err := repository.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
		}
		return db
	}

	log.Println("Using SQLite database")
	db, err := repository.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize SQLite database: %v", err)
	}
	return db
}
