package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/surajbi2/secureIn-backend/internal/auth"
	"github.com/surajbi2/secureIn-backend/internal/cache"
	"github.com/surajbi2/secureIn-backend/internal/config"
	"github.com/surajbi2/secureIn-backend/internal/database"
	"github.com/surajbi2/secureIn-backend/internal/db"
	"github.com/surajbi2/secureIn-backend/internal/handlers"
	"github.com/surajbi2/secureIn-backend/internal/health"
	h "github.com/surajbi2/secureIn-backend/internal/http"
	"github.com/surajbi2/secureIn-backend/internal/middleware"
	"github.com/surajbi2/secureIn-backend/internal/monitoring"
	"github.com/surajbi2/secureIn-backend/internal/repositories"
	"github.com/surajbi2/secureIn-backend/internal/services"
	"github.com/surajbi2/secureIn-backend/internal/storage"
	"github.com/surajbi2/secureIn-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; login falls back to bcrypt-only and the dashboard
	// report is built fresh on every request.
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (continuing without cache)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)
	jwtManager := auth.NewJWTManager(cfg)
	archiver := storage.NewR2Archiver(cfg)
	if archiver == nil {
		log.Println("[R2] QR archival disabled (not configured)")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	eventRepo := repositories.NewEventRepository(pool)
	passRepo := repositories.NewEntryPassRepository(pool)
	loginLogRepo := repositories.NewLoginLogRepository(pool)
	adminActionLogRepo := repositories.NewAdminActionLogRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)

	// Services
	userService := services.NewUserService(userRepo, jwtManager)
	totpService := services.NewTOTPService(userRepo, totpRepo, jwtManager)
	passService := services.NewPassService(passRepo, archiver, cfg)
	eventService := services.NewEventService(eventRepo, passRepo)
	reportService := services.NewReportService(passRepo)

	// Monitoring dashboard on the side port, fed with live scan events
	monitor := monitoring.NewServer(pool, cfg.Server.MonitoringPort)
	passService.SetNotifier(monitor)
	go monitor.Start()

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, totpService, loginLogRepo)
	passHandler := handlers.NewPassHandler(passService, adminActionLogRepo)
	eventHandler := handlers.NewEventHandler(eventService)
	userHandler := handlers.NewUserHandler(userService)
	reportHandler := handlers.NewReportHandler(reportService)
	logHandler := handlers.NewLogHandler(loginLogRepo, adminActionLogRepo)
	totpHandler := handlers.NewTOTPHandler(totpService, userService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		authHandler,
		passHandler,
		eventHandler,
		userHandler,
		reportHandler,
		logHandler,
		totpHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(corsMiddleware(router))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
