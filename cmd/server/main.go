package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/cors"

	"employee-management-api/internal/config"
	"employee-management-api/internal/db"
	"employee-management-api/internal/httpapi"
	"employee-management-api/internal/security"
	"employee-management-api/internal/service"
	"employee-management-api/internal/store"
)

func main() {
	// -- Logger --
	logger := log.New(os.Stdout, "", log.LstdFlags)

	// -- Configs preload --
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	// -- Connect to DB --
	database, err := db.Connect(cfg, logger)
	if err != nil {
		logger.Fatalf("database connection error: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		logger.Fatalf("database migration error: %v", err)
	}
	if cfg.SeedOnStart {
		if err := db.Seed(database); err != nil {
			logger.Fatalf("database seed error: %v", err)
		}
	}

	tokens := security.NewTokenManager(cfg.JWT)
	employeeService := service.NewEmployeeService(store.NewEmployeeStore(database))
	authService := service.NewAuthService(store.NewUserStore(database), tokens)
	handler := httpapi.NewHandler(employeeService, authService, tokens, logger)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Location", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.RequestLogger(logger, corsHandler(handler)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// -- Startup --
	logger.Printf("starting server (%s), listening to port %s...", cfg.DBDriver, cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("server failed: %v", err)
	}
}
