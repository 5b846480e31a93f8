package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/s/courseEnrollment/internal/auth"
	"github.com/s/courseEnrollment/internal/config"
	"github.com/s/courseEnrollment/internal/database"
	"github.com/s/courseEnrollment/internal/handlers"
	"github.com/s/courseEnrollment/internal/routes"
	"github.com/s/courseEnrollment/internal/service"
	"github.com/s/courseEnrollment/internal/storage"
)

var tables = []string{"courses", "enrollments", "users"}

func main() {
	if err := run(); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func run() error {
	// ---------------------------
	// 0. Конфигурация
	// ---------------------------
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// ---------------------------
	// 1. Таблицы (файлы или PostgreSQL)
	// ---------------------------
	backends, err := openBackends(cfg)
	if err != nil {
		return err
	}

	passwords, err := auth.NewPasswordHasher(cfg.PasswordScheme)
	if err != nil {
		return err
	}

	svc := service.New(
		storage.NewCourseStore(backends["courses"]),
		storage.NewEnrollmentStore(backends["enrollments"]),
		storage.NewUserStore(backends["users"]),
		passwords,
	)

	// ---------------------------
	// 2. Настройка сессий
	// ---------------------------
	store := handlers.NewSessionStore(cfg.SessionKey, cfg.CookieSecure)

	// ---------------------------
	// 3. Роутинг и CORS
	// ---------------------------
	h := handlers.NewHandler(svc, store)
	r := routes.SetupRouter(h)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: cfg.AllowedOrigin != "*",
	})

	// ---------------------------
	// 4. Запуск сервера
	// ---------------------------
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server started: http://localhost:%s (storage: %s)", cfg.Port, cfg.StorageDriver)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

func openBackends(cfg config.Config) (map[string]storage.LineBackend, error) {
	backends := make(map[string]storage.LineBackend, len(tables))

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		for _, t := range tables {
			backends[t] = storage.NewDBBackend(db, t)
		}
	default:
		for _, t := range tables {
			b, err := storage.NewFileBackend(cfg.TablePath(t))
			if err != nil {
				return nil, err
			}
			backends[t] = b
		}
	}
	return backends, nil
}
