// Finanças is a REST API for tracking personal expenses: users register
// and log in with JWT bearer tokens, manage categories shared across
// users, and record expenses owned by a single user.
//
// @title Finanças API
// @version 1.0
// @description Personal-finance tracker: JWT auth, categories, expenses.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/financas-go/apperror"
	"github.com/user/financas-go/auth"
	"github.com/user/financas-go/categories"
	"github.com/user/financas-go/config"
	"github.com/user/financas-go/db"
	_ "github.com/user/financas-go/docs"
	"github.com/user/financas-go/expenses"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	categoryStore := categories.NewPgxStore(pool)
	categoryService := categories.NewService(categoryStore)
	categoryHandlers := categories.NewHandlers(categoryService)

	authService := auth.NewService(auth.NewPgxUserStore(pool), *cfg.Auth, categoryService)
	authHandlers := auth.NewHandlers(authService)

	expenseService := expenses.NewService(expenses.NewPgxStore(pool), categoryStore)
	expenseHandlers := expenses.NewHandlers(expenseService)

	// Link every category to every existing user once at startup, covering
	// accounts created before registration started doing this.
	backfillCtx, backfillCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := categoryService.BackfillAllUsers(backfillCtx); err != nil {
		log.Printf("Warning: category backfill failed: %v", err)
	}
	backfillCancel()

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that keeps the error response shape consistent.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Finanças API",
			"status":  "online",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		database := "connected"
		status := http.StatusOK
		if err := pool.Ping(ctx); err != nil {
			database = "disconnected"
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]string{
			"status":    "OK",
			"database":  database,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())

		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware(cfg.Auth))
			r.Get("/profile", authHandlers.HandleGetProfile())
		})
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Use(auth.JWTMiddleware(cfg.Auth))
		categoryHandlers.RegisterRoutes(r)
	})

	r.Route("/api/expenses", func(r chi.Router) {
		r.Use(auth.JWTMiddleware(cfg.Auth))
		expenseHandlers.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"message":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// writeError is a local helper for the panic recovery middleware.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	writeJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
