package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/yourrobotics/backend/config"
	"github.com/yourrobotics/backend/handlers"
	"github.com/yourrobotics/backend/middleware"
	"github.com/yourrobotics/backend/service"
	"github.com/yourrobotics/backend/store"
)

func main() {
	_ = godotenv.Load()

	config.ValidateEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config:", err)
	}

	ctx := context.Background()
	db, err := store.NewMongoDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal("mongodb:", err)
	}
	defer func() {
		if err := db.Disconnect(context.Background()); err != nil {
			log.Println("mongodb disconnect:", err)
		}
	}()

	authHandler := &handlers.AuthHandler{
		DB:        db,
		JWTSecret: cfg.JWTSecret,
		AdminCode: cfg.AdminCode,
	}
	productsHandler := &handlers.ProductsHandler{DB: db}
	ordersHandler := &handlers.OrdersHandler{DB: db}
	contentHandler := &handlers.ContentHandler{DB: db}
	settingsHandler := &handlers.SettingsHandler{DB: db}
	chatHandler := &handlers.ChatHandler{
		DB:     db,
		Gemini: service.NewGeminiClient(cfg.GeminiAPIKey),
	}

	r := chi.NewRouter()
	r.Use(middleware.AllowAll())
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"welcome to the yourrobotics api."}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/register-admin", authHandler.RegisterAdmin)
		r.Post("/auth/login", authHandler.Login)
		r.Get("/products", productsHandler.List)
		r.Get("/products/{id}", productsHandler.Get)
		r.Get("/content", contentHandler.List)
		r.Get("/content/{section}", contentHandler.BySection)
		r.Post("/gemini-chat", chatHandler.Chat)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret, db))
			r.Get("/auth/admin-check", authHandler.AdminCheck)
			r.Post("/orders", ordersHandler.Create)
			r.Get("/orders", ordersHandler.List)
			r.Get("/settings", settingsHandler.Get)
			r.Put("/settings", settingsHandler.Update)
			r.Put("/settings/theme", settingsHandler.UpdateTheme)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/products", productsHandler.Create)
				r.Put("/products/{id}", productsHandler.Update)
				r.Delete("/products/{id}", productsHandler.Delete)
				r.Get("/products/stats/dashboard", productsHandler.Stats)
				r.Post("/content", contentHandler.Create)
				r.Put("/content/{id}", contentHandler.Update)
				r.Delete("/content/{id}", contentHandler.Delete)
			})
		})
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Println("server listening on :" + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
