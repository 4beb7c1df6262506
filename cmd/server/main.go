package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/duetchat/backend/internal/chat"
	"github.com/duetchat/backend/internal/config"
	"github.com/duetchat/backend/internal/handlers"
	"github.com/duetchat/backend/internal/services"
	"github.com/duetchat/backend/internal/supabase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	// Load configuration from environment
	cfg := config.Load()

	// Initialize Supabase client (the message store)
	db := supabase.NewClient(cfg)

	// Initialize the chat hub and its WebSocket handler
	hub := chat.NewHub(db)
	wsHandler := chat.NewHandler(hub)

	// Watch-together session state
	watchService := services.NewWatchService()

	// Initialize HTTP handlers
	messageHandler := handlers.NewMessageHandler(db)
	watchHandler := handlers.NewWatchHandler(watchService)

	// Set up router with middleware
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	log.Printf("CORS allowed origins: %v", cfg.CORSOrigins)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", handlers.HealthCheck)

	// Realtime channel
	r.Get("/ws", wsHandler.ServeWS)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/messages", messageHandler.GetMessages)
		r.Route("/watch-together", func(r chi.Router) {
			r.Get("/", watchHandler.GetSession)
			r.Post("/", watchHandler.PostSession)
		})
	})

	// Start server
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Chat backend starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
