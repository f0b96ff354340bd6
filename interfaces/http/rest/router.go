package rest

import (
	"net/http"

	"chatrelay/application/services"
	"chatrelay/infrastructure/config"
	"chatrelay/interfaces/http/rest/handlers"
	"chatrelay/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router.
type Router struct {
	chatService *services.ChatService
	cfg         *config.Config
	logger      *zap.Logger
}

// NewRouter creates a new router instance.
func NewRouter(chatService *services.ChatService, cfg *config.Config, logger *zap.Logger) *Router {
	return &Router{
		chatService: chatService,
		cfg:         cfg,
		logger:      logger,
	}
}

// Setup configures all routes and middleware.
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		// The chat UI is served from a different origin than the relay.
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	chatHandler := handlers.NewChatHandler(rt.chatService, rt.logger)

	// Chat surface; GET and POST carry the same query parameters.
	router.Get("/chat", chatHandler.Chat)
	router.Post("/chat", chatHandler.Chat)
	router.Get("/mock", chatHandler.Mock)
	router.Post("/mock", chatHandler.Mock)

	// Probes
	router.Get("/ping", chatHandler.Ping)
	router.Get("/status", chatHandler.Status)
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	return router
}

// healthCheck handles health check requests.
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
