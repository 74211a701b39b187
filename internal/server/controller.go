// Package server implements the HTTP API: authentication, user, station,
// and time-series data route groups over the telemetry database.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/smarthydra/hydrasvc/internal/auth"
	"github.com/smarthydra/hydrasvc/internal/database"
	"github.com/smarthydra/hydrasvc/internal/log"
	"github.com/smarthydra/hydrasvc/internal/settings"
)

type contextKey string

const userContextKey contextKey = "current-user"

// Controller represents the API server controller
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	settings *settings.Settings
	Server   http.Server
	DB       *database.Client
	Tokens   *auth.Tokens
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController creates a new API server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, s *settings.Settings, db *database.Client, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:      ctx,
		wg:       wg,
		settings: s,
		DB:       db,
		logger:   logger,
	}

	tokens, err := auth.NewTokens(s.Security.SecretKey, s.Security.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("error setting up token signing: %w", err)
	}
	ctrl.Tokens = tokens

	listenAddr := s.HTTP.ListenAddr
	if listenAddr == "" {
		logger.Info("http.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		listenAddr = "0.0.0.0"
	}

	port := s.HTTP.Port
	if port == 0 {
		logger.Info("http.port not provided; defaulting to 8080")
		port = 8080
	}

	// Create handlers
	ctrl.handlers = NewHandlers(ctrl)

	// Set up router
	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", listenAddr, port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the API server
func (c *Controller) StartController() error {
	log.Info("Starting API server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		c.logger.Infof("API server starting on %s", c.Server.Addr)
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("API server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the API server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(c.loggingMiddleware)
	router.Use(c.corsMiddleware)

	// Authentication routes (no auth required)
	router.HandleFunc("/auth", c.handlers.Login).Methods("POST")
	router.HandleFunc("/auth/register", c.handlers.Register).Methods("POST")
	router.HandleFunc("/user/register", c.handlers.Register).Methods("POST")

	// User routes
	user := router.PathPrefix("/user").Subrouter()
	user.Use(c.authMiddleware)
	user.HandleFunc("/me", c.handlers.Me).Methods("GET")

	// Station routes
	station := router.PathPrefix("/station").Subrouter()
	station.Use(c.authMiddleware)
	station.HandleFunc("/stations", c.handlers.GetStations).Methods("GET")
	station.HandleFunc("/station/{id:[0-9]+}", c.handlers.GetStation).Methods("GET")
	station.HandleFunc("/station", c.handlers.CreateStation).Methods("POST")

	// Time-series data routes
	data := router.PathPrefix("/data").Subrouter()
	data.Use(c.authMiddleware)
	data.HandleFunc("/{station_id:[0-9]+}/water-level", c.handlers.GetWaterLevels).Methods("GET")
	data.HandleFunc("/{station_id:[0-9]+}/water-level", c.handlers.CreateWaterLevel).Methods("POST")
	data.HandleFunc("/{station_id:[0-9]+}/water-level/{id:[0-9]+}", c.handlers.DeleteWaterLevel).Methods("DELETE")
	data.HandleFunc("/{station_id:[0-9]+}/rainfall", c.handlers.GetRainfalls).Methods("GET")
	data.HandleFunc("/{station_id:[0-9]+}/rainfall", c.handlers.CreateRainfall).Methods("POST")
	data.HandleFunc("/{station_id:[0-9]+}/rainfall/{id:[0-9]+}", c.handlers.DeleteRainfall).Methods("DELETE")

	return router
}

// loggingMiddleware logs all requests
func (c *Controller) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		c.logger.Infof("%s %s %s %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// corsMiddleware adds permissive CORS headers
func (c *Controller) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authMiddleware resolves the bearer token to a user record and stores it
// in the request context
func (c *Controller) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		const bearerPrefix = "Bearer "
		if len(authHeader) <= len(bearerPrefix) || authHeader[:len(bearerPrefix)] != bearerPrefix {
			writeError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		username, err := c.Tokens.Validate(authHeader[len(bearerPrefix):])
		if err != nil {
			c.logger.Debugf("token validation failed for %s: %v", r.URL.Path, err)
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := c.DB.GetUserByUsername(r.Context(), username)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
