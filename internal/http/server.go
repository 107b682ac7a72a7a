// Package http provides the HTTP server of the bookstore API and its router.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	accountHTTP "github.com/allisson/bookstore/internal/account/http"
	bookHTTP "github.com/allisson/bookstore/internal/book/http"
	cartHTTP "github.com/allisson/bookstore/internal/cart/http"
	"github.com/allisson/bookstore/internal/config"
	"github.com/allisson/bookstore/internal/database"
	"github.com/allisson/bookstore/internal/identity"
	"github.com/allisson/bookstore/internal/metrics"
	sessionHTTP "github.com/allisson/bookstore/internal/session/http"
)

const apiWelcomeMessage = "BrasBasahBooks API"

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// Handlers groups the request handlers mounted by SetupRouter.
type Handlers struct {
	Auth    *accountHTTP.AuthHandler
	Account *accountHTTP.AccountHandler
	Admin   *accountHTTP.AdminHandler
	Book    *bookHTTP.BookHandler
	Cart    *cartHTTP.CartHandler
}

// NewServer creates a new HTTP server
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with every route of the API.
//
// ctx bounds the lifetime of the rate limiter cleanup goroutines. metricsProvider may
// be nil when metrics are disabled.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	sessions *sessionHTTP.Store,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(identity.RandomID)))
	router.Use(CustomLoggerMiddleware(s.logger))
	router.Use(SecurityHeadersMiddleware())

	if cors := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); cors != nil {
		router.Use(cors)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")
	api.Use(sessions.Middleware())
	api.GET("", apiIndexHandler)

	// Credential endpoints are limited per client IP.
	credentials := api.Group("")
	if cfg.RateLimitAuthEnabled {
		credentials.Use(sessionHTTP.IPRateLimitMiddleware(
			ctx,
			cfg.RateLimitAuthRequestsPerSec,
			cfg.RateLimitAuthBurst,
			s.logger,
		))
	}
	credentials.POST("/signup", handlers.Auth.SignUpHandler)
	credentials.POST("/signup/verify", handlers.Auth.VerifySignUpHandler)
	credentials.POST("/login", handlers.Auth.LoginHandler)
	credentials.POST("/password/forgot", handlers.Auth.ForgotPasswordHandler)
	credentials.POST("/password/reset", handlers.Auth.ResetPasswordHandler)

	api.POST("/logout", handlers.Auth.LogoutHandler)

	api.GET("/books", handlers.Book.ListHandler)
	api.GET("/books/:id", handlers.Book.GetHandler)

	var accountLimiter gin.HandlerFunc
	if cfg.RateLimitEnabled {
		accountLimiter = sessionHTTP.AccountRateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		)
	}

	account := api.Group("/account")
	account.Use(sessionHTTP.RequireAccount(s.logger))
	if accountLimiter != nil {
		account.Use(accountLimiter)
	}
	account.GET("", handlers.Account.GetHandler)
	account.PUT("", handlers.Account.UpdateHandler)
	account.POST("/password", handlers.Account.ChangePasswordHandler)

	cart := api.Group("/cart")
	cart.Use(sessionHTTP.RequireCustomer(s.logger))
	if accountLimiter != nil {
		cart.Use(accountLimiter)
	}
	cart.GET("", handlers.Cart.GetHandler)
	cart.DELETE("", handlers.Cart.ClearHandler)
	cart.POST("/items", handlers.Cart.AddItemHandler)
	cart.PUT("/items/:book_id", handlers.Cart.UpdateItemHandler)
	cart.DELETE("/items/:book_id", handlers.Cart.RemoveItemHandler)

	admin := api.Group("/admin")
	admin.Use(sessionHTTP.RequireAdmin(s.logger))
	if accountLimiter != nil {
		admin.Use(accountLimiter)
	}
	admin.GET("/users", handlers.Admin.ListHandler)
	admin.POST("/users", handlers.Admin.CreateHandler)
	admin.DELETE("/users/:id", handlers.Admin.DeleteHandler)
	admin.POST("/books", handlers.Book.CreateHandler)
	admin.PUT("/books/:id", handlers.Book.UpdateHandler)
	admin.DELETE("/books/:id", handlers.Book.DeleteHandler)

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func apiIndexHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": apiWelcomeMessage})
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil || database.Ping(c.Request.Context(), s.db) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
