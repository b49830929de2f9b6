// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"propmatics_backend/internal/blog"
	"propmatics_backend/internal/config"
	"propmatics_backend/internal/contact"
	"propmatics_backend/internal/developer"
	"propmatics_backend/internal/jobs"
	"propmatics_backend/internal/middleware"
	"propmatics_backend/internal/notification"
	"propmatics_backend/internal/property"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	propertyHandler     *property.Handler
	developerHandler    *developer.Handler
	blogHandler         *blog.Handler
	notificationHandler *notification.Handler
	contactHandler      *contact.Handler

	// Jobs
	contentSyncJob *jobs.ContentSyncJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	propertyHandler *property.Handler,
	developerHandler *developer.Handler,
	blogHandler *blog.Handler,
	notificationHandler *notification.Handler,
	contactHandler *contact.Handler,
	contentSyncJob *jobs.ContentSyncJob,
	db *gorm.DB,
) (*Server, error) {
	if err := RunMigrations(db, logger); err != nil {
		return nil, err
	}

	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Propmatics API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	propertyHandler.RegisterRoutes(v1)
	developerHandler.RegisterRoutes(v1)
	blogHandler.RegisterRoutes(v1)
	notificationHandler.RegisterRoutes(v1)
	contactHandler.RegisterRoutes(v1)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:          httpServer,
		router:              router,
		cfg:                 cfg,
		logger:              logger,
		propertyHandler:     propertyHandler,
		developerHandler:    developerHandler,
		blogHandler:         blogHandler,
		notificationHandler: notificationHandler,
		contactHandler:      contactHandler,
		contentSyncJob:      contentSyncJob,
	}, nil
}

func (s *Server) Start() error {
	if s.contentSyncJob != nil {
		if err := s.contentSyncJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start content sync job", zap.Error(err))
		}
	} else {
		s.logger.Info("Content sync job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
		zap.String("content_source", s.cfg.ContentSource),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.contentSyncJob != nil {
		s.contentSyncJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
