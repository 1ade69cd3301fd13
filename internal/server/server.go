package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wichtelrunde/wichtel-api/internal/config"
	"github.com/wichtelrunde/wichtel-api/internal/domain/assignment"
	"github.com/wichtelrunde/wichtel-api/internal/handlers"
	"github.com/wichtelrunde/wichtel-api/internal/logger"
	"github.com/wichtelrunde/wichtel-api/internal/middleware/requestlog"
	"github.com/wichtelrunde/wichtel-api/internal/services"
	"github.com/wichtelrunde/wichtel-api/internal/storage/postgres"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	container  *postgres.Container
}

// New creates a new server instance
func New(cfg *config.Config, container *postgres.Container) *Server {
	return &Server{
		config:    cfg,
		container: container,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router := s.setupRouter()

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *gin.Engine {
	if s.config.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestlog.New())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(s.config.CORS.AllowOrigins, ",")
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	if s.config.CORS.AllowOrigins == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	}
	router.Use(cors.New(corsConfig))

	// Repositories
	participantRepo := s.container.Participants()
	pairingRepo := s.container.Pairings()
	messageRepo := s.container.Messages()

	// Services
	participantService := services.NewParticipantService(participantRepo, pairingRepo)
	messageService := services.NewMessageService(messageRepo, participantRepo)

	matcher := assignment.NewMatcher(s.config.Draw.MaxAttempts, s.config.Draw.BacktrackWindow)
	assignmentService := assignment.NewService(pairingRepo, messageRepo, matcher)

	// Handlers
	participantHandler := handlers.NewParticipantHandler(participantService, pairingRepo)
	messageHandler := handlers.NewMessageHandler(messageService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService, participantRepo, pairingRepo, s.config.Draw.RequireMessages)

	// Health check
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Wichtel API is running",
			"status":  "healthy",
		})
	})

	s.setupAPIRoutes(router, participantHandler, messageHandler, assignmentHandler)

	return router
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(
	router *gin.Engine,
	participantHandler *handlers.ParticipantHandler,
	messageHandler *handlers.MessageHandler,
	assignmentHandler *handlers.AssignmentHandler,
) {
	api := router.Group("/api")
	{
		participants := api.Group("/participants")
		{
			participants.GET("", participantHandler.GetAllParticipants)
			participants.POST("", participantHandler.CreateParticipant)
			participants.GET("/:id", participantHandler.GetParticipant)
			participants.PUT("/:id", participantHandler.UpdateParticipant)
			participants.DELETE("/:id", participantHandler.DeleteParticipant)
			participants.GET("/:id/pairings", participantHandler.GetParticipantPairings)
			participants.GET("/:id/messages/:year", messageHandler.GetMessageForYear)
		}

		messages := api.Group("/messages")
		{
			messages.POST("", messageHandler.SubmitMessage)
			messages.PUT("/:id", messageHandler.UpdateMessage)
			messages.DELETE("/:id", messageHandler.DeleteMessage)
		}

		assignments := api.Group("/assignments")
		{
			assignments.POST("/generate", assignmentHandler.GenerateRun)
			assignments.GET("/:year", assignmentHandler.GetRun)
		}

		api.GET("/scoreboard", participantHandler.GetScoreboard)
	}
}
