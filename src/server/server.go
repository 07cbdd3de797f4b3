// Package server exposes the HTTP surface: the streaming chat relay plus a
// small REST API over characters, sessions, and messages.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isasumer/character-chat-app/src/aisdk"
	"github.com/isasumer/character-chat-app/src/realtime"
	"github.com/isasumer/character-chat-app/src/storage"
)

// Options holds the injected dependencies for a Server. The model client and
// store are interfaces/handles so tests substitute fakes.
type Options struct {
	Store *storage.DB
	Hub   *realtime.Hub

	// Model is the bound completion model; nil means the provider is not
	// configured (missing API key) and the relay answers with a server
	// configuration error.
	Model aisdk.ModelClient

	// HistoryLimit is the bounded context window applied to prior turns.
	HistoryLimit int

	Temperature float64
	MaxTokens   int

	Logger *slog.Logger
}

// Server handles HTTP requests for the chat application.
type Server struct {
	engine       *gin.Engine
	store        *storage.DB
	hub          *realtime.Hub
	model        aisdk.ModelClient
	historyLimit int
	temperature  float64
	maxTokens    int
	logger       *slog.Logger
}

// New creates a Server with its routes registered.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 10
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:       engine,
		store:        opts.Store,
		hub:          opts.Hub,
		model:        opts.Model,
		historyLimit: opts.HistoryLimit,
		temperature:  opts.Temperature,
		maxTokens:    opts.MaxTokens,
		logger:       logger.With("component", "server"),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/chat", s.handleChat)

	api := s.engine.Group("/api")
	{
		api.GET("/characters", s.handleListCharacters)
		api.GET("/characters/:id", s.handleGetCharacter)
		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions", s.handleListSessions)
		api.GET("/sessions/:id/messages", s.handleListMessages)
		api.GET("/sessions/:id/events", s.handleSessionEvents)
	}
}

// Handler returns the root http.Handler, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server on addr and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
