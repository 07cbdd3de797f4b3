package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/isasumer/character-chat-app/src/chatstream"
	"github.com/isasumer/character-chat-app/src/storage"
)

func (s *Server) handleListCharacters(c *gin.Context) {
	characters, err := storage.ListCharacters(c.Request.Context(), s.store.DB())
	if err != nil {
		s.logger.Error("failed to list characters", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list characters"})
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (s *Server) handleGetCharacter(c *gin.Context) {
	character, err := storage.GetCharacterByID(c.Request.Context(), s.store.DB(), c.Param("id"))
	if err != nil {
		s.logger.Error("failed to get character", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get character"})
		return
	}
	if character == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}
	c.JSON(http.StatusOK, character)
}

// CreateSessionRequest is the body of POST /api/sessions.
type CreateSessionRequest struct {
	UserID      string `json:"userId" binding:"required"`
	CharacterID string `json:"characterId" binding:"required"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: userId and characterId are required"})
		return
	}

	character, err := storage.GetCharacterByID(c.Request.Context(), s.store.DB(), req.CharacterID)
	if err != nil {
		s.logger.Error("failed to get character", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	if character == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}

	session := &storage.ChatSession{
		UserID:      req.UserID,
		CharacterID: req.CharacterID,
	}
	if err := storage.CreateChatSession(c.Request.Context(), s.store.DB(), session); err != nil {
		s.logger.Error("failed to create session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (s *Server) handleListSessions(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: userId"})
		return
	}

	sessions, err := storage.ListChatSessionsByUser(c.Request.Context(), s.store.DB(), userID)
	if err != nil {
		s.logger.Error("failed to list sessions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (s *Server) handleListMessages(c *gin.Context) {
	sessionID := c.Param("id")

	session, err := storage.GetChatSessionByID(c.Request.Context(), s.store.DB(), sessionID)
	if err != nil {
		s.logger.Error("failed to get session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	messages, err := storage.GetMessagesBySessionID(c.Request.Context(), s.store.DB(), sessionID)
	if err != nil {
		s.logger.Error("failed to list messages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// handleSessionEvents streams message-insert notifications for one session
// over SSE, fed by the live update hub.
func (s *Server) handleSessionEvents(c *gin.Context) {
	sessionID := c.Param("id")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unsupported"})
		return
	}

	events, cancel := s.hub.Subscribe(sessionID)
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case message, ok := <-events:
			if !ok {
				return
			}
			if err := writeMessageEvent(c, message); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeMessageEvent(c *gin.Context, message storage.Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	_, err = c.Writer.WriteString(chatstream.DataPrefix + string(payload) + "\n\n")
	return err
}
