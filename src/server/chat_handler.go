package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/isasumer/character-chat-app/src/aisdk"
	"github.com/isasumer/character-chat-app/src/chatstream"
	"github.com/isasumer/character-chat-app/src/groqclient"
)

// HistoryTurn is one prior turn supplied by the client.
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	SessionID           string        `json:"sessionId"`
	Message             string        `json:"message"`
	CharacterPrompt     string        `json:"characterPrompt"`
	ConversationHistory []HistoryTurn `json:"conversationHistory"`
}

// handleChat bridges one client request to one upstream streaming completion
// call. Pre-stream failures answer with a JSON error body; once streaming
// has begun, failures are delivered as error events on the open stream.
func (s *Server) handleChat(c *gin.Context) {
	logger := s.logger.With("handler", "chat")

	if s.model == nil {
		logger.Error("completion provider not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error: Missing API key"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	if req.Message == "" || req.CharacterPrompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: message and characterPrompt are required"})
		return
	}

	// Bounded context window: only the most recent prior turns go upstream.
	// Older turns stay in the durable log untouched.
	recent := req.ConversationHistory
	if len(recent) > s.historyLimit {
		recent = recent[len(recent)-s.historyLimit:]
	}

	messages := make([]*aisdk.Message, 0, len(recent)+2)
	messages = append(messages, &aisdk.Message{Role: aisdk.RoleSystem, Content: req.CharacterPrompt})
	for _, turn := range recent {
		messages = append(messages, &aisdk.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, &aisdk.Message{Role: aisdk.RoleUser, Content: req.Message})

	temperature := s.temperature
	maxTokens := s.maxTokens

	// The upstream request shares the inbound request context, so a closed
	// client connection aborts the upstream read.
	stream, err := s.model.CreateChatCompletionStream(c.Request.Context(), &aisdk.ChatCompletionRequest{
		Messages:    messages,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		Stream:      true,
	})
	if err != nil {
		logger.Error("upstream stream failed to open", "error", err, "session_id", req.SessionID)
		c.JSON(upstreamErrorStatus(err), gin.H{"error": "Chat API error: " + err.Error()})
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		logger.Error("response writer does not support flushing")
		return
	}

	var full strings.Builder
	for {
		chunk, err := stream.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			// Mid-stream failure: surface an error event on the open
			// stream rather than dropping the connection.
			logger.Error("streaming error", "error", err, "session_id", req.SessionID)
			chatstream.WriteEvent(c.Writer, chatstream.Failure("AI streaming error: "+err.Error()))
			flusher.Flush()
			return
		}
		if chunk == nil {
			break
		}

		content := chunk.DeltaContent()
		if content == "" {
			continue
		}

		full.WriteString(content)
		if err := chatstream.WriteEvent(c.Writer, chatstream.Fragment(content)); err != nil {
			// Client went away; the deferred Close abandons upstream.
			logger.Debug("client disconnected", "session_id", req.SessionID)
			return
		}
		flusher.Flush()
	}

	chatstream.WriteEvent(c.Writer, chatstream.Terminal(full.String()))
	flusher.Flush()
}

// upstreamErrorStatus maps a provider failure to the relay's response code.
func upstreamErrorStatus(err error) int {
	var apiErr *groqclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
