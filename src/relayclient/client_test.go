package relayclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isasumer/character-chat-app/src/chatstream"
)

func TestSendChatMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s1", req.SessionID)
		assert.Equal(t, "hello", req.Message)
		assert.Equal(t, "You are Luna.", req.CharacterPrompt)
		require.Len(t, req.ConversationHistory, 1)
		assert.Equal(t, HistoryTurn{Role: "user", Content: "prior"}, req.ConversationHistory[0])

		w.Header().Set("Content-Type", "text/event-stream")
		chatstream.WriteEvent(w, chatstream.Fragment("hi"))
		chatstream.WriteEvent(w, chatstream.Terminal("hi"))
	}))
	defer ts.Close()

	client := New(ts.URL)
	body, err := client.SendChatMessage(context.Background(), &ChatRequest{
		SessionID:           "s1",
		Message:             "hello",
		CharacterPrompt:     "You are Luna.",
		ConversationHistory: []HistoryTurn{{Role: "user", Content: "prior"}},
	})
	require.NoError(t, err)
	defer body.Close()

	full, err := chatstream.ReadStream(body, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", full)
}

func TestSendChatMessageErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Missing required fields: message and characterPrompt are required",
		})
	}))
	defer ts.Close()

	_, err := New(ts.URL).SendChatMessage(context.Background(), &ChatRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relay error (status 400)")
	assert.Contains(t, err.Error(), "Missing required fields")
}

func TestSendChatMessageOpaqueError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, "nope")
	}))
	defer ts.Close()

	_, err := New(ts.URL).SendChatMessage(context.Background(), &ChatRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get AI response: 503")
}

func TestSendChatMessageUnreachable(t *testing.T) {
	_, err := New("http://127.0.0.1:1").SendChatMessage(context.Background(), &ChatRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach relay")
}
