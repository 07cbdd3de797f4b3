package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isasumer/character-chat-app/src/aisdk"
	"github.com/isasumer/character-chat-app/src/chatstream"
	"github.com/isasumer/character-chat-app/src/groqclient"
)

// fakeStream replays a fixed chunk sequence, then a final error.
type fakeStream struct {
	chunks   []*aisdk.StreamChunk
	finalErr error
	closed   bool
}

func (f *fakeStream) Read() (*aisdk.StreamChunk, error) {
	if len(f.chunks) == 0 {
		if f.finalErr != nil {
			return nil, f.finalErr
		}
		return nil, io.EOF
	}
	chunk := f.chunks[0]
	f.chunks = f.chunks[1:]
	return chunk, nil
}

func (f *fakeStream) Close() error {
	f.closed = true
	return nil
}

// fakeModel hands out one fakeStream and records the request it saw.
type fakeModel struct {
	stream  *fakeStream
	openErr error
	lastReq *aisdk.ChatCompletionRequest
}

func (f *fakeModel) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeModel) CreateChatCompletionStream(ctx context.Context, req *aisdk.ChatCompletionRequest) (aisdk.StreamInterface, error) {
	f.lastReq = req
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.stream, nil
}

func (f *fakeModel) GetModelInfo() *aisdk.ModelInfo {
	return &aisdk.ModelInfo{ID: "fake-model"}
}

func deltaChunk(content string) *aisdk.StreamChunk {
	return &aisdk.StreamChunk{
		Choices: []aisdk.Choice{{Delta: &aisdk.Message{Role: aisdk.RoleAssistant, Content: content}}},
	}
}

func newTestServer(model aisdk.ModelClient) *Server {
	return New(Options{
		Model:        model,
		HistoryLimit: 10,
		Temperature:  0.7,
		MaxTokens:    1024,
	})
}

func postChat(t *testing.T, srv *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/chat", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

// decodeEvents parses the SSE body back into events.
func decodeEvents(t *testing.T, body string) []chatstream.StreamEvent {
	t.Helper()
	var events []chatstream.StreamEvent
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, chatstream.DataPrefix) {
			continue
		}
		var e chatstream.StreamEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, chatstream.DataPrefix)), &e))
		events = append(events, e)
	}
	return events
}

func TestChatStreamsFragmentsThenTerminal(t *testing.T) {
	model := &fakeModel{stream: &fakeStream{
		chunks: []*aisdk.StreamChunk{
			deltaChunk("Hello"),
			deltaChunk(", "),
			deltaChunk(""), // empty deltas are skipped
			deltaChunk("world"),
		},
	}}
	srv := newTestServer(model)

	w := postChat(t, srv, ChatRequest{
		Message:         "hi",
		CharacterPrompt: "You are a test character.",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	events := decodeEvents(t, w.Body.String())
	require.Len(t, events, 4)

	// Fragments carry deltas, not cumulative text.
	assert.Equal(t, chatstream.Fragment("Hello"), events[0])
	assert.Equal(t, chatstream.Fragment(", "), events[1])
	assert.Equal(t, chatstream.Fragment("world"), events[2])

	terminal := events[3]
	assert.True(t, terminal.Done)
	assert.Equal(t, "Hello, world", terminal.FullMessage)
	assert.Empty(t, terminal.Error)

	// Exactly one terminal event.
	for _, e := range events[:3] {
		assert.False(t, e.IsTerminal())
	}
	assert.True(t, model.stream.closed)
}

func TestChatMissingAPIKey(t *testing.T) {
	srv := newTestServer(nil)

	w := postChat(t, srv, ChatRequest{Message: "hi", CharacterPrompt: "p"})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Server configuration error: Missing API key", resp["error"])
}

func TestChatValidation(t *testing.T) {
	tests := []struct {
		name string
		body ChatRequest
	}{
		{"missing message", ChatRequest{CharacterPrompt: "p"}},
		{"missing prompt", ChatRequest{Message: "hi"}},
		{"missing both", ChatRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeModel{stream: &fakeStream{}})

			w := postChat(t, srv, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Missing required fields: message and characterPrompt are required", resp["error"])
		})
	}
}

func TestChatInvalidJSON(t *testing.T) {
	srv := newTestServer(&fakeModel{stream: &fakeStream{}})

	req := httptest.NewRequest("POST", "/chat", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatHistoryTruncation(t *testing.T) {
	model := &fakeModel{stream: &fakeStream{chunks: []*aisdk.StreamChunk{deltaChunk("ok")}}}
	srv := newTestServer(model)

	history := make([]HistoryTurn, 25)
	for i := range history {
		role := aisdk.RoleUser
		if i%2 == 1 {
			role = aisdk.RoleAssistant
		}
		history[i] = HistoryTurn{Role: role, Content: fmt.Sprintf("turn %d", i)}
	}

	w := postChat(t, srv, ChatRequest{
		Message:             "latest",
		CharacterPrompt:     "You are concise.",
		ConversationHistory: history,
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, model.lastReq)
	msgs := model.lastReq.Messages

	// system + last 10 history turns + the new user message
	require.Len(t, msgs, 12)
	assert.Equal(t, aisdk.RoleSystem, msgs[0].Role)
	assert.Equal(t, "You are concise.", msgs[0].Content)

	// The window keeps the most recent turns, oldest dropped.
	assert.Equal(t, "turn 15", msgs[1].Content)
	assert.Equal(t, "turn 24", msgs[10].Content)

	last := msgs[len(msgs)-1]
	assert.Equal(t, aisdk.RoleUser, last.Role)
	assert.Equal(t, "latest", last.Content)
}

func TestChatShortHistoryKeptIntact(t *testing.T) {
	model := &fakeModel{stream: &fakeStream{chunks: []*aisdk.StreamChunk{deltaChunk("ok")}}}
	srv := newTestServer(model)

	w := postChat(t, srv, ChatRequest{
		Message:         "q",
		CharacterPrompt: "p",
		ConversationHistory: []HistoryTurn{
			{Role: aisdk.RoleUser, Content: "a"},
			{Role: aisdk.RoleAssistant, Content: "b"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, model.lastReq.Messages, 4)
}

func TestChatUpstreamOpenError(t *testing.T) {
	tests := []struct {
		name       string
		openErr    error
		wantStatus int
	}{
		{
			name:       "client-class upstream error maps to bad gateway",
			openErr:    &groqclient.APIError{StatusCode: 429, Message: "rate limited"},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "server-class upstream error",
			openErr:    &groqclient.APIError{StatusCode: 503, Message: "overloaded"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "transport error",
			openErr:    errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&fakeModel{openErr: tt.openErr})

			w := postChat(t, srv, ChatRequest{Message: "hi", CharacterPrompt: "p"})
			require.Equal(t, tt.wantStatus, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, strings.HasPrefix(resp["error"], "Chat API error: "))
		})
	}
}

func TestChatMidStreamError(t *testing.T) {
	model := &fakeModel{stream: &fakeStream{
		chunks:   []*aisdk.StreamChunk{deltaChunk("partial ")},
		finalErr: errors.New("upstream hiccup"),
	}}
	srv := newTestServer(model)

	w := postChat(t, srv, ChatRequest{Message: "hi", CharacterPrompt: "p"})

	// Streaming already started, so the status stays 200 and the failure
	// arrives as a terminal error event.
	require.Equal(t, http.StatusOK, w.Code)

	events := decodeEvents(t, w.Body.String())
	require.Len(t, events, 2)
	assert.Equal(t, chatstream.Fragment("partial "), events[0])
	assert.True(t, events[1].IsTerminal())
	assert.Equal(t, "AI streaming error: upstream hiccup", events[1].Error)

	// No success terminal follows the error event.
	for _, e := range events {
		assert.Empty(t, e.FullMessage)
	}
}

func TestChatEmptyUpstreamStream(t *testing.T) {
	model := &fakeModel{stream: &fakeStream{}}
	srv := newTestServer(model)

	w := postChat(t, srv, ChatRequest{Message: "hi", CharacterPrompt: "p"})
	require.Equal(t, http.StatusOK, w.Code)

	// The relay still emits its terminal event; the decoder on the client
	// side turns the empty full message into a no-response failure.
	events := decodeEvents(t, w.Body.String())
	require.Len(t, events, 1)
	assert.True(t, events[0].Done)
	assert.Empty(t, events[0].FullMessage)

	_, err := chatstream.ReadStream(strings.NewReader(w.Body.String()), nil)
	assert.ErrorIs(t, err, chatstream.ErrNoResponse)
}

func TestChatRoundTripThroughDecoder(t *testing.T) {
	model := &fakeModel{stream: &fakeStream{
		chunks: []*aisdk.StreamChunk{
			deltaChunk("héllo "),
			deltaChunk("wörld"),
		},
	}}
	srv := newTestServer(model)

	w := postChat(t, srv, ChatRequest{Message: "hi", CharacterPrompt: "p"})
	require.Equal(t, http.StatusOK, w.Code)

	var deltas []string
	full, err := chatstream.ReadStream(strings.NewReader(w.Body.String()), &chatstream.Callbacks{
		OnChunk: func(content string) { deltas = append(deltas, content) },
	})
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld", full)
	assert.Equal(t, []string{"héllo ", "wörld"}, deltas)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
