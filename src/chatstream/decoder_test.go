package chatstream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeEvents renders events with SSE framing, the way the relay writes them.
func encodeEvents(t *testing.T, events ...StreamEvent) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, e := range events {
		require.NoError(t, WriteEvent(&buf, e))
	}
	return buf.Bytes()
}

func TestReadStream(t *testing.T) {
	tests := []struct {
		name          string
		events        []StreamEvent
		raw           string // used instead of events when non-empty
		expected      string
		expectedErr   error
		errContains   string
		expectedDelta []string
	}{
		{
			name: "fragments then terminal",
			events: []StreamEvent{
				Fragment("Hel"),
				Fragment("lo, "),
				Fragment("world"),
				Terminal("Hello, world"),
			},
			expected:      "Hello, world",
			expectedDelta: []string{"Hel", "lo, ", "world"},
		},
		{
			name: "terminal full message is authoritative",
			events: []StreamEvent{
				Fragment("partial"),
				Terminal("the real full text"),
			},
			expected:      "the real full text",
			expectedDelta: []string{"partial"},
		},
		{
			name: "terminal with empty full message falls back to fragments",
			raw: "data: {\"content\":\"acc\",\"done\":false}\n\n" +
				"data: {\"done\":true}\n\n",
			expected:      "acc",
			expectedDelta: []string{"acc"},
		},
		{
			name: "error event fails immediately",
			events: []StreamEvent{
				Fragment("some text"),
				Failure("AI streaming error: boom"),
			},
			errContains:   "AI streaming error: boom",
			expectedDelta: []string{"some text"},
		},
		{
			name:        "empty stream",
			raw:         "",
			expectedErr: ErrNoResponse,
		},
		{
			name: "terminal with nothing accumulated",
			raw: "data: {\"content\":\"\",\"done\":true,\"fullMessage\":\"\"}\n\n",
			expectedErr: ErrNoResponse,
		},
		{
			name: "eof without terminal keeps accumulated text",
			raw: "data: {\"content\":\"cut \"}\n\n" +
				"data: {\"content\":\"short\"}\n\n",
			expected:      "cut short",
			expectedDelta: []string{"cut ", "short"},
		},
		{
			name: "malformed lines are skipped",
			raw: "data: {not json}\n\n" +
				"data: {\"content\":\"ok\"}\n\n" +
				"data: {\"done\":true,\"fullMessage\":\"ok\"}\n\n",
			expected:      "ok",
			expectedDelta: []string{"ok"},
		},
		{
			name: "events after terminal are ignored",
			events: []StreamEvent{
				Fragment("a"),
				Terminal("a"),
				Fragment("ignored"),
			},
			expected:      "a",
			expectedDelta: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []byte(tt.raw)
			if len(tt.events) > 0 {
				input = encodeEvents(t, tt.events...)
			}

			var deltas []string
			got, err := ReadStream(bytes.NewReader(input), &Callbacks{
				OnChunk: func(content string) { deltas = append(deltas, content) },
			})

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expectedDelta, deltas)
		})
	}
}

// Chunk boundaries in the transport must never split an observable event,
// even when a multi-byte rune straddles a read boundary.
func TestReadStreamByteAtATime(t *testing.T) {
	input := encodeEvents(t,
		Fragment("héllo "),
		Fragment("wörld 日本"),
		Terminal("héllo wörld 日本"),
	)

	var deltas []string
	got, err := ReadStream(iotest.OneByteReader(bytes.NewReader(input)), &Callbacks{
		OnChunk: func(content string) { deltas = append(deltas, content) },
	})
	require.NoError(t, err)
	assert.Equal(t, "héllo wörld 日本", got)
	assert.Equal(t, []string{"héllo ", "wörld 日本"}, deltas)
}

func TestReadStreamTransportError(t *testing.T) {
	broken := errors.New("connection reset")
	r := io.MultiReader(
		strings.NewReader("data: {\"content\":\"a\"}\n\n"),
		iotest.ErrReader(broken),
	)

	var failMsg string
	_, err := ReadStream(r, &Callbacks{
		OnError: func(message string) { failMsg = message },
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, broken)
	assert.Equal(t, broken.Error(), failMsg)
}

func TestReadStreamCallbackOrder(t *testing.T) {
	input := encodeEvents(t, Fragment("x"), Terminal("x"))

	var order []string
	got, err := ReadStream(bytes.NewReader(input), &Callbacks{
		OnChunk:    func(string) { order = append(order, "chunk") },
		OnComplete: func(string) { order = append(order, "complete") },
		OnError:    func(string) { order = append(order, "error") },
	})
	require.NoError(t, err)
	assert.Equal(t, "x", got)
	assert.Equal(t, []string{"chunk", "complete"}, order)
}

func TestReadStreamNilCallbacks(t *testing.T) {
	input := encodeEvents(t, Fragment("safe"), Terminal("safe"))
	got, err := ReadStream(bytes.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, "safe", got)
}

func TestWriteEventFraming(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEvent(&buf, Fragment("hi")))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, DataPrefix))
	assert.True(t, strings.HasSuffix(out, "\n\n"))
	assert.Equal(t, "data: {\"content\":\"hi\",\"done\":false}\n\n", out)
}

func TestStreamEventIsTerminal(t *testing.T) {
	assert.False(t, Fragment("x").IsTerminal())
	assert.True(t, Terminal("x").IsTerminal())
	assert.True(t, Failure("x").IsTerminal())
}
