//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrorBody is the error envelope every handler writes.
type ErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "Response: %s", w.Body.String()) {
		return
	}
	if target != nil && expectedStatus >= 200 && expectedStatus < 300 {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "Failed to decode response JSON: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the message contains expectedMsg,
// and returns the decoded envelope for further checks on Detail.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) ErrorBody {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code, "Response: %s", w.Body.String())

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "Failed to decode error response JSON: %s", w.Body.String())
	if expectedMsg != "" {
		assert.Contains(t, body.Error.Message, expectedMsg)
	}
	return body
}

// DecodeDetail unmarshals the envelope's detail into target.
func (b ErrorBody) DecodeDetail(t *testing.T, target any) {
	t.Helper()
	require.NotEmpty(t, b.Detail, "error response has no detail")
	require.NoError(t, json.Unmarshal(b.Detail, target))
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// SSEFrame is one server-sent event as written on the wire.
type SSEFrame struct {
	Event string
	Data  string
}

// ReadEvents splits a recorded text/event-stream body into frames.
func ReadEvents(body string) []SSEFrame {
	var frames []SSEFrame
	for _, block := range strings.Split(body, "\n\n") {
		var frame SSEFrame
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event:"):
				frame.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				frame.Data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			}
		}
		if frame.Event != "" || frame.Data != "" {
			frames = append(frames, frame)
		}
	}
	return frames
}
