// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/polls/models"
)

// captureLogs swaps the default logger for one writing JSON into a buffer
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWithLogging(t *testing.T) {
	logs := captureLogs(t)

	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}

	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	WithLogging(testHandler)(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status 418, got %d", w.Code)
	}
	if w.Body.String() != "short and stout" {
		t.Errorf("Expected body 'short and stout', got '%s'", w.Body.String())
	}

	// Completion line should carry the recorded status
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 log lines, got %d: %s", len(lines), logs.String())
	}
	var completed map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &completed); err != nil {
		t.Fatalf("Failed to decode log line: %v", err)
	}
	if completed["msg"] != "request completed" {
		t.Errorf("Expected 'request completed', got %v", completed["msg"])
	}
	if completed["status"] != float64(http.StatusTeapot) {
		t.Errorf("Expected logged status 418, got %v", completed["status"])
	}
	if completed["path"] != "/test-path" {
		t.Errorf("Expected logged path '/test-path', got %v", completed["path"])
	}
}

func TestWithLogging_DefaultStatus(t *testing.T) {
	logs := captureLogs(t)

	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("implicit 200"))
	})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(logs.String(), `"status":200`) {
		t.Errorf("Expected status 200 in logs, got %s", logs.String())
	}
}

func TestWithRequestID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	})

	t.Run("generates ID when missing", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		WithRequestID(next).ServeHTTP(w, req)

		if _, err := uuid.Parse(seen); err != nil {
			t.Errorf("Expected generated UUID in context, got %q", seen)
		}
		if w.Header().Get(RequestIDHeader) != seen {
			t.Errorf("Expected response header %q, got %q", seen, w.Header().Get(RequestIDHeader))
		}
	})

	t.Run("reuses valid incoming ID", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, incoming)
		w := httptest.NewRecorder()

		WithRequestID(next).ServeHTTP(w, req)

		if seen != incoming {
			t.Errorf("Expected incoming ID %q, got %q", incoming, seen)
		}
	})

	t.Run("replaces invalid incoming ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		w := httptest.NewRecorder()

		WithRequestID(next).ServeHTTP(w, req)

		if seen == "<script>" {
			t.Error("Expected invalid request ID to be replaced")
		}
		if _, err := uuid.Parse(seen); err != nil {
			t.Errorf("Expected generated UUID, got %q", seen)
		}
	})
}

func TestWithLogging_ResponseControllerReachesWriter(t *testing.T) {
	captureLogs(t)

	var flushErr error
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("partial"))
		flushErr = http.NewResponseController(w).Flush()
	})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if flushErr != nil {
		t.Fatalf("Flush through WithLogging failed: %v", flushErr)
	}
	if !w.Flushed {
		t.Error("Expected the underlying recorder to be flushed")
	}
}

func TestRequestID_Empty(t *testing.T) {
	if id := RequestID(context.Background()); id != "" {
		t.Errorf("Expected empty request ID, got %q", id)
	}
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name     string
		format   string
		wantJSON bool
	}{
		{"explicit json", "json", true},
		{"explicit text", "text", false},
		{"auto with non-terminal writer", "auto", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tc.format)
			logger.Info("hello", "key", "value")

			isJSON := json.Valid(bytes.TrimSpace(buf.Bytes()))
			if isJSON != tc.wantJSON {
				t.Errorf("Expected JSON output = %v, got %q", tc.wantJSON, buf.String())
			}
			if !strings.Contains(buf.String(), "hello") {
				t.Errorf("Expected message in output, got %q", buf.String())
			}
		})
	}
}

func TestWantsJSON(t *testing.T) {
	testCases := []struct {
		accept string
		want   bool
	}{
		{"", false},
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"text/html", false},
		{"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8", false},
		{"application/json, text/plain, */*", true},
		{"*/*", false},
		{"text/html;q=0.1, application/json", true},
		{"application/json;q=0.5, text/html", false},
		{"application/json, text/html", true},
		{"text/html, application/json", false},
		{"application/json;q=0", false},
		{"text/html;q=0.8, application/json;q=0.9", true},
	}

	for _, tc := range testCases {
		t.Run(tc.accept, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tc.accept != "" {
				req.Header.Set("Accept", tc.accept)
			}
			if got := WantsJSON(req); got != tc.want {
				t.Errorf("WantsJSON(%q) = %v, want %v", tc.accept, got, tc.want)
			}
		})
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "simple struct",
			statusCode: http.StatusOK,
			data:       map[string]string{"message": "hello"},
			expected:   `{"message":"hello"}`,
		},
		{
			name:       "created response",
			statusCode: http.StatusCreated,
			data:       models.CreateQuestionResponse{QuestionID: 42},
			expected:   `{"question_id":42}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Error: "Bad Request", Message: "missing field"},
			expected:   `{"error":"Bad Request","message":"missing field"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}

			// Check body (trim newline added by Encode)
			body := strings.TrimSpace(w.Body.String())
			if body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	ErrorResponse(w, http.StatusNotFound, "question not found")

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error != "Not Found" {
		t.Errorf("Expected error 'Not Found', got '%s'", resp.Error)
	}
	if resp.Message != "question not found" {
		t.Errorf("Expected message 'question not found', got '%s'", resp.Message)
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		body := `{"question_text":"What's up?","pub_date":"2025-01-02T03:04:05Z"}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.CreateQuestionRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.QuestionText != "What's up?" {
			t.Errorf("Expected question_text \"What's up?\", got '%s'", parsed.QuestionText)
		}
		if parsed.PubDate == nil || parsed.PubDate.Year() != 2025 {
			t.Errorf("Expected pub_date in 2025, got %v", parsed.PubDate)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{invalid json}`))

		var parsed models.CreateQuestionRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.AddChoiceRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Error("Expected error for empty body")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{
			name:       "X-Forwarded-For chained IPs",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.100, 10.0.0.1"},
			remoteAddr: "127.0.0.1:12345",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "X-Real-IP takes precedence over RemoteAddr",
			headers:    map[string]string{"X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "203.0.113.50",
		},
		{
			name:       "RemoteAddr with port",
			remoteAddr: "192.168.1.50:54321",
			expectedIP: "192.168.1.50",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.168.1.50",
			expectedIP: "192.168.1.50",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, got)
			}
		})
	}
}
