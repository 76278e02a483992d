package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yourrobotics/backend/service"
)

func TestMatchProject(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"How do I build a Line Following Robot?", "line following robot"},
		{"parts for an obstacle avoiding robot please", "obstacle avoiding robot"},
		{"recommend a soldering iron", ""},
		{"", ""},
	}
	for _, tc := range cases {
		got := matchProject(tc.message)
		if tc.want == "" {
			if got != nil {
				t.Errorf("matchProject(%q) = %q, want no match", tc.message, got.Name)
			}
			continue
		}
		if got == nil || got.Name != tc.want {
			t.Errorf("matchProject(%q) = %v, want %q", tc.message, got, tc.want)
		}
	}
}

func geminiStub(t *testing.T, status int, reply string, gotPrompt *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if gotPrompt != nil {
			*gotPrompt = string(body)
		}
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		if reply == "" {
			w.Write([]byte(`{"candidates":[]}`))
			return
		}
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]string{{"text": reply}},
				}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func chatHandlerWithStub(db *fakeStore, stub *httptest.Server) *ChatHandler {
	client := service.NewGeminiClient("test-key")
	client.BaseURL = stub.URL
	client.HTTPClient = stub.Client()
	return &ChatHandler{DB: db, Gemini: client}
}

func postChat(t *testing.T, h *ChatHandler, message string) *httptest.ResponseRecorder {
	t.Helper()
	raw, _ := json.Marshal(ChatRequest{Message: message})
	req := httptest.NewRequest(http.MethodPost, "/api/gemini-chat", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	return rec
}

func TestChatRelaysReply(t *testing.T) {
	db := newFakeStore()
	seedProduct(db, "Line Sensor Module", 2.5, 4)
	seedProduct(db, "Robot Chassis Kit", 12.0, 0)

	var prompt string
	stub := geminiStub(t, http.StatusOK, "Here is your guide.", &prompt)
	defer stub.Close()
	h := chatHandlerWithStub(db, stub)

	rec := postChat(t, h, "I want to build a line following robot")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Reply != "Here is your guide." {
		t.Errorf("reply = %q", resp.Reply)
	}
	// The composed prompt carries the matched catalog and guide links.
	if !strings.Contains(prompt, "Line Sensor Module") {
		t.Error("prompt missing matched product")
	}
	if !strings.Contains(prompt, "Out of stock") {
		t.Error("prompt missing out-of-stock marker")
	}
	if !strings.Contains(prompt, "YouTube:") {
		t.Error("prompt missing project links")
	}
}

func TestChatEmptyCandidatesFallback(t *testing.T) {
	stub := geminiStub(t, http.StatusOK, "", nil)
	defer stub.Close()
	h := chatHandlerWithStub(newFakeStore(), stub)

	rec := postChat(t, h, "hello")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp ChatResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Reply != chatFallbackReply {
		t.Errorf("reply = %q, want fallback", resp.Reply)
	}
}

func TestChatProviderFailure(t *testing.T) {
	stub := geminiStub(t, http.StatusInternalServerError, "", nil)
	defer stub.Close()
	h := chatHandlerWithStub(newFakeStore(), stub)

	rec := postChat(t, h, "hello")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	stub := geminiStub(t, http.StatusOK, "x", nil)
	defer stub.Close()
	h := chatHandlerWithStub(newFakeStore(), stub)

	rec := postChat(t, h, "  ")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
