package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiliankoe/quizrace/internal/ai"
)

func TestCompleteRequestsJSONFormat(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"message": {"content": "[]"}}`))
	}))
	defer srv.Close()

	out, err := New(srv.URL).Complete(context.Background(), ai.Request{Model: "llama3", Prompt: "hi", JSON: true})
	if err != nil {
		t.Fatalf("should complete: %v", err)
	}
	if out != "[]" {
		t.Fatalf("unexpected output %q", out)
	}
	if body["format"] != "json" || body["stream"] != false {
		t.Fatalf("expected non-streaming json request, got %v", body)
	}
}
