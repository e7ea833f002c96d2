package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiliankoe/quizrace/internal/ai"
)

func TestCompleteJoinsParts(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-2.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "key" {
			t.Errorf("missing api key header")
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "[{\"a\":"}, {"text": "1}]"}]}}]}`))
	}))
	defer srv.Close()

	out, err := New("key", srv.URL).Complete(context.Background(), ai.Request{
		Model: "gemini-2.5-flash", System: "sys", Prompt: "hi", JSON: true,
		Schema: map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
	})
	if err != nil {
		t.Fatalf("should complete: %v", err)
	}
	if out != `[{"a":1}]` {
		t.Fatalf("unexpected output %q", out)
	}
	gen, _ := body["generationConfig"].(map[string]any)
	if gen["responseMimeType"] != "application/json" {
		t.Fatalf("expected JSON mime type, got %v", gen)
	}
	schema, _ := gen["responseSchema"].(map[string]any)
	if schema["type"] != "ARRAY" {
		t.Fatalf("expected the response schema to be sent, got %v", gen["responseSchema"])
	}
	if _, ok := body["systemInstruction"]; !ok {
		t.Fatal("system prompt should be sent as systemInstruction")
	}
}

func TestCompleteErrors(t *testing.T) {
	if _, err := New("", "").Complete(context.Background(), ai.Request{Model: "m"}); err != ErrMissingKey {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()
	if _, err := New("key", srv.URL).Complete(context.Background(), ai.Request{Model: "m"}); err == nil {
		t.Fatal("expected an error when no candidates come back")
	}
}
