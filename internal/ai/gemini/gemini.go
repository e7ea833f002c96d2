package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kiliankoe/quizrace/internal/ai"
)

var ErrMissingKey = errors.New("missing GEMINI_API_KEY")

type Client struct {
	APIKey  string
	BaseURL string
	http    *http.Client
}

func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &Client{APIKey: apiKey, BaseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{Timeout: 60 * time.Second}}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

func (c *Client) Complete(ctx context.Context, req ai.Request) (string, error) {
	if c.APIKey == "" {
		return "", ErrMissingKey
	}
	gen := map[string]any{"temperature": req.Temperature}
	if req.MaxTokens > 0 {
		gen["maxOutputTokens"] = req.MaxTokens
	}
	if req.JSON {
		gen["responseMimeType"] = "application/json"
		if req.Schema != nil {
			gen["responseSchema"] = req.Schema
		}
	}
	payload := map[string]any{
		"contents":         []content{{Role: "user", Parts: []part{{Text: req.Prompt}}}},
		"generationConfig": gen,
	}
	if req.System != "" {
		payload["systemInstruction"] = content{Parts: []part{{Text: req.System}}}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, url.PathEscape(req.Model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("x-goog-api-key", c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("gemini status %d", resp.StatusCode)
	}
	var out struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 {
		return "", errors.New("no candidates")
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
