package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeProvider struct {
	reply string
	err   error
	got   Request
}

func (f *fakeProvider) Complete(_ context.Context, req Request) (string, error) {
	f.got = req
	return f.reply, f.err
}

func TestGenerateDecodesWrappedObject(t *testing.T) {
	p := &fakeProvider{reply: `{"questions": [
		{"id": "1", "question": "Apa itu RAM?", "options": ["a","b","c","d"], "correctAnswerIndex": 1}
	]}`}
	g := NewGenerator(p, GeneratorConfig{Model: "m", Topic: "informatics", Language: "Indonesian"})

	records, err := g.Generate(context.Background(), 30)
	if err != nil {
		t.Fatalf("should generate: %v", err)
	}
	if len(records) != 1 || records[0].Question != "Apa itu RAM?" {
		t.Fatalf("unexpected records %+v", records)
	}
	if !p.got.JSON || p.got.Model != "m" {
		t.Fatalf("expected a JSON request for model m, got %+v", p.got)
	}
	if p.got.Schema["type"] != "ARRAY" {
		t.Fatalf("expected an array response schema, got %v", p.got.Schema)
	}
	if !strings.Contains(p.got.Prompt, "30") || !strings.Contains(p.got.Prompt, "Indonesian") {
		t.Fatalf("prompt should carry count and language, got %q", p.got.Prompt)
	}
}

func TestGenerateReportsProviderFailure(t *testing.T) {
	boom := errors.New("boom")
	g := NewGenerator(&fakeProvider{err: boom}, GeneratorConfig{})
	if _, err := g.Generate(context.Background(), 5); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}

	var nilGen *Generator
	if _, err := nilGen.Generate(context.Background(), 5); err != ErrNoProvider {
		t.Fatalf("expected ErrNoProvider, got %v", err)
	}
}

func TestDecodeRecords(t *testing.T) {
	cases := map[string]string{
		"array":  `[{"question": "Q?", "options": ["a","b","c","d"], "correctAnswerIndex": 2}]`,
		"object": `{"questions": [{"question": "Q?", "options": ["a","b","c","d"], "correctAnswerIndex": 2}]}`,
		"fenced": "```json\n[{\"question\": \"Q?\", \"options\": [\"a\",\"b\",\"c\",\"d\"], \"correctAnswerIndex\": 2}]\n```",
	}
	for name, in := range cases {
		records, err := DecodeRecords(in)
		if err != nil {
			t.Fatalf("%s: should decode: %v", name, err)
		}
		if len(records) != 1 || records[0].CorrectAnswerIndex != 2 {
			t.Fatalf("%s: unexpected records %+v", name, records)
		}
	}

	for _, in := range []string{"", "not json", "```\n```"} {
		if _, err := DecodeRecords(in); err == nil {
			t.Fatalf("expected an error for %q", in)
		}
	}
}
