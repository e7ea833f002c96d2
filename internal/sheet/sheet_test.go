package sheet

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractID(t *testing.T) {
	cases := map[string]string{
		"1BxiMVs0XRA5nFMdKbB":                                                "1BxiMVs0XRA5nFMdKbB",
		"  abc-DEF_123 ":                                                     "abc-DEF_123",
		"https://docs.google.com/spreadsheets/d/1Bx-i_9/edit#gid=0":          "1Bx-i_9",
		"https://docs.google.com/spreadsheets/d/XYZ/export?format=csv&gid=1": "XYZ",
		"": "",
	}
	for in, want := range cases {
		if got := ExtractID(in); got != want {
			t.Fatalf("ExtractID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spreadsheets/d/SHEET1/export" || r.URL.Query().Get("format") != "csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("q,a,b,c,d,i\n"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	text, err := c.Fetch(context.Background(), "https://docs.google.com/spreadsheets/d/SHEET1/edit")
	if err != nil {
		t.Fatalf("should fetch: %v", err)
	}
	if text != "q,a,b,c,d,i\n" {
		t.Fatalf("unexpected body %q", text)
	}

	if _, err := c.Fetch(context.Background(), "OTHER"); !errors.Is(err, ErrNotPublic) {
		t.Fatalf("expected ErrNotPublic, got %v", err)
	}
	if _, err := c.Fetch(context.Background(), "   "); err != ErrMissingID {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}

func TestFetchRejectsOversizedExport(t *testing.T) {
	body := "q,a,b,c,d,i\nQ?,a,b,c,d,0\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.MaxBody = 16
	if _, err := c.Fetch(context.Background(), "SHEET1"); err != ErrTooLarge {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	c.MaxBody = int64(len(body))
	text, err := c.Fetch(context.Background(), "SHEET1")
	if err != nil || !strings.HasSuffix(text, "0\n") {
		t.Fatalf("export at the limit should come back whole, got %q, %v", text, err)
	}
}
