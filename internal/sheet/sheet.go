// Package sheet fetches the CSV export of a publicly shared spreadsheet.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

var (
	ErrMissingID = errors.New("spreadsheet id is required")
	ErrNotPublic = errors.New("spreadsheet could not be fetched; share it as \"anyone with the link\"")
	ErrTooLarge  = errors.New("spreadsheet export is too large")
)

// exports larger than this are not question sheets
const defaultMaxBody = 4 << 20

var idInURL = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

// ExtractID accepts a bare spreadsheet id or a full share link.
func ExtractID(ref string) string {
	ref = strings.TrimSpace(ref)
	if m := idInURL.FindStringSubmatch(ref); m != nil {
		return m[1]
	}
	return ref
}

type Client struct {
	BaseURL string
	MaxBody int64
	http    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://docs.google.com"
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), MaxBody: defaultMaxBody, http: &http.Client{Timeout: 20 * time.Second}}
}

// ExportURL is where the CSV export of a sheet lives.
func (c *Client) ExportURL(id string) string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv", c.BaseURL, id)
}

// Fetch downloads the CSV export for ref (an id or a share link).
func (c *Client) Fetch(ctx context.Context, ref string) (string, error) {
	id := ExtractID(ref)
	if id == "" {
		return "", ErrMissingID
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ExportURL(id), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w (status %d)", ErrNotPublic, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, c.MaxBody+1))
	if err != nil {
		return "", err
	}
	if int64(len(b)) > c.MaxBody {
		return "", ErrTooLarge
	}
	return string(b), nil
}
