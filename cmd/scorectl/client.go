package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/format"
)

const requestTimeout = 5 * time.Second

type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// do sends c and returns a one-line summary of the response.
func (a *apiClient) do(ctx context.Context, c call) (string, error) {
	var body io.Reader
	if c.Body != nil {
		data, err := json.Marshal(c.Body)
		if err != nil {
			return "", err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, c.Method, a.baseURL+c.Path, body)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("%s %s: %d %s", c.Method, c.Path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if c.Path == "/state" {
		var state game.State
		if err := json.Unmarshal(data, &state); err != nil {
			return "", fmt.Errorf("decode state: %w", err)
		}
		return summarize(state), nil
	}
	return strings.TrimSpace(string(data)), nil
}

// summarize renders state the way the overlay shows it.
func summarize(s game.State) string {
	clock := "stopped"
	if s.Running {
		clock = "running"
	}
	line := fmt.Sprintf("HOME %d - %d AWAY | %s %s (%s)", s.Home, s.Away, format.Ordinal(s.Period), format.Time(s.Seconds), clock)
	if s.PowerPlayActive() {
		line += fmt.Sprintf(" | %s %s", s.PowerPlay, format.Time(s.PowerPlaySeconds))
	}
	return line
}
