package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// GameView mirrors the API's session view.
type GameView struct {
	ID        uuid.UUID `json:"id"`
	WorldName string    `json:"world_name"`
	Turn      int       `json:"turn"`
	Clock     int       `json:"clock"`
	Text      string    `json:"text,omitempty"`
}

// CommandView mirrors the API's command outcome.
type CommandView struct {
	Handled  bool   `json:"handled"`
	Text     string `json:"text"`
	Turn     int    `json:"turn"`
	Clock    int    `json:"clock"`
	TurnCost int    `json:"turn_cost,omitempty"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func listWorlds(client *http.Client, baseURL string) ([]string, error) {
	resp, err := client.Get(baseURL + "/v1/worlds")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}

	var out struct {
		Worlds []string `json:"worlds"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse worlds response: %w", err)
	}
	return out.Worlds, nil
}

func createGame(client *http.Client, baseURL, world string) (*GameView, error) {
	reqBody, err := json.Marshal(map[string]string{"world": world})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(baseURL+"/v1/games", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp.StatusCode, body)
	}

	var g GameView
	if err := json.Unmarshal(body, &g); err != nil {
		return nil, fmt.Errorf("failed to parse game response: %w", err)
	}
	return &g, nil
}

func sendCommand(client *http.Client, baseURL string, id uuid.UUID, input string) (*CommandView, error) {
	reqBody, err := json.Marshal(map[string]string{"input": input})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/games/%s/command", baseURL, id),
		"application/json",
		bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}

	var out CommandView
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse command response: %w", err)
	}
	return &out, nil
}

func apiError(status int, body []byte) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return fmt.Errorf("API returned status %d: %s", status, string(body))
	}
	return fmt.Errorf("%s", errorResp.Error)
}
