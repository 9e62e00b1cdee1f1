package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chat-relay/internal/domain"
)

type relayClient struct {
	url    string
	client *http.Client
}

func newRelayClient(url string, httpClient *http.Client) *relayClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 2 * time.Minute}
	}
	return &relayClient{url: url, client: httpClient}
}

type relayError struct {
	Error string `json:"error"`
}

// Send hace POST de la transcripción completa y devuelve el campo reply.
func (c *relayClient) Send(ctx context.Context, userID string, messages []domain.ChatMessage) (string, error) {
	bodyBytes, err := json.Marshal(domain.ChatRequest{UserID: userID, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var re relayError
		if json.Unmarshal(respBody, &re) == nil && re.Error != "" {
			return "", fmt.Errorf("relay status=%d: %s", resp.StatusCode, re.Error)
		}
		return "", fmt.Errorf("relay status=%d", resp.StatusCode)
	}

	var reply domain.ChatReply
	if err := json.Unmarshal(respBody, &reply); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return reply.Reply, nil
}
