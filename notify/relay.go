package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RelayMessenger pushes outbound messages to the bot relay's send endpoint.
// The relay owns rendering and actual chat delivery.
type RelayMessenger struct {
	URL    string
	Token  string
	Client *http.Client
}

func NewRelayMessenger(url, token string) *RelayMessenger {
	return &RelayMessenger{
		URL:    url,
		Token:  token,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *RelayMessenger) Send(ctx context.Context, chatID int64, text string) error {
	if m.URL == "" {
		return fmt.Errorf("relay send url not configured")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Relay-Token", m.Token)

	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("relay send returned %d", resp.StatusCode)
	}
	return nil
}
