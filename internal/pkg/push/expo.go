package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Message is a push notification addressed to a single device token.
type Message struct {
	Token     string
	Title     string
	Body      string
	ChannelID string
	Data      map[string]interface{}
}

// Sender delivers push notifications to mobile devices. Delivery is
// best-effort and not acknowledged.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

const (
	expoPushURL = "https://exp.host/--/api/v2/push/send"
	maxRetries  = 3
)

// ExpoSender delivers notifications through the Expo push service used by the
// mobile client.
type ExpoSender struct {
	client *http.Client
}

func NewExpoSender() *ExpoSender {
	return &ExpoSender{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type expoPushRequest struct {
	To        string                 `json:"to"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Sound     string                 `json:"sound"`
	ChannelID string                 `json:"channelId,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

func (s *ExpoSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(expoPushRequest{
		To:        msg.Token,
		Title:     msg.Title,
		Body:      msg.Body,
		Sound:     "default",
		ChannelID: msg.ChannelID,
		Data:      msg.Data,
	})
	if err != nil {
		return fmt.Errorf("marshal push payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		lastErr = s.post(ctx, payload)
		if lastErr == nil {
			return nil
		}
		slog.Warn("Push send failed", "attempt", attempt, "error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return fmt.Errorf("push send failed after %d attempts: %w", maxRetries, lastErr)
}

func (s *ExpoSender) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, expoPushURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expo push API returned status %d", resp.StatusCode)
	}
	return nil
}
