package notification

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
)

const DefaultTelegramAPIURL = "https://api.telegram.org"

var ErrTelegramNotConfigured = errors.New("telegram bot token not configured")

// TelegramClient sends messages through the Telegram Bot API.
type TelegramClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewTelegramClient(baseURL, token string, httpClient *http.Client) *TelegramClient {
	if baseURL == "" {
		baseURL = DefaultTelegramAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &TelegramClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    httpClient,
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

func (c *TelegramClient) SendMessage(ctx context.Context, chatID, text string) error {
	if c.token == "" {
		return ErrTelegramNotConfigured
	}
	if chatID == "" {
		return ErrNoChatID
	}

	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("telegram: encode message: %w", err)
	}

	endpoint := c.baseURL + "/bot" + c.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error embeds the request URL, which carries the bot token.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("telegram: send message: %w", err)
	}
	defer resp.Body.Close()

	var result telegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && resp.StatusCode < 300 {
		return fmt.Errorf("telegram: decode response: %w", err)
	}
	if resp.StatusCode >= 300 || !result.OK {
		return fmt.Errorf("telegram: send message failed (status %d): %s", resp.StatusCode, result.Description)
	}
	return nil
}
