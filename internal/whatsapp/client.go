package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://graph.facebook.com/v21.0"

// Sender dispatches outbound messages to a WhatsApp recipient. The webhook
// path depends on this interface, not on the HTTP client.
type Sender interface {
	SendText(ctx context.Context, phoneNumberID, accessToken, to, body string) (json.RawMessage, error)
	SendInteractive(ctx context.Context, phoneNumberID, accessToken, to string, interactive Interactive) (json.RawMessage, error)
}

// Client talks to the WhatsApp Business Cloud API. Credentials are
// merchant-scoped and passed per call; the client itself is shared.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL points the client at an alternate Graph endpoint.
func NewClientWithBaseURL(timeout time.Duration, baseURL string) *Client {
	c := NewClient(timeout)
	c.baseURL = baseURL
	return c
}

func (c *Client) SendText(ctx context.Context, phoneNumberID, accessToken, to, body string) (json.RawMessage, error) {
	msg := TextMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "text",
		Text:             Text{PreviewURL: true, Body: body},
	}
	return c.post(ctx, phoneNumberID, accessToken, msg)
}

func (c *Client) SendInteractive(ctx context.Context, phoneNumberID, accessToken, to string, interactive Interactive) (json.RawMessage, error) {
	msg := InteractiveMessage{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               to,
		Type:             "interactive",
		Interactive:      interactive,
	}
	return c.post(ctx, phoneNumberID, accessToken, msg)
}

func (c *Client) post(ctx context.Context, phoneNumberID, accessToken string, payload any) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("whatsapp: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("whatsapp: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("whatsapp: api error (%d): %s", resp.StatusCode, graphErrorMessage(respBody))
	}
	return respBody, nil
}

func graphErrorMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return string(body)
}
