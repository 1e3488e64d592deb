// Package infobip implements the real delivery gateway on top of the Infobip
// SMS API.
package infobip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/heartmarshall/reminder-worker/internal/config"
	"github.com/heartmarshall/reminder-worker/internal/provider"
)

const (
	sendPath        = "/sms/2/text/advanced"
	maxResponseBody = 1 << 20
)

// Client sends reminders as SMS through Infobip.
type Client struct {
	baseURL     string
	apiKey      string
	sender      string
	callbackURL string
	httpClient  *http.Client
	log         *slog.Logger
}

// New creates a Client from the Infobip credentials and gateway settings.
func New(cfg config.InfobipConfig, gw config.GatewayConfig, logger *slog.Logger) *Client {
	sender := cfg.Sender
	if sender == "" {
		sender = "VoiceReminder"
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		sender:      sender,
		callbackURL: gw.CallbackURL,
		httpClient:  &http.Client{Timeout: gw.Timeout},
		log:         logger.With("adapter", "infobip"),
	}
}

// Name implements provider.Gateway.
func (c *Client) Name() string { return config.ProviderInfobip }

// AttemptDelivery sends one SMS. The correlation id travels as callbackData
// so delivery reports can be matched back to the reminder.
func (c *Client) AttemptDelivery(ctx context.Context, d provider.Delivery) provider.Outcome {
	msg := outboundMessage{
		From:         c.sender,
		Destinations: []destination{{To: d.Destination}},
		Text:         "Reminder: " + d.Message,
		CallbackData: d.CorrelationID,
	}
	if c.callbackURL != "" {
		msg.NotifyURL = c.callbackURL
		msg.NotifyContentType = "application/json"
	}

	payload, err := json.Marshal(sendRequest{Messages: []outboundMessage{msg}})
	if err != nil {
		return c.fail(ctx, d, fmt.Sprintf("encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(payload))
	if err != nil {
		return c.fail(ctx, d, fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("Authorization", "App "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.InfoContext(ctx, "infobip send", slog.String("correlation_id", d.CorrelationID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return c.fail(ctx, d, "Request timeout")
		}
		return c.fail(ctx, d, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return c.fail(ctx, d, fmt.Sprintf("read body: %v", err))
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return c.fail(ctx, d, fmt.Sprintf("API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var parsed sendResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return c.fail(ctx, d, fmt.Sprintf("decode response: %v", err))
	}
	if len(parsed.Messages) == 0 {
		return c.fail(ctx, d, "No messages in response")
	}

	first := parsed.Messages[0]
	externalID := first.MessageID
	if externalID == "" {
		externalID = parsed.BulkID
	}
	if externalID == "" {
		return c.fail(ctx, d, "No message id in response")
	}
	group := first.Status.GroupName
	if group == "" {
		group = "PENDING"
	}

	c.log.InfoContext(ctx, "infobip accepted",
		slog.String("correlation_id", d.CorrelationID),
		slog.String("message_id", externalID),
		slog.String("group", group),
	)

	return provider.Outcome{
		ExternalID:     externalID,
		ProviderStatus: strings.ToLower(group),
		Success:        true,
	}
}

func (c *Client) fail(ctx context.Context, d provider.Delivery, msg string) provider.Outcome {
	c.log.ErrorContext(ctx, "infobip send failed",
		slog.String("correlation_id", d.CorrelationID),
		slog.String("error", msg),
	)
	return provider.Failure(msg)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
