// Package twilio implements the real delivery gateway on top of Twilio
// Programmable Messaging.
package twilio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioClient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/heartmarshall/reminder-worker/internal/config"
	"github.com/heartmarshall/reminder-worker/internal/provider"
)

// ReminderIDParam is the query parameter carrying the correlation id on
// status callbacks.
const ReminderIDParam = "reminder_id"

// messageCreator is the subset of the Twilio REST API used here.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Client sends reminders as SMS through Twilio.
type Client struct {
	api         messageCreator
	from        string
	callbackURL string
	log         *slog.Logger
}

// New creates a Client backed by the Twilio REST API. The gateway timeout is
// enforced by the HTTP client twilio-go sends through.
func New(cfg config.TwilioConfig, gw config.GatewayConfig, logger *slog.Logger) *Client {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Client: newBaseClient(cfg, gw.Timeout),
	})
	return newClient(rest.Api, cfg.FromNumber, gw, logger)
}

func newBaseClient(cfg config.TwilioConfig, timeout time.Duration) *twilioClient.Client {
	c := &twilioClient.Client{Credentials: twilioClient.NewCredentials(cfg.AccountSID, cfg.AuthToken)}
	c.SetAccountSid(cfg.AccountSID)
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

func newClient(api messageCreator, from string, gw config.GatewayConfig, logger *slog.Logger) *Client {
	return &Client{
		api:         api,
		from:        from,
		callbackURL: gw.CallbackURL,
		log:         logger.With("adapter", "twilio"),
	}
}

// Name implements provider.Gateway.
func (c *Client) Name() string { return config.ProviderTwilio }

// AttemptDelivery sends one SMS. twilio-go takes no context, so cancellation
// is only observed before the request starts.
func (c *Client) AttemptDelivery(ctx context.Context, d provider.Delivery) provider.Outcome {
	if err := ctx.Err(); err != nil {
		return c.fail(ctx, d, "Request cancelled")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(d.Destination)
	params.SetFrom(c.from)
	params.SetBody("Reminder: " + d.Message)
	if cb := c.statusCallback(d.CorrelationID); cb != "" {
		params.SetStatusCallback(cb)
	}

	msg, err := c.api.CreateMessage(params)
	if err != nil {
		if isTimeout(err) {
			return c.fail(ctx, d, "Request timeout")
		}
		return c.fail(ctx, d, err.Error())
	}
	if msg == nil || msg.Sid == nil || *msg.Sid == "" {
		return c.fail(ctx, d, "No message SID in response")
	}

	status := "queued"
	if msg.Status != nil && *msg.Status != "" {
		status = strings.ToLower(*msg.Status)
	}

	c.log.InfoContext(ctx, "twilio accepted",
		slog.String("correlation_id", d.CorrelationID),
		slog.String("sid", *msg.Sid),
		slog.String("status", status),
	)

	return provider.Outcome{
		ExternalID:     *msg.Sid,
		ProviderStatus: status,
		Success:        true,
	}
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (c *Client) statusCallback(correlationID string) string {
	if c.callbackURL == "" {
		return ""
	}
	u, err := url.Parse(c.callbackURL)
	if err != nil {
		return fmt.Sprintf("%s?%s=%s", c.callbackURL, ReminderIDParam, url.QueryEscape(correlationID))
	}
	q := u.Query()
	q.Set(ReminderIDParam, correlationID)
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) fail(ctx context.Context, d provider.Delivery, msg string) provider.Outcome {
	c.log.ErrorContext(ctx, "twilio send failed",
		slog.String("correlation_id", d.CorrelationID),
		slog.String("error", msg),
	)
	return provider.Failure(msg)
}
