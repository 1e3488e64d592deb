package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/reminder-worker/internal/adapter/provider/infobip"
	"github.com/heartmarshall/reminder-worker/internal/adapter/provider/simulated"
	"github.com/heartmarshall/reminder-worker/internal/adapter/provider/twilio"
	"github.com/heartmarshall/reminder-worker/internal/config"
	"github.com/heartmarshall/reminder-worker/internal/provider"
)

// NewGateway builds the delivery gateway selected by cfg. The simulated
// gateway is also returned on its own so the caller can drain its
// completion queue on shutdown; it is nil for real providers.
func NewGateway(cfg *config.Config, sink provider.CompletionSink, logger *slog.Logger) (provider.Gateway, *simulated.Gateway, error) {
	switch name := cfg.Gateway.ProviderName(); name {
	case simulated.Name:
		g := simulated.New(cfg.Simulated, sink, logger)
		return g, g, nil
	case config.ProviderInfobip:
		return infobip.New(cfg.Infobip, cfg.Gateway, logger), nil, nil
	case config.ProviderTwilio:
		return twilio.New(cfg.Twilio, cfg.Gateway, logger), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown gateway provider %q", name)
	}
}
