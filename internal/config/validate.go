package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Scheduler.validate(); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("gateway.timeout must be > 0 (got %v)", c.Gateway.Timeout)
	}

	switch c.Gateway.ProviderName() {
	case "simulated":
		if err := c.Simulated.validate(); err != nil {
			return fmt.Errorf("simulated: %w", err)
		}
	case ProviderInfobip:
		if strings.TrimSpace(c.Infobip.APIKey) == "" {
			return fmt.Errorf("infobip.api_key is required when gateway.simulated is false")
		}
		if strings.TrimSpace(c.Infobip.BaseURL) == "" {
			return fmt.Errorf("infobip.base_url is required when gateway.simulated is false")
		}
	case ProviderTwilio:
		if c.Twilio.AccountSID == "" || c.Twilio.AuthToken == "" || c.Twilio.FromNumber == "" {
			return fmt.Errorf("twilio.account_sid, twilio.auth_token and twilio.from_number are required for provider twilio")
		}
	default:
		return fmt.Errorf("gateway.provider must be %q or %q (got %q)", ProviderInfobip, ProviderTwilio, c.Gateway.Provider)
	}

	if c.Webhook.RateLimitPerMinute < 0 {
		return fmt.Errorf("webhook.rate_limit_per_minute must be >= 0 (got %d)", c.Webhook.RateLimitPerMinute)
	}
	if c.Webhook.VerifySignatures && (c.Twilio.AuthToken == "" || c.Gateway.CallbackURL == "") {
		return fmt.Errorf("webhook.verify_signatures requires twilio.auth_token and gateway.callback_url")
	}
	// Only Twilio signs its callbacks; Infobip JSON reports would all be refused.
	if c.Webhook.VerifySignatures && c.Gateway.ProviderName() == ProviderInfobip {
		return fmt.Errorf("webhook.verify_signatures cannot be used with provider infobip")
	}

	return nil
}

func (s *SchedulerConfig) validate() error {
	if s.Interval <= 0 {
		return fmt.Errorf("interval must be > 0 (got %v)", s.Interval)
	}
	if s.BatchSize < 1 || s.BatchSize > 1000 {
		return fmt.Errorf("batch_size must be in [1, 1000] (got %d)", s.BatchSize)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", s.Workers)
	}
	if s.DispatchRate < 0 {
		return fmt.Errorf("dispatch_rate must be >= 0 (got %v)", s.DispatchRate)
	}
	return nil
}

func (s *SimulatedConfig) validate() error {
	if s.DispatchSuccessRate < 0 || s.DispatchSuccessRate > 1 {
		return fmt.Errorf("dispatch_success_rate must be in [0, 1] (got %v)", s.DispatchSuccessRate)
	}
	if s.CompletionSuccessRate < 0 || s.CompletionSuccessRate > 1 {
		return fmt.Errorf("completion_success_rate must be in [0, 1] (got %v)", s.CompletionSuccessRate)
	}
	if s.MinDelay < 0 || s.MaxDelay < s.MinDelay {
		return fmt.Errorf("delays must satisfy 0 <= min_delay <= max_delay (got %v, %v)", s.MinDelay, s.MaxDelay)
	}
	if s.CompletionTimeout <= 0 {
		return fmt.Errorf("completion_timeout must be > 0 (got %v)", s.CompletionTimeout)
	}
	return nil
}
