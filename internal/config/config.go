package config

import (
	"strings"
	"time"
)

// Gateway provider names accepted by GatewayConfig.Provider.
const (
	ProviderInfobip = "infobip"
	ProviderTwilio  = "twilio"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Simulated SimulatedConfig `yaml:"simulated"`
	Infobip   InfobipConfig   `yaml:"infobip"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	Webhook   WebhookConfig   `yaml:"webhook"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8001"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"15"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SchedulerConfig controls the claim-and-dispatch poller.
type SchedulerConfig struct {
	Interval     time.Duration `yaml:"interval"      env:"SCHEDULER_INTERVAL"      env-default:"30s"`
	BatchSize    int           `yaml:"batch_size"    env:"SCHEDULER_BATCH_SIZE"    env-default:"50"`
	Workers      int           `yaml:"workers"       env:"SCHEDULER_WORKERS"       env-default:"1"`
	DispatchRate float64       `yaml:"dispatch_rate" env:"SCHEDULER_DISPATCH_RATE" env-default:"0"`
}

// GatewayConfig selects and tunes the delivery provider.
type GatewayConfig struct {
	Simulated   bool          `yaml:"simulated"    env:"GATEWAY_SIMULATED"    env-default:"true"`
	Provider    string        `yaml:"provider"     env:"GATEWAY_PROVIDER"     env-default:"infobip"`
	Timeout     time.Duration `yaml:"timeout"      env:"GATEWAY_TIMEOUT"      env-default:"30s"`
	CallbackURL string        `yaml:"callback_url" env:"GATEWAY_CALLBACK_URL"`
}

// SimulatedConfig holds the probabilities and delays of the simulated gateway.
type SimulatedConfig struct {
	DispatchSuccessRate   float64       `yaml:"dispatch_success_rate"   env:"SIMULATED_DISPATCH_SUCCESS_RATE"   env-default:"0.9"`
	CompletionSuccessRate float64       `yaml:"completion_success_rate" env:"SIMULATED_COMPLETION_SUCCESS_RATE" env-default:"0.95"`
	MinDelay              time.Duration `yaml:"min_delay"               env:"SIMULATED_MIN_DELAY"               env-default:"2s"`
	MaxDelay              time.Duration `yaml:"max_delay"               env:"SIMULATED_MAX_DELAY"               env-default:"5s"`
	CompletionTimeout     time.Duration `yaml:"completion_timeout"      env:"SIMULATED_COMPLETION_TIMEOUT"      env-default:"10s"`
}

// InfobipConfig holds Infobip SMS API credentials.
type InfobipConfig struct {
	BaseURL string `yaml:"base_url" env:"INFOBIP_BASE_URL" env-default:"https://api.infobip.com"`
	APIKey  string `yaml:"api_key"  env:"INFOBIP_API_KEY"`
	Sender  string `yaml:"sender"   env:"INFOBIP_SENDER"   env-default:"VoiceReminder"`
}

// TwilioConfig holds Twilio Messaging credentials.
type TwilioConfig struct {
	AccountSID string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `yaml:"auth_token"  env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `yaml:"from_number" env:"TWILIO_FROM_NUMBER"`
}

// WebhookConfig holds inbound callback settings.
type WebhookConfig struct {
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute" env:"WEBHOOK_RATE_LIMIT"      env-default:"600"`
	MaxBodyBytes       int64         `yaml:"max_body_bytes"        env:"WEBHOOK_MAX_BODY_BYTES"  env-default:"1048576"`
	LimiterCleanup     time.Duration `yaml:"limiter_cleanup"       env:"WEBHOOK_LIMITER_CLEANUP" env-default:"5m"`
	// TrustProxy reads the client address from X-Forwarded-For / X-Real-IP.
	TrustProxy bool `yaml:"trust_proxy" env:"WEBHOOK_TRUST_PROXY" env-default:"false"`
	// VerifySignatures accepts only form callbacks carrying a valid
	// X-Twilio-Signature; JSON callbacks are refused. Requires
	// twilio.auth_token and gateway.callback_url.
	VerifySignatures bool `yaml:"verify_signatures" env:"WEBHOOK_VERIFY_SIGNATURES" env-default:"false"`
}

// ProviderName returns the normalized provider name, or "simulated" when
// the simulated gateway is selected.
func (c GatewayConfig) ProviderName() string {
	if c.Simulated {
		return "simulated"
	}
	return strings.ToLower(strings.TrimSpace(c.Provider))
}
