package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Evaluator EvaluatorConfig `yaml:"evaluator" mapstructure:"evaluator"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Tracker   TrackerConfig   `yaml:"tracker" mapstructure:"tracker"`
	Proposal  ProposalConfig  `yaml:"proposal" mapstructure:"proposal"`
	Approval  ApprovalConfig  `yaml:"approval" mapstructure:"approval"`
	Telegram  TelegramConfig  `yaml:"telegram" mapstructure:"telegram"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port          int    `yaml:"port" mapstructure:"port"`
	WebhookSecret string `yaml:"webhook_secret" mapstructure:"webhook_secret"`
	// StrictErrors disables the always-200 response on internal batch
	// failures. Off by default: the monitoring service auto-disables
	// webhooks that keep returning errors.
	StrictErrors bool `yaml:"strict_errors" mapstructure:"strict_errors"`
}

// PipelineConfig configures batch fan-out.
type PipelineConfig struct {
	MaxConcurrent int    `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	Platform      string `yaml:"platform" mapstructure:"platform"`
}

// EvaluatorConfig configures the decision engine.
type EvaluatorConfig struct {
	// Engine selects the decision engine: "command", "api", or "heuristic".
	Engine      string   `yaml:"engine" mapstructure:"engine"`
	Command     string   `yaml:"command" mapstructure:"command"`
	CommandArgs []string `yaml:"command_args" mapstructure:"command_args"`
	WorkDir     string   `yaml:"work_dir" mapstructure:"work_dir"`
	TimeoutSecs int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	// RatePerMinute caps engine invocations; 0 disables the limiter.
	RatePerMinute int `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
}

// AnthropicConfig holds Anthropic API settings for the API engine.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// TrackerConfig configures the external lead tracker process.
type TrackerConfig struct {
	Command     string `yaml:"command" mapstructure:"command"`
	Script      string `yaml:"script" mapstructure:"script"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ProposalConfig holds the fixed strings assembled into every proposal.
type ProposalConfig struct {
	SiteURL    string `yaml:"site_url" mapstructure:"site_url"`
	BookingURL string `yaml:"booking_url" mapstructure:"booking_url"`
	Sender     string `yaml:"sender" mapstructure:"sender"`
	Tagline    string `yaml:"tagline" mapstructure:"tagline"`
}

// ApprovalConfig configures the pending-approval store.
type ApprovalConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // memory, sqlite, postgres
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	TTLHours    int    `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// TelegramConfig holds bot credentials and the operator chat.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token" mapstructure:"bot_token"`
	ChatID   string `yaml:"chat_id" mapstructure:"chat_id"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 3001)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("pipeline.max_concurrent", 4)
	v.SetDefault("pipeline.platform", "Upwork")
	v.SetDefault("evaluator.engine", "command")
	v.SetDefault("evaluator.command", "claude")
	v.SetDefault("evaluator.command_args", []string{"--print", "--continue"})
	v.SetDefault("evaluator.timeout_secs", 60)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("tracker.command", "python3")
	v.SetDefault("tracker.script", "scripts/track-lead.py")
	v.SetDefault("tracker.timeout_secs", 30)
	v.SetDefault("proposal.site_url", "scopelock.mindprotocol.ai")
	v.SetDefault("proposal.booking_url", "cal.com/scopelock/kickoff")
	v.SetDefault("proposal.sender", "Nicolas Le Roux")
	v.SetDefault("proposal.tagline", "ScopeLock - Lock the scope. Prove the value.")
	v.SetDefault("approval.driver", "memory")
	v.SetDefault("approval.ttl_hours", 72)
	v.SetDefault("telegram.base_url", "https://api.telegram.org")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
