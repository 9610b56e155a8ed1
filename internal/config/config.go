package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ValueChain   ChainConfig   `yaml:"value_chain"`
	UtilityChain ChainConfig   `yaml:"utility_chain"`
	Operator     OperatorConfig `yaml:"operator"`
	Relay        RelayConfig   `yaml:"relay"`
	Server       ServerConfig  `yaml:"server"`
	Alert        AlertConfig   `yaml:"alert"`
	Tracing      TracingConfig `yaml:"tracing"`
	Log          LogConfig     `yaml:"log"`
}

type ChainConfig struct {
	RPCURL          string  `yaml:"rpc_url"`
	GatewayAddress  string  `yaml:"gateway_address"`
	RegistryAddress string  `yaml:"registry_address"` // utility chain only
	RPCRatePerSec   float64 `yaml:"rpc_rate_per_sec"`
	RPCBurst        int     `yaml:"rpc_burst"`
}

type OperatorConfig struct {
	Address    string `yaml:"address"`
	Passphrase string `yaml:"passphrase"`
}

type RelayConfig struct {
	DelayBlocks    int64 `yaml:"delay_blocks"`
	PollIntervalMs int   `yaml:"poll_interval_ms"`
	MaxScanRange   int64 `yaml:"max_scan_range"`
	NativeTokenID  string `yaml:"native_token_id"`
}

type ServerConfig struct {
	HealthPort int `yaml:"health_port"`
}

type AlertConfig struct {
	WebhookURL      string `yaml:"webhook_url"`
	SlackWebhookURL string `yaml:"slack_webhook_url"`
	CooldownSec     int    `yaml:"cooldown_sec"`
}

type TracingConfig struct {
	Endpoint string `yaml:"endpoint"`
	Insecure bool   `yaml:"insecure"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads the optional YAML file named by RELAYER_CONFIG_FILE, then
// applies environment variable overrides on top.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("RELAYER_CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.ValueChain.RPCURL = getEnv("VALUE_CHAIN_RPC_URL", cfg.ValueChain.RPCURL)
	cfg.ValueChain.GatewayAddress = getEnv("VALUE_CHAIN_GATEWAY", cfg.ValueChain.GatewayAddress)
	cfg.ValueChain.RPCRatePerSec = getEnvFloat("VALUE_CHAIN_RPC_RPS", defaultFloat(cfg.ValueChain.RPCRatePerSec, 10))
	cfg.ValueChain.RPCBurst = getEnvInt("VALUE_CHAIN_RPC_BURST", defaultInt(cfg.ValueChain.RPCBurst, 20))

	cfg.UtilityChain.RPCURL = getEnv("UTILITY_CHAIN_RPC_URL", cfg.UtilityChain.RPCURL)
	cfg.UtilityChain.GatewayAddress = getEnv("UTILITY_CHAIN_COGATEWAY", cfg.UtilityChain.GatewayAddress)
	cfg.UtilityChain.RegistryAddress = getEnv("UTILITY_CHAIN_REGISTRY", cfg.UtilityChain.RegistryAddress)
	cfg.UtilityChain.RPCRatePerSec = getEnvFloat("UTILITY_CHAIN_RPC_RPS", defaultFloat(cfg.UtilityChain.RPCRatePerSec, 10))
	cfg.UtilityChain.RPCBurst = getEnvInt("UTILITY_CHAIN_RPC_BURST", defaultInt(cfg.UtilityChain.RPCBurst, 20))

	cfg.Operator.Address = getEnv("OPERATOR_ADDRESS", cfg.Operator.Address)
	cfg.Operator.Passphrase = getEnv("OPERATOR_PASSPHRASE", cfg.Operator.Passphrase)

	cfg.Relay.DelayBlocks = int64(getEnvInt("CONFIRMATION_DELAY_BLOCKS", defaultInt(int(cfg.Relay.DelayBlocks), 6)))
	cfg.Relay.PollIntervalMs = getEnvInt("POLL_INTERVAL_MS", defaultInt(cfg.Relay.PollIntervalMs, 5000))
	cfg.Relay.MaxScanRange = int64(getEnvInt("MAX_SCAN_RANGE", defaultInt(int(cfg.Relay.MaxScanRange), 1000)))
	cfg.Relay.NativeTokenID = getEnv("NATIVE_TOKEN_ID", cfg.Relay.NativeTokenID)

	cfg.Server.HealthPort = getEnvInt("HEALTH_PORT", defaultInt(cfg.Server.HealthPort, 8080))

	cfg.Alert.WebhookURL = getEnv("ALERT_WEBHOOK_URL", cfg.Alert.WebhookURL)
	cfg.Alert.SlackWebhookURL = getEnv("ALERT_SLACK_WEBHOOK_URL", cfg.Alert.SlackWebhookURL)
	cfg.Alert.CooldownSec = getEnvInt("ALERT_COOLDOWN_SEC", defaultInt(cfg.Alert.CooldownSec, 300))

	cfg.Tracing.Endpoint = getEnv("OTLP_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.Insecure = getEnvBool("OTLP_INSECURE", cfg.Tracing.Insecure)

	cfg.Log.Level = getEnv("LOG_LEVEL", defaultStr(cfg.Log.Level, "info"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Relay.PollIntervalMs) * time.Millisecond
}

func (c *Config) AlertCooldown() time.Duration {
	return time.Duration(c.Alert.CooldownSec) * time.Second
}

func (c *Config) validate() error {
	if c.ValueChain.RPCURL == "" {
		return fmt.Errorf("VALUE_CHAIN_RPC_URL is required")
	}
	if c.UtilityChain.RPCURL == "" {
		return fmt.Errorf("UTILITY_CHAIN_RPC_URL is required")
	}
	if c.ValueChain.GatewayAddress == "" {
		return fmt.Errorf("VALUE_CHAIN_GATEWAY is required")
	}
	if c.UtilityChain.GatewayAddress == "" {
		return fmt.Errorf("UTILITY_CHAIN_COGATEWAY is required")
	}
	if c.UtilityChain.RegistryAddress == "" {
		return fmt.Errorf("UTILITY_CHAIN_REGISTRY is required")
	}
	if c.Operator.Address == "" {
		return fmt.Errorf("OPERATOR_ADDRESS is required")
	}
	if c.Relay.NativeTokenID == "" {
		return fmt.Errorf("NATIVE_TOKEN_ID is required")
	}
	if c.Relay.DelayBlocks <= 0 {
		return fmt.Errorf("CONFIRMATION_DELAY_BLOCKS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func defaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func defaultFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
