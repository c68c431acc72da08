package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	GatewayBaseURL      string
	GatewayAPIKey       string
	GatewayAPISecret    string
	TokenSecret         string
	RedisAddr           string
	KafkaBrokers        []string
	WebhookTrustedIPs   []string
	PaymentPollInterval time.Duration
	WorkerPoolSize      int
	MaxPaymentsBatch    int
	ShutdownTimeout     time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultTokenSecret         = "change-me-in-production"
	defaultPaymentPollInterval = 5 * time.Second
	defaultWorkerPoolSize      = 4
	defaultMaxPaymentsBatch    = 32
	defaultShutdownTimeout     = 10 * time.Second
)

// Load parses configuration from an optional .env file, environment
// variables, and flags, in increasing precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:          getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:         getString(lookup, "DATABASE_URI", ""),
		GatewayBaseURL:      getString(lookup, "GATEWAY_BASE_URL", ""),
		GatewayAPIKey:       getString(lookup, "GATEWAY_API_KEY", ""),
		GatewayAPISecret:    getString(lookup, "GATEWAY_API_SECRET", ""),
		TokenSecret:         getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		RedisAddr:           getString(lookup, "REDIS_ADDR", ""),
		KafkaBrokers:        splitCSV(getString(lookup, "KAFKA_BROKERS", "")),
		WebhookTrustedIPs:   splitCSV(getString(lookup, "WEBHOOK_TRUSTED_IPS", "")),
		PaymentPollInterval: getDuration(lookup, "PAYMENT_POLL_INTERVAL", defaultPaymentPollInterval),
		WorkerPoolSize:      getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxPaymentsBatch:    getInt(lookup, "POLL_BATCH_SIZE", defaultMaxPaymentsBatch),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("gomall", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.PaymentPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		brokersStr         = strings.Join(cfg.KafkaBrokers, ",")
		trustedIPsStr      = strings.Join(cfg.WebhookTrustedIPs, ",")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayBaseURL, "g", cfg.GatewayBaseURL, "Payment gateway base URL")
	fs.StringVar(&cfg.GatewayAPIKey, "gateway-key", cfg.GatewayAPIKey, "Payment gateway API key")
	fs.StringVar(&cfg.GatewayAPISecret, "gateway-secret", cfg.GatewayAPISecret, "Payment gateway API secret")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for the product cache (empty disables caching)")
	fs.StringVar(&brokersStr, "kafka-brokers", brokersStr, "Kafka brokers for order events (empty disables publishing)")
	fs.StringVar(&trustedIPsStr, "webhook-trusted-ips", trustedIPsStr, "IPs allowed to call the payment webhook (empty allows all)")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent payment watchers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between payment reconciliation polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxPaymentsBatch, "poll-batch", cfg.MaxPaymentsBatch, "Maximum payments per polling batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.KafkaBrokers = splitCSV(brokersStr)
	cfg.WebhookTrustedIPs = splitCSV(trustedIPsStr)

	var err error

	if cfg.PaymentPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxPaymentsBatch <= 0 {
		cfg.MaxPaymentsBatch = defaultMaxPaymentsBatch
	}

	if cfg.PaymentPollInterval <= 0 {
		cfg.PaymentPollInterval = defaultPaymentPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayBaseURL == "" {
		return nil, fmt.Errorf("payment gateway base URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
