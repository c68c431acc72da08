package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	_, err := load(nil, lookupFrom(map[string]string{
		"GATEWAY_BASE_URL": "https://api.gateway.example",
	}))
	if err == nil {
		t.Fatal("expected error when database URI is missing")
	}
}

func TestLoadRequiresGatewayURL(t *testing.T) {
	_, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/gomall",
	}))
	if err == nil {
		t.Fatal("expected error when gateway base URL is missing")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":     "postgres://localhost/gomall",
		"GATEWAY_BASE_URL": "https://api.gateway.example",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address: %s", cfg.RunAddress)
	}
	if cfg.PaymentPollInterval != defaultPaymentPollInterval {
		t.Fatalf("unexpected poll interval: %s", cfg.PaymentPollInterval)
	}
	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Fatalf("unexpected worker pool size: %d", cfg.WorkerPoolSize)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected empty redis addr, got %s", cfg.RedisAddr)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("expected no kafka brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":          "postgres://localhost/gomall",
		"GATEWAY_BASE_URL":      "https://api.gateway.example",
		"RUN_ADDRESS":           ":9090",
		"KAFKA_BROKERS":         "kafka-1:9092, kafka-2:9092",
		"WEBHOOK_TRUSTED_IPS":   "52.78.100.19,52.78.48.223",
		"PAYMENT_POLL_INTERVAL": "7s",
		"WORKER_POOL_SIZE":      "2",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":9090" {
		t.Fatalf("unexpected run address: %s", cfg.RunAddress)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
	if len(cfg.WebhookTrustedIPs) != 2 {
		t.Fatalf("unexpected trusted ips: %v", cfg.WebhookTrustedIPs)
	}
	if cfg.PaymentPollInterval != 7*time.Second {
		t.Fatalf("unexpected poll interval: %s", cfg.PaymentPollInterval)
	}
	if cfg.WorkerPoolSize != 2 {
		t.Fatalf("unexpected worker pool size: %d", cfg.WorkerPoolSize)
	}
}

func TestLoadFlagOverrides(t *testing.T) {
	cfg, err := load([]string{"-a", ":7070", "-poll-interval", "500ms", "-kafka-brokers", "broker:9092"}, lookupFrom(map[string]string{
		"DATABASE_URI":     "postgres://localhost/gomall",
		"GATEWAY_BASE_URL": "https://api.gateway.example",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":7070" {
		t.Fatalf("unexpected run address: %s", cfg.RunAddress)
	}
	if cfg.PaymentPollInterval != 500*time.Millisecond {
		t.Fatalf("unexpected poll interval: %s", cfg.PaymentPollInterval)
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "broker:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
}

func TestLoadInvalidPollInterval(t *testing.T) {
	_, err := load([]string{"-poll-interval", "soon"}, lookupFrom(map[string]string{
		"DATABASE_URI":     "postgres://localhost/gomall",
		"GATEWAY_BASE_URL": "https://api.gateway.example",
	}))
	if err == nil {
		t.Fatal("expected error for invalid poll interval")
	}
}

func TestLoadTokenSecretFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret")
	if err := os.WriteFile(path, []byte("file-secret\n"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":      "postgres://localhost/gomall",
		"GATEWAY_BASE_URL":  "https://api.gateway.example",
		"TOKEN_SECRET_FILE": path,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenSecret != "file-secret" {
		t.Fatalf("unexpected token secret: %q", cfg.TokenSecret)
	}

	if _, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":      "postgres://localhost/gomall",
		"GATEWAY_BASE_URL":  "https://api.gateway.example",
		"TOKEN_SECRET_FILE": filepath.Join(dir, "missing"),
	})); err == nil {
		t.Fatal("expected error for missing secret file")
	}
}

func TestSplitCSV(t *testing.T) {
	if got := splitCSV(""); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	got := splitCSV(" a ,, b ")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected result: %v", got)
	}
}
