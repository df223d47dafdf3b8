package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8090, cfg.GRPCPort)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "accountd", cfg.ServiceName)
	assert.False(t, cfg.GRPCReflection)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.AccountAPI.Timeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "account-events", cfg.Kafka.Topic)
	assert.Equal(t, "bib-gateway", cfg.JWT.Issuer)
	assert.False(t, cfg.TLS.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("HTTP_PORT", "7001")
	t.Setenv("SERVICE_NAME", "accountd-test")
	t.Setenv("GRPC_REFLECTION", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ACCOUNT_API_URL", "https://api.example.test")
	t.Setenv("ACCOUNT_API_TIMEOUT", "2s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("ACCOUNT_EVENTS_TOPIC", "accounts.v1")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TLS_CERT_FILE", "/tls/cert.pem")
	t.Setenv("TLS_KEY_FILE", "/tls/key.pem")

	cfg := Load()

	assert.Equal(t, 7000, cfg.GRPCPort)
	assert.Equal(t, 7001, cfg.HTTPPort)
	assert.Equal(t, "accountd-test", cfg.ServiceName)
	assert.True(t, cfg.GRPCReflection)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://api.example.test", cfg.AccountAPI.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.AccountAPI.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "accounts.v1", cfg.Kafka.Topic)
	assert.True(t, cfg.TLS.Enabled())
	require.NoError(t, cfg.Validate())
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("GRPC_PORT", "not-a-port")
	t.Setenv("ACCOUNT_API_TIMEOUT", "soon")
	t.Setenv("GRPC_REFLECTION", "maybe")

	cfg := Load()
	assert.Equal(t, 8090, cfg.GRPCPort)
	assert.Equal(t, 10*time.Second, cfg.AccountAPI.Timeout)
	assert.False(t, cfg.GRPCReflection)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Load()
		cfg.JWT.Secret = "s3cret"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "no jwt key", mutate: func(c *Config) { c.JWT.Secret = "" }, want: "JWT_SECRET"},
		{name: "same ports", mutate: func(c *Config) { c.HTTPPort = c.GRPCPort }, want: "must differ"},
		{name: "port out of range", mutate: func(c *Config) { c.GRPCPort = 70000 }, want: "GRPC_PORT"},
		{name: "no api url", mutate: func(c *Config) { c.AccountAPI.BaseURL = "" }, want: "ACCOUNT_API_URL"},
		{name: "no brokers", mutate: func(c *Config) { c.Kafka.Brokers = nil }, want: "KAFKA_BROKERS"},
		{name: "sasl without user", mutate: func(c *Config) { c.Kafka.SASLMechanism = "PLAIN" }, want: "KAFKA_SASL_USERNAME"},
		{name: "half tls", mutate: func(c *Config) { c.TLS.CertFile = "/cert.pem" }, want: "TLS_CERT_FILE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
