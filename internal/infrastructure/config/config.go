package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the account service.
type Config struct {
	// gRPC server port
	GRPCPort int
	// HTTP metrics/health/REST port
	HTTPPort int
	// Service name for logs and metrics
	ServiceName string
	// GRPCReflection registers the reflection service when true.
	GRPCReflection bool

	Log        LogConfig
	AccountAPI AccountAPIConfig
	Kafka      KafkaConfig
	JWT        JWTConfig
	TLS        TLSConfig
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// AccountAPIConfig points at the downstream organisation-accounts API.
type AccountAPIConfig struct {
	BaseURL string
	Timeout time.Duration
	CAFile  string
}

// KafkaConfig holds Kafka connection settings.
type KafkaConfig struct {
	Brokers       []string
	Topic         string
	TLS           bool
	CAFile        string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

// JWTConfig selects how bearer tokens are validated. PublicKey wins over PublicKeyFile,
// which wins over Secret.
type JWTConfig struct {
	Secret        string
	PublicKey     string
	PublicKeyFile string
	Issuer        string
}

// TLSConfig enables TLS on the gRPC listener when both files are set.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// Enabled reports whether server TLS is configured.
func (c TLSConfig) Enabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	return Config{
		GRPCPort:       getEnvInt("GRPC_PORT", 8090),
		HTTPPort:       getEnvInt("HTTP_PORT", 9090),
		ServiceName:    getEnv("SERVICE_NAME", "accountd"),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		AccountAPI: AccountAPIConfig{
			BaseURL: getEnv("ACCOUNT_API_URL", "http://localhost:8080"),
			Timeout: getEnvDuration("ACCOUNT_API_TIMEOUT", 10*time.Second),
			CAFile:  getEnv("ACCOUNT_API_CA_FILE", ""),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:         getEnv("ACCOUNT_EVENTS_TOPIC", "account-events"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			CAFile:        getEnv("KAFKA_CA_FILE", ""),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", ""),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKey:     getEnv("JWT_PUBLIC_KEY", ""),
			PublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
			Issuer:        getEnv("JWT_ISSUER", "bib-gateway"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
	}
}

// Validate checks required configuration values.
func (c Config) Validate() error {
	var errs []error
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("GRPC_PORT %d out of range", c.GRPCPort))
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d out of range", c.HTTPPort))
	}
	if c.GRPCPort == c.HTTPPort {
		errs = append(errs, errors.New("GRPC_PORT and HTTP_PORT must differ"))
	}
	if c.AccountAPI.BaseURL == "" {
		errs = append(errs, errors.New("ACCOUNT_API_URL is required"))
	}
	if c.AccountAPI.Timeout <= 0 {
		errs = append(errs, errors.New("ACCOUNT_API_TIMEOUT must be positive"))
	}
	if len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required"))
	}
	if c.Kafka.SASLMechanism != "" && c.Kafka.SASLUsername == "" {
		errs = append(errs, errors.New("KAFKA_SASL_USERNAME is required when KAFKA_SASL_MECHANISM is set"))
	}
	if c.JWT.Secret == "" && c.JWT.PublicKey == "" && c.JWT.PublicKeyFile == "" {
		errs = append(errs, errors.New("one of JWT_PUBLIC_KEY, JWT_PUBLIC_KEY_FILE or JWT_SECRET is required"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList splits a comma-separated value, dropping blank entries.
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
