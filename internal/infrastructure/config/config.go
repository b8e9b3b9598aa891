package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/service"
)

type JWTConfig struct {
	Secret         string
	PrivateKeyFile string
	Issuer         string
	Expiration     time.Duration
}

type KafkaConfig struct {
	Topic         string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	Brokers       []string
	TLS           bool
	SASLEnabled   bool
}

// Enabled reports whether events go to Kafka rather than the log.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

type TracingConfig struct {
	Endpoint    string
	SampleRatio float64
	Insecure    bool
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type Config struct {
	ServiceName      string
	LogLevel         string
	LogFormat        string
	OfferCatalogFile string
	JWT              JWTConfig
	Kafka            KafkaConfig
	TLS              TLSConfig
	Tracing          TracingConfig
	RateLimit        RateLimitConfig
	Policy           service.Policy
	GRPCPort         int
	HTTPPort         int
	ShutdownTimeout  time.Duration
	DemoUsers        bool
	GRPCReflection   bool
}

// Load reads the configuration from the environment. Unparseable values fall
// back to their defaults; Validate catches values that parse but make no sense.
func Load() Config {
	policy := service.DefaultPolicy()
	policy.ApproveFOIR = getEnvDecimal("FOIR_APPROVE", policy.ApproveFOIR)
	policy.RejectFOIR = getEnvDecimal("FOIR_REJECT", policy.RejectFOIR)
	policy.SafetyMargin = getEnvDecimal("SAFETY_MARGIN", policy.SafetyMargin)
	policy.BaselineRate = getEnvDecimal("BASELINE_RATE", policy.BaselineRate)
	policy.RateFloor = getEnvDecimal("RATE_FLOOR", policy.RateFloor)
	policy.BorderlineBand = getEnvDecimal("BORDERLINE_BAND", policy.BorderlineBand)

	return Config{
		ServiceName:      getEnv("SERVICE_NAME", "smartloan"),
		GRPCPort:         getEnvInt("GRPC_PORT", 9090),
		HTTPPort:         getEnvInt("HTTP_PORT", 8080),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		OfferCatalogFile: getEnv("OFFER_CATALOG_FILE", ""),
		ShutdownTimeout:  getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		DemoUsers:        getEnvBool("DEMO_USERS_ENABLED", true),
		GRPCReflection:   getEnvBool("GRPC_REFLECTION", false),
		JWT: JWTConfig{
			Secret:         getEnv("JWT_SECRET", ""),
			PrivateKeyFile: getEnv("JWT_PRIVATE_KEY_FILE", ""),
			Issuer:         getEnv("JWT_ISSUER", "smartloan"),
			Expiration:     getEnvDuration("JWT_EXPIRATION", time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS"),
			Topic:         getEnv("KAFKA_TOPIC", "smartloan.eligibility"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		Tracing: TracingConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Insecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio: getEnvFloat("OTEL_TRACES_SAMPLE_RATIO", 1.0),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT", 20),
			Burst:             getEnvInt("RATE_LIMIT_BURST", 40),
		},
		Policy: policy,
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.JWT.Secret == "" && c.JWT.PrivateKeyFile == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PRIVATE_KEY_FILE is required"))
	}
	if c.JWT.Expiration <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION must be positive"))
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT %d out of range", c.HTTPPort))
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("GRPC_PORT %d out of range", c.GRPCPort))
	}
	if c.HTTPPort == c.GRPCPort {
		errs = append(errs, errors.New("HTTP_PORT and GRPC_PORT must differ"))
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT and RATE_LIMIT_BURST must be positive"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set"))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, errors.New("OTEL_TRACES_SAMPLE_RATIO must be in [0, 1]"))
	}
	if err := c.Policy.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("policy: %w", err))
	}

	return errors.Join(errs...)
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
