// Package config loads all runtime configuration from the environment, with
// optional .env support for local development. Every knob has a default; only
// genuinely external settings (API keys, broker addresses) are optional and
// their absence disables the corresponding integration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures all runtime configuration for the pipeline.
type Config struct {
	App      AppConfig
	Pipeline PipelineConfig
	OpenAI   OpenAIConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Ops      OpsConfig
}

// AppConfig contains generic application level settings.
type AppConfig struct {
	Env      string
	LogLevel string
}

// PipelineConfig tunes batch generation and the processing stages.
type PipelineConfig struct {
	MessageCount   int
	BankCount      int
	Seed           int64
	MaxIterations  int
	MaxWorkers     int
	TaskTimeout    time.Duration
	FraudThreshold float64
	ReportDir      string
}

// OpenAIConfig holds credentials and tuning for the model client. An empty
// APIKey means the pipeline runs offline on deterministic rules alone.
type OpenAIConfig struct {
	APIKey   string
	Model    string
	BaseURL  string
	CacheTTL time.Duration
}

// RedisConfig controls the optional response cache. Empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig controls optional verdict publishing. No brokers disables it.
type KafkaConfig struct {
	Brokers      []string
	VerdictTopic string
}

// OpsConfig configures the operational HTTP endpoint. Empty Addr disables it.
type OpsConfig struct {
	Addr string
}

// Load reads environment variables, applies defaults, validates values and
// returns a populated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}
	cfg.App.Env = ldr.getString("APP_ENV", "development")
	cfg.App.LogLevel = ldr.getString("LOG_LEVEL", "info")

	cfg.Pipeline.MessageCount = ldr.getInt("MESSAGE_COUNT", 10)
	cfg.Pipeline.BankCount = ldr.getInt("BANK_COUNT", 6)
	cfg.Pipeline.Seed = int64(ldr.getInt("GENERATOR_SEED", 0))
	cfg.Pipeline.MaxIterations = ldr.getInt("VALIDATION_MAX_ITERATIONS", 3)
	cfg.Pipeline.MaxWorkers = ldr.getInt("FRAUD_MAX_WORKERS", 8)
	cfg.Pipeline.TaskTimeout = ldr.getDuration("FRAUD_TASK_TIMEOUT", 5*time.Second)
	cfg.Pipeline.FraudThreshold = ldr.getFloat("FRAUD_THRESHOLD", 0.5)
	cfg.Pipeline.ReportDir = ldr.getString("REPORT_DIR", ".")

	cfg.OpenAI.APIKey = ldr.getString("OPENAI_API_KEY", "")
	cfg.OpenAI.Model = ldr.getString("OPENAI_MODEL", "gpt-4o")
	cfg.OpenAI.BaseURL = ldr.getString("OPENAI_BASE_URL", "")
	cfg.OpenAI.CacheTTL = ldr.getDuration("LLM_CACHE_TTL", time.Hour)

	cfg.Redis.URL = ldr.getString("REDIS_URL", "")
	cfg.Redis.PoolSize = ldr.getInt("REDIS_POOL_SIZE", 10)
	cfg.Redis.MinIdleConns = ldr.getInt("REDIS_MIN_IDLE_CONNS", 2)
	cfg.Redis.DialTimeout = ldr.getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.Redis.ReadTimeout = ldr.getDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.Redis.WriteTimeout = ldr.getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)

	cfg.Kafka.Brokers = ldr.getStringSlice("KAFKA_BROKERS")
	cfg.Kafka.VerdictTopic = ldr.getString("KAFKA_VERDICT_TOPIC", "swift.fraud.verdicts")

	cfg.Ops.Addr = ldr.getString("OPS_ADDR", "")

	if cfg.Pipeline.MessageCount < 1 {
		ldr.addError("MESSAGE_COUNT must be at least 1")
	}
	if cfg.Pipeline.MaxIterations < 1 {
		ldr.addError("VALIDATION_MAX_ITERATIONS must be at least 1")
	}
	if cfg.Pipeline.MaxWorkers < 1 {
		ldr.addError("FRAUD_MAX_WORKERS must be at least 1")
	}
	// Zero is rejected rather than treated as "flag everything": the
	// aggregator defaults non-positive thresholds, so an explicit 0 would
	// silently turn into 0.5.
	if cfg.Pipeline.FraudThreshold <= 0 || cfg.Pipeline.FraudThreshold > 1 {
		ldr.addError("FRAUD_THRESHOLD must be greater than 0 and at most 1")
	}

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val != "" {
			return val
		}
	}
	return def
}

func (l *envLoader) getInt(key string, def int) int {
	raw := l.getString(key, "")
	if raw == "" {
		return def
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		l.addError(fmt.Sprintf("%s must be a valid integer", key))
		return def
	}
	return i
}

func (l *envLoader) getFloat(key string, def float64) float64 {
	raw := l.getString(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		l.addError(fmt.Sprintf("%s must be a valid number", key))
		return def
	}
	return f
}

func (l *envLoader) getDuration(key string, def time.Duration) time.Duration {
	raw := l.getString(key, "")
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		l.addError(fmt.Sprintf("%s must be a valid duration (e.g. 5s)", key))
		return def
	}
	return d
}

func (l *envLoader) getStringSlice(key string) []string {
	raw := l.getString(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}
