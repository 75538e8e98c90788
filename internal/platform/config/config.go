package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures process level configuration for the diagnostics daemon.
type Server struct {
	Addr      string `env:"ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Wait  WaitConfig  `envPrefix:"WAIT_"`
	Audit AuditConfig `envPrefix:"AUDIT_"`
	Redis RedisConfig `envPrefix:"REDIS_"`
	Kafka KafkaConfig `envPrefix:"KAFKA_"`
	OTel  OTelConfig  `envPrefix:"OTEL_"`
}

// WaitConfig bounds key waits requested over the diagnostics surface.
type WaitConfig struct {
	DefaultTimeout time.Duration `env:"DEFAULT_TIMEOUT" envDefault:"2s"`
	MaxTimeout     time.Duration `env:"MAX_TIMEOUT" envDefault:"30s"`
}

// AuditConfig sizes the in-process audit buffer. Zero means synchronous.
type AuditConfig struct {
	BufferSize int `env:"BUFFER" envDefault:"1024"`
}

// RedisConfig configures the optional Redis certificate store.
// An empty URL disables Redis.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
}

// KafkaConfig configures the optional Kafka audit sink.
// No brokers disables Kafka.
type KafkaConfig struct {
	Brokers           []string `env:"BROKERS" envSeparator:","`
	Topic             string   `env:"TOPIC" envDefault:"ocdm.audit"`
	Partitions        int32    `env:"PARTITIONS" envDefault:"1"`
	ReplicationFactor int16    `env:"REPLICATION_FACTOR" envDefault:"1"`
}

// OTelConfig enables OTLP trace export when an endpoint is set.
type OTelConfig struct {
	Endpoint    string `env:"ENDPOINT"`
	Enabled     bool   `env:"ENABLED" envDefault:"true"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"ocdmd"`
}

// EnvPrefix is prepended to every variable name, e.g. OCDM_REDIS_URL.
const EnvPrefix = "OCDM_"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the daemon cannot run with.
func (s Server) Validate() error {
	if s.Wait.DefaultTimeout < 0 || s.Wait.MaxTimeout < 0 {
		return fmt.Errorf("wait timeouts must not be negative")
	}
	if s.Wait.DefaultTimeout > s.Wait.MaxTimeout {
		return fmt.Errorf("default wait timeout %s exceeds max %s", s.Wait.DefaultTimeout, s.Wait.MaxTimeout)
	}
	if s.Audit.BufferSize < 0 {
		return fmt.Errorf("audit buffer must not be negative")
	}
	return nil
}

// RedisEnabled reports whether a Redis URL was configured.
func (s Server) RedisEnabled() bool { return s.Redis.URL != "" }

// KafkaEnabled reports whether Kafka brokers were configured.
func (s Server) KafkaEnabled() bool { return len(s.Kafka.Brokers) > 0 }
