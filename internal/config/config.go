package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Sink drivers.
const (
	SinkKafka = "kafka"
	SinkS3    = "s3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Report profile. Empty values leave the profile file or built-in
	// defaults in place.
	ProfilePath     string
	BaseDir         string
	Layout          string
	ZoneLabel       string
	MeasurementFile string

	// Kafka pipeline.
	PipelineEnabled    bool
	KafkaBrokers       []string
	KafkaSourceTopic   string
	KafkaSinkTopic     string
	KafkaGroupID       string
	BatchSize          int
	BatchFlushInterval time.Duration

	// Sink selection and S3 settings.
	SinkDriver  string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
	S3Prefix    string

	// Static S3 credentials. The default AWS credential chain is used when
	// either is empty.
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	pipelineEnabled, err := parseBool("PIPELINE_ENABLED", false)
	if err != nil {
		return nil, err
	}

	pathStyle, err := parseBool("S3_PATH_STYLE", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ProfilePath:     os.Getenv("REPORT_PROFILE"),
		BaseDir:         os.Getenv("REPORT_BASE_DIR"),
		Layout:          os.Getenv("REPORT_LAYOUT"),
		ZoneLabel:       os.Getenv("REPORT_ZONE_LABEL"),
		MeasurementFile: os.Getenv("MEASUREMENT_FILE"),

		PipelineEnabled:    pipelineEnabled,
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "methane-overrides"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "methane-reports"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "methane-report-service"),
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		SinkDriver:  strings.ToLower(sharedcfg.EnvOrDefault("SINK_DRIVER", SinkKafka)),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    sharedcfg.EnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3PathStyle: pathStyle,
		S3Prefix:    sharedcfg.EnvOrDefault("S3_PREFIX", "reports/"),

		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.SinkDriver {
	case SinkKafka, SinkS3:
	default:
		return fmt.Errorf("invalid SINK_DRIVER %q: want %s or %s", c.SinkDriver, SinkKafka, SinkS3)
	}
	if !c.PipelineEnabled {
		return nil
	}
	if len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required")
	}
	if c.KafkaSourceTopic == "" {
		return errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if c.SinkDriver == SinkKafka && c.KafkaSinkTopic == "" {
		return errors.New("KAFKA_SINK_TOPIC is required")
	}
	if c.SinkDriver == SinkS3 && c.S3Bucket == "" {
		return errors.New("S3_BUCKET is required when SINK_DRIVER is s3")
	}
	return nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, s)
	}
	return b, nil
}
