package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/rl1809/updatechecker/internal/common"
)

const envPrefix = "UPDATECHECKER_"

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreMySQL    = "mysql"
	StoreDynamoDB = "dynamodb"

	TopicRedis = "redis"
	TopicSNS   = "sns"
	TopicLog   = "log"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string

	Store         string
	SQLitePath    string
	MySQLDSN      string
	DynamoDBTable string
	AWSRegion     string

	RedisAddr      string
	Topic          string
	RedisChannel   string
	SNSTopicARN    string
	MutationStream string
	ConsumerGroup  string
	ConsumerName   string
	BatchSize      int

	RefreshInterval time.Duration
	RefreshWorkers  int
	FetchTimeout    time.Duration
	PublishTimeout  time.Duration

	APIKey       string
	RegistryFile string
	GitHubToken  string
}

// Merge returns c with every non-zero field of override applied.
func (c Config) Merge(override Config) Config {
	result := c
	mergeString(&result.HTTPAddr, override.HTTPAddr)
	mergeString(&result.GRPCAddr, override.GRPCAddr)
	mergeString(&result.Store, strings.ToLower(override.Store))
	mergeString(&result.SQLitePath, override.SQLitePath)
	mergeString(&result.MySQLDSN, override.MySQLDSN)
	mergeString(&result.DynamoDBTable, override.DynamoDBTable)
	mergeString(&result.AWSRegion, override.AWSRegion)
	mergeString(&result.RedisAddr, override.RedisAddr)
	mergeString(&result.Topic, strings.ToLower(override.Topic))
	mergeString(&result.RedisChannel, override.RedisChannel)
	mergeString(&result.SNSTopicARN, override.SNSTopicARN)
	mergeString(&result.MutationStream, override.MutationStream)
	mergeString(&result.ConsumerGroup, override.ConsumerGroup)
	mergeString(&result.ConsumerName, override.ConsumerName)
	mergeString(&result.APIKey, override.APIKey)
	mergeString(&result.RegistryFile, override.RegistryFile)
	mergeString(&result.GitHubToken, override.GitHubToken)
	if override.BatchSize > 0 {
		result.BatchSize = override.BatchSize
	}
	if override.RefreshInterval > 0 {
		result.RefreshInterval = override.RefreshInterval
	}
	if override.RefreshWorkers > 0 {
		result.RefreshWorkers = override.RefreshWorkers
	}
	if override.FetchTimeout > 0 {
		result.FetchTimeout = override.FetchTimeout
	}
	if override.PublishTimeout > 0 {
		result.PublishTimeout = override.PublishTimeout
	}
	return result
}

func mergeString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

// Load reads an optional .env file, then UPDATECHECKER_* variables, and fills
// in defaults for anything left unset.
func Load() (Config, error) {
	logger := common.Logger()
	if err := godotenv.Load(); err != nil {
		logger.Debug("config: .env file not loaded", "error", err)
	} else {
		logger.Info("config: environment loaded from .env")
	}

	envCfg, err := loadEnv()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{}.Merge(envCfg)
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
	if c.GRPCAddr == "" {
		c.GRPCAddr = ":50051"
	}
	if c.Store == "" {
		c.Store = StoreMemory
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "updatechecker.db"
	}
	if c.MySQLDSN == "" {
		c.MySQLDSN = "root:root@tcp(localhost:3306)/updatechecker?parseTime=true"
	}
	if c.DynamoDBTable == "" {
		c.DynamoDBTable = "Software"
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	if c.Topic == "" {
		c.Topic = TopicLog
	}
	if c.RedisChannel == "" {
		c.RedisChannel = "software-updates"
	}
	if c.MutationStream == "" {
		c.MutationStream = "software-mutations"
	}
	if c.ConsumerGroup == "" {
		c.ConsumerGroup = "notifier"
	}
	if c.ConsumerName == "" {
		if host, err := os.Hostname(); err == nil && host != "" {
			c.ConsumerName = host
		} else {
			c.ConsumerName = "updatechecker"
		}
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = time.Hour
	}
	if c.RefreshWorkers <= 0 {
		c.RefreshWorkers = 10
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.PublishTimeout <= 0 {
		c.PublishTimeout = 5 * time.Second
	}
	if c.RegistryFile == "" {
		c.RegistryFile = "registry.yaml"
	}
}

// Validate checks the settings the selected store and topic depend on.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreMemory, StoreSQLite, StoreMySQL, StoreDynamoDB:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q", c.Store))
	}
	switch c.Topic {
	case TopicRedis, TopicLog:
	case TopicSNS:
		if c.SNSTopicARN == "" {
			errs = append(errs, errors.New("sns topic requires SNS_TOPIC_ARN"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown topic %q", c.Topic))
	}
	return errors.Join(errs...)
}

func loadEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:       env("HTTP_ADDR"),
		GRPCAddr:       env("GRPC_ADDR"),
		Store:          env("STORE"),
		SQLitePath:     env("SQLITE_PATH"),
		MySQLDSN:       env("MYSQL_DSN"),
		DynamoDBTable:  env("DYNAMODB_TABLE"),
		AWSRegion:      env("AWS_REGION"),
		RedisAddr:      env("REDIS_ADDR"),
		Topic:          env("TOPIC"),
		RedisChannel:   env("REDIS_CHANNEL"),
		SNSTopicARN:    env("SNS_TOPIC_ARN"),
		MutationStream: env("MUTATION_STREAM"),
		ConsumerGroup:  env("CONSUMER_GROUP"),
		ConsumerName:   env("CONSUMER_NAME"),
		APIKey:         env("API_KEY"),
		RegistryFile:   env("REGISTRY_FILE"),
		GitHubToken:    env("GITHUB_TOKEN"),
	}

	var err error
	if cfg.BatchSize, err = envInt("BATCH_SIZE"); err != nil {
		return Config{}, err
	}
	if cfg.RefreshWorkers, err = envInt("REFRESH_WORKERS"); err != nil {
		return Config{}, err
	}
	if cfg.RefreshInterval, err = envDuration("REFRESH_INTERVAL"); err != nil {
		return Config{}, err
	}
	if cfg.FetchTimeout, err = envDuration("FETCH_TIMEOUT"); err != nil {
		return Config{}, err
	}
	if cfg.PublishTimeout, err = envDuration("PUBLISH_TIMEOUT"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + key))
}

func envInt(key string) (int, error) {
	raw := env(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s%s: %w", envPrefix, key, err)
	}
	return value, nil
}

func envDuration(key string) (time.Duration, error) {
	raw := env(key)
	if raw == "" {
		return 0, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s%s: %w", envPrefix, key, err)
	}
	return value, nil
}
