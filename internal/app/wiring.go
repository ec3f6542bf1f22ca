package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/updatechecker/internal/adapter/fetcher"
	"github.com/rl1809/updatechecker/internal/adapter/messaging"
	"github.com/rl1809/updatechecker/internal/adapter/storage"
	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/config"
	"github.com/rl1809/updatechecker/internal/port"
)

// streamDisabled as MUTATION_STREAM turns the Redis change feed off.
const streamDisabled = "none"

// stack holds the connections shared by every command.
type stack struct {
	cfg    config.Config
	store  port.RecordStore
	stream *messaging.RedisStreamAdapter
	rdb    *redis.Client
	aws    *aws.Config

	closers []func() error
}

// openStack connects the configured record store. Unless the store is
// DynamoDB, whose changes arrive through DynamoDB Streams, writes are mirrored
// onto the Redis mutation stream.
func openStack(ctx context.Context, c config.Config) (*stack, error) {
	logger := common.Logger()
	s := &stack{cfg: c}

	store, err := s.openStore(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.store = store
	logger.Info("connected record store", "store", c.Store)

	switch {
	case c.Store == config.StoreDynamoDB:
		logger.Info("change feed provided by DynamoDB Streams")
	case strings.EqualFold(c.MutationStream, streamDisabled):
		logger.Warn("change feed disabled, new versions will not be notified")
	default:
		rdb, err := s.redis(ctx)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.stream = messaging.NewRedisStreamAdapter(rdb, c.MutationStream, c.ConsumerGroup, c.ConsumerName, c.BatchSize)
		if err := s.stream.EnsureGroup(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("create consumer group: %w", err)
		}
		s.store = storage.NewObservedStore(store, s.stream)
		logger.Info("change feed on redis stream", "stream", c.MutationStream, "group", c.ConsumerGroup)
	}
	return s, nil
}

func (s *stack) openStore(ctx context.Context) (port.RecordStore, error) {
	switch s.cfg.Store {
	case config.StoreMemory:
		return storage.NewMemoryStore(), nil
	case config.StoreSQLite:
		db, err := storage.OpenSQLite(s.cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		store := storage.NewSQLiteStore(db)
		if err := store.CreateSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreMySQL:
		db, err := storage.OpenMySQL(ctx, s.cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		store := storage.NewMySQLStore(db)
		if err := store.CreateSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case config.StoreDynamoDB:
		awsCfg, err := s.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		return storage.NewDynamoDBAdapter(dynamodb.NewFromConfig(awsCfg), s.cfg.DynamoDBTable), nil
	default:
		return nil, fmt.Errorf("unknown store %q", s.cfg.Store)
	}
}

func (s *stack) redis(ctx context.Context) (*redis.Client, error) {
	if s.rdb != nil {
		return s.rdb, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     s.cfg.RedisAddr,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", s.cfg.RedisAddr, err)
	}
	s.rdb = rdb
	s.closers = append(s.closers, rdb.Close)
	return rdb, nil
}

func (s *stack) awsConfig(ctx context.Context) (aws.Config, error) {
	if s.aws != nil {
		return *s.aws, nil
	}
	var opts []func(*awsconfig.LoadOptions) error
	if s.cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(s.cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	s.aws = &awsCfg
	return awsCfg, nil
}

func (s *stack) publisher(ctx context.Context) (port.Publisher, error) {
	switch s.cfg.Topic {
	case config.TopicRedis:
		rdb, err := s.redis(ctx)
		if err != nil {
			return nil, err
		}
		return messaging.NewRedisPublisher(rdb, s.cfg.RedisChannel), nil
	case config.TopicSNS:
		awsCfg, err := s.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		return messaging.NewSNSPublisher(sns.NewFromConfig(awsCfg), s.cfg.SNSTopicARN), nil
	case config.TopicLog:
		return messaging.LogPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown topic %q", s.cfg.Topic)
	}
}

func (s *stack) fetcher() (*fetcher.Registry, *fetcher.HTTPFetcher, error) {
	registry, err := fetcher.LoadRegistry(s.cfg.RegistryFile)
	if err != nil {
		return nil, nil, err
	}
	client, err := fetcher.NewHTTPClient(s.cfg.FetchTimeout)
	if err != nil {
		return nil, nil, err
	}
	return registry, fetcher.NewHTTPFetcher(registry, client, fetcher.WithGitHubToken(s.cfg.GitHubToken)), nil
}

// Close releases connections in reverse order of opening.
func (s *stack) Close() {
	logger := common.Logger()
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			logger.Warn("close connection", "error", err)
		}
	}
	s.closers = nil
}
