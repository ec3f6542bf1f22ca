package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"github.com/rl1809/updatechecker/internal/adapter/messaging"
	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/config"
	"github.com/rl1809/updatechecker/internal/core/service"
	"github.com/rl1809/updatechecker/internal/port"
)

func main() {
	logger := common.Logger()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	var publisher port.Publisher = messaging.LogPublisher{}
	if cfg.Topic == config.TopicSNS {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			logger.Error("load aws config", "error", err)
			os.Exit(1)
		}
		publisher = messaging.NewSNSPublisher(sns.NewFromConfig(awsCfg), cfg.SNSTopicARN)
	} else {
		logger.Warn("topic is not sns, notifications go to the log", "topic", cfg.Topic)
	}

	streamService := service.NewStreamService(service.NewDispatcher(publisher, cfg.PublishTimeout))
	lambda.Start(func(ctx context.Context, event events.DynamoDBEvent) error {
		// Publish failures are logged, not returned, so the shard batch is not redelivered.
		streamService.HandleBatch(ctx, messaging.FromDynamoDBEvent(event))
		return nil
	})
}
