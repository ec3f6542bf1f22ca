package app

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rl1809/updatechecker/internal/common"
	"github.com/rl1809/updatechecker/internal/core/service"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Publish notifications from the mutation feed",
	Long: `Read record mutations from the Redis stream consumer group, keep the new
latest pointers and publish one notification per changed software. Entries
left unacknowledged by a previous run are processed first.

Runs until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runConsume,
}

func init() {
	RootCmd.AddCommand(consumeCmd)
}

func runConsume(cmd *cobra.Command, args []string) error {
	logger := common.Logger()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStack(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	if st.stream == nil {
		return errors.New("no redis mutation stream configured for this store")
	}

	publisher, err := st.publisher(ctx)
	if err != nil {
		return err
	}
	streamService := service.NewStreamService(service.NewDispatcher(publisher, cfg.PublishTimeout))

	logger.Info("consuming mutation feed", "stream", cfg.MutationStream, "group", cfg.ConsumerGroup, "consumer", cfg.ConsumerName, "topic", cfg.Topic)
	runConsumer(ctx, streamService, st.stream, consumerBackoff)
	logger.Info("consumer stopped")
	return nil
}
