package app

import (
	"context"

	"contractor-erp/internal/bootstrap"
	"contractor-erp/internal/config"
	"contractor-erp/internal/messaging/kafka"
	"contractor-erp/internal/messaging/kafka/producer"
	"contractor-erp/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox events to Kafka until a shutdown signal.
func RunWorker(cfg *config.Config) error {
	logger := zap.L().Named("app.worker")

	_, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer writer.Close()

	relay := producer.NewRelay(kafka.NewOutboxRepository(sqlDB), writer, cfg.Kafka.PollInterval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Run(ctx)
		close(done)
	}()

	sig := bootstrap.WaitForSignal(cancel)
	logger.Info("worker shutting down", zap.String("signal", sig.String()))
	<-done
	return nil
}
