package app

import (
	"context"

	"contractor-erp/internal/attendance"
	"contractor-erp/internal/bootstrap"
	"contractor-erp/internal/config"
	"contractor-erp/internal/events"
	"contractor-erp/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer ingests attendance-marked events until a shutdown signal.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	attendanceService := attendance.NewService(sqlDB, attendance.NewRepository(gormDB), logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.AttendanceMarkedTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		consumer.ConsumeAttendanceMarked(ctx, reader, attendanceService, logger)
		close(done)
	}()

	sig := bootstrap.WaitForSignal(cancel)
	logger.Info("consumer shutting down", zap.String("signal", sig.String()))
	<-done
	return nil
}
