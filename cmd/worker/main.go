package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"retail-order-service/internal/queue"
	"retail-order-service/internal/services"
	"retail-order-service/pkg/config"
	"retail-order-service/pkg/logger"
)

func main() {
	configFile := "configs/local.env"
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		// Fallback to environment variables only
		logrus.Warnf("Config file not found, using environment variables: %v", err)
		cfg = config.Default()
	}

	logger.Init(&cfg.Logger)

	producer, err := queue.NewKafkaProducer(&cfg.Kafka)
	if err != nil {
		logrus.Fatalf("Failed to create Kafka producer: %v", err)
	}
	defer producer.Close()

	consumer, err := queue.NewKafkaConsumer(&cfg.Kafka)
	if err != nil {
		logrus.Fatalf("Failed to create Kafka consumer: %v", err)
	}
	defer consumer.Close()

	dispatcher := services.NewNotificationDispatcher(producer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Subscribe(ctx, dispatcher); err != nil {
		logrus.Fatalf("Failed to subscribe to Kafka topics: %v", err)
	}

	logrus.Info("Notification worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down notification worker...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		consumer.Close()
		close(done)
	}()

	select {
	case <-done:
		logrus.Info("Notification worker stopped gracefully")
	case <-shutdownCtx.Done():
		logrus.Error("Notification worker shutdown timeout exceeded")
	}
}
