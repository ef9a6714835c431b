package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"retail-order-service/internal/handlers"
	"retail-order-service/internal/jobs"
	"retail-order-service/internal/queue"
	"retail-order-service/internal/repository"
	"retail-order-service/internal/services"
	"retail-order-service/pkg/config"
	"retail-order-service/pkg/database"
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

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.CreateTables(); err != nil {
		logrus.Fatalf("Failed to create database tables: %v", err)
	}

	producer, err := queue.NewKafkaProducer(&cfg.Kafka)
	if err != nil {
		logrus.Fatalf("Failed to create Kafka producer: %v", err)
	}
	defer producer.Close()

	historyRepo := repository.NewPostgresHistoryRepository(db.GetDB())
	orderRepo := repository.NewPostgresOrderRepository(db.GetDB(), historyRepo)

	orderService := services.NewOrderService(orderRepo, producer)
	operatorService := services.NewOperatorService(orderRepo, producer, cfg.Operators.OrderLimit)
	historyService := services.NewHistoryService(historyRepo)

	r := gin.New()
	r.Use(handlers.LoggerMiddleware())
	r.Use(handlers.CORSMiddleware())
	r.Use(handlers.SecurityHeadersMiddleware())
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.IdentityMiddleware())
	r.Use(gin.Recovery())

	handlers.NewOrderHandlers(orderService, historyService).RegisterRoutes(r)
	handlers.NewProductHandlers(orderService).RegisterRoutes(r)
	handlers.NewOperatorHandlers(operatorService).RegisterRoutes(r)
	handlers.NewStatusHandlers(db).RegisterRoutes(r)

	var assignmentJob *jobs.AssignmentJob
	if cfg.Jobs.DispatchEnabled {
		assignmentJob = jobs.NewAssignmentJob(operatorService, cfg.Jobs.DispatchSchedule)
		if err := assignmentJob.Start(); err != nil {
			logrus.Fatalf("Failed to start assignment job: %v", err)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logrus.Infof("Order API server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down Order API server...")

	if assignmentJob != nil {
		assignmentJob.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Order API server forced to shutdown: %v", err)
	}

	logrus.Info("Order API server stopped")
}
