package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/sathwikhbhat/ticket-booking-system/config"
	repository "github.com/sathwikhbhat/ticket-booking-system/internal/database/postgres"
	rediscache "github.com/sathwikhbhat/ticket-booking-system/internal/database/redis"
	"github.com/sathwikhbhat/ticket-booking-system/internal/pkg/kafka"
	"github.com/sathwikhbhat/ticket-booking-system/internal/service"
	"github.com/sathwikhbhat/ticket-booking-system/internal/worker"
	"github.com/sathwikhbhat/ticket-booking-system/pkg/postgres"
	"github.com/sathwikhbhat/ticket-booking-system/pkg/redis"
)

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	viperInstance, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Cannot load config. Error: {%s}", err.Error())
	}

	cfg, err := config.ParseConfig(viperInstance)
	if err != nil {
		logrus.Fatalf("Cannot parse config. Error: {%s}", err.Error())
	}

	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logrus.Fatalf("Failed to initialize redis: %v", err)
	}
	defer redisClient.Close()

	orderRepo := repository.NewOrderRepository(db)
	cache := rediscache.NewInventoryCache(redisClient, cfg.Redis.CacheTTL)
	settlementService := service.NewSettlementService(orderRepo, cache)

	brokers := config.GetEnv("KAFKA_BROKERS", cfg.Kafka.Brokers)
	consumer := kafka.NewConsumer(
		strings.Split(brokers, ","),
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
	)
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settlementWorker := worker.NewSettlementWorker(consumer, settlementService)
	go settlementWorker.Start(ctx)

	reconcileWorker := worker.NewOrderReconcileWorker(
		settlementService,
		cfg.Booking.ReconcileInterval,
		cfg.Booking.ReconcileGrace,
	)
	go reconcileWorker.Start(ctx)

	logrus.Print("Settlement service started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("Settlement service shutting down")
	cancel()
}
