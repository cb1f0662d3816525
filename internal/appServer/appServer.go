// launching the server, DB, kafka, postgres
package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sathwikhbhat/ticket-booking-system/config"
	repository "github.com/sathwikhbhat/ticket-booking-system/internal/database/postgres"
	rediscache "github.com/sathwikhbhat/ticket-booking-system/internal/database/redis"
	"github.com/sathwikhbhat/ticket-booking-system/internal/pkg/kafka"
	"github.com/sathwikhbhat/ticket-booking-system/internal/service"
	"github.com/sathwikhbhat/ticket-booking-system/internal/transport"
	"github.com/sathwikhbhat/ticket-booking-system/pkg/postgres"
	"github.com/sathwikhbhat/ticket-booking-system/pkg/redis"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

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

	eventRepo := repository.NewEventRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	cache := rediscache.NewInventoryCache(redisClient, cfg.Redis.CacheTTL)

	producer := kafka.NewProducer(
		strings.Split(config.GetEnv("KAFKA_BROKERS", cfg.Kafka.Brokers), ","),
		cfg.Kafka.Topic,
	)
	defer producer.Close()

	inventoryService := service.NewInventoryService(eventRepo, venueRepo, cache)
	bookingService := service.NewBookingService(customerRepo, inventoryService, producer)
	settlementService := service.NewSettlementService(orderRepo, cache)

	bookingHandler := transport.NewBookingHandler(bookingService)
	inventoryHandler := transport.NewInventoryHandler(inventoryService)
	orderHandler := transport.NewOrderHandler(settlementService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(bookingHandler, inventoryHandler, orderHandler)); err != nil {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
