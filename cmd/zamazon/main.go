package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/omaradel73/zamazon-v2/internal/auth"
	"github.com/omaradel73/zamazon-v2/internal/cache"
	"github.com/omaradel73/zamazon-v2/internal/config"
	"github.com/omaradel73/zamazon-v2/internal/events"
	"github.com/omaradel73/zamazon-v2/internal/httpapi"
	"github.com/omaradel73/zamazon-v2/internal/mailer"
	"github.com/omaradel73/zamazon-v2/internal/repository"
	"github.com/omaradel73/zamazon-v2/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx := context.Background()

	// MongoDB
	mongoDB, err := repository.ConnectMongoDB(ctx, repository.MongoConfig{
		URI:              cfg.MongoURI,
		Database:         cfg.MongoDBName,
		ConnectTimeout:   cfg.MongoConnectTimeout,
		SelectionTimeout: cfg.MongoSelectionTimeout,
		MaxPoolSize:      cfg.MongoMaxPoolSize,
		MinPoolSize:      cfg.MongoMinPoolSize,
	})
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.Info("connected to MongoDB", zap.String("uri", cfg.MongoURI))

	productRepo := repository.NewMongoProductRepository(mongoDB)
	accountRepo := repository.NewMongoAccountRepository(mongoDB)
	orderRepo := repository.NewMongoOrderRepository(mongoDB)

	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatal("failed to create indexes", zap.Error(err))
	}

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	log.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))

	catalogCache := cache.NewRedisCatalogCache(redisClient)
	cooldown := cache.NewRedisCooldownGuard(redisClient, cfg.ResendCooldown)

	// Notification channel
	var mail mailer.Mailer = mailer.Nop{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewBreakerMailer(mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}))
		log.Info("SMTP mailer configured", zap.String("host", cfg.SMTPHost))
	} else {
		log.Warn("SMTP not configured, notifications disabled")
	}

	// Order events
	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("kafka publisher configured", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	catalogService := service.NewCatalogService(productRepo, catalogCache, log)
	authService := service.NewAuthService(accountRepo, mail, cooldown, tokens, cfg.AdminEmails, log)
	orderService := service.NewOrderService(orderRepo, mail, publisher, cfg.ShippingFee, log)
	adminService := service.NewAdminService(orderRepo, accountRepo, publisher, log)

	if err := catalogService.Seed(ctx); err != nil {
		log.Fatal("failed to seed catalog", zap.Error(err))
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Auth:           authService,
		Catalog:        catalogService,
		Orders:         orderService,
		Admin:          adminService,
		AuthMiddleware: httpapi.NewAuthMiddleware(tokens, authService),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "zamazon-api"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
