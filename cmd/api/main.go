package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/azizikri/startup-deals/internal/auth"
	"github.com/azizikri/startup-deals/internal/config"
	httphandler "github.com/azizikri/startup-deals/internal/delivery/http"
	"github.com/azizikri/startup-deals/internal/delivery/http/middleware"
	"github.com/azizikri/startup-deals/internal/delivery/kafka"
	"github.com/azizikri/startup-deals/internal/repository"
	"github.com/azizikri/startup-deals/internal/usecase"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/kgo"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := initDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool, cfg.Migrations); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := repository.New(pool)
	tokens := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL())
	claims := usecase.NewClaimService(store, store, store)
	deals := usecase.NewDealService(store)
	accounts := usecase.NewAccountService(store, tokens, cfg.BcryptCost())
	direct := kafka.NewDirectGateway(claims, deals)

	rdb := initRedis(ctx, cfg)
	if rdb != nil {
		defer rdb.Close()
	}
	var cache *middleware.Cache
	if cfg.CacheOn() {
		cache = middleware.NewCache(rdb, cfg.CacheTTL(), cfg.CachePrefix)
	}
	var limiter *middleware.RateLimiter
	if cfg.RateLimitOn() {
		limiter = middleware.NewRateLimiter(rdb, cfg.RateLimitBurst(), cfg.RateLimitRefillEvery(), cfg.RateLimitPrefix)
	}

	gateway := direct
	var kafkaClients []*kgo.Client

	if cfg.EventDriven() {
		brokers := strings.Split(cfg.KafkaBrokers, ",")
		kafkaClient, err := newConsumerClient(
			brokers,
			cfg.KafkaClientID,
			cfg.KafkaGroupID,
			kafka.TopicClaimRequest,
			kafka.TopicCreateRequest,
		)
		if err != nil {
			log.Fatalf("Failed to create kafka client: %v", err)
		}
		kafkaClients = append(kafkaClients, kafkaClient)

		if err := kafka.EnsureTopics(ctx, kafkaClient, cfg); err != nil {
			log.Printf("Warning: failed to ensure topics: %v", err)
		}

		kgateway := kafka.NewGateway(cfg, kafkaClient, direct)
		gateway = kgateway

		consumer := kafka.NewConsumer(cfg, kafkaClient, direct)
		go consumer.Start(ctx)

		retryClient, err := newConsumerClient(
			brokers,
			cfg.KafkaClientID+"-retry",
			cfg.KafkaRetryGroupID,
			kafka.TopicClaimRetry,
			kafka.TopicCreateRetry,
		)
		if err != nil {
			log.Fatalf("Failed to create retry kafka client: %v", err)
		}
		kafkaClients = append(kafkaClients, retryClient)
		go kafka.NewConsumer(cfg, retryClient, direct).StartRetry(ctx)

		replyClient, err := newReplyClient(brokers, cfg.KafkaClientID+"-reply", kafka.ReplyTopic(cfg.KafkaInstanceID))
		if err != nil {
			log.Fatalf("Failed to create reply kafka client: %v", err)
		}
		kafkaClients = append(kafkaClients, replyClient)
		startReplyPoller(ctx, replyClient, kgateway)

		<-consumer.Ready()
		log.Printf("Event-driven mode on, replies on %s", kafka.ReplyTopic(cfg.KafkaInstanceID))
	}

	handler := httphandler.NewHandler(gateway, accounts, tokens, cache, limiter)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	handler.Routes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Starting server on port %s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	for _, client := range kafkaClients {
		client.Close()
	}

	wg.Wait()
	log.Println("Shutdown complete")
}

func initDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// initRedis returns nil when Redis is unreachable; caching and rate limiting
// are then skipped.
func initRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if !cfg.CacheOn() && !cfg.RateLimitOn() {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDBIndex(),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Warning: redis unavailable at %s, cache and rate limit disabled: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return nil
	}
	return client
}

func newConsumerClient(brokers []string, clientID, groupID string, topics ...string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ConsumerGroup(groupID),
		kgo.ConsumeTopics(topics...),
		kgo.DisableAutoCommit(),
	)
}

func newReplyClient(brokers []string, clientID, topic string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtEnd()),
	)
}

func startReplyPoller(ctx context.Context, client *kgo.Client, gateway *kafka.Gateway) {
	go func() {
		for {
			fetches := client.PollFetches(ctx)
			if fetches.IsClientClosed() || ctx.Err() != nil {
				return
			}
			iter := fetches.RecordIter()
			for !iter.Done() {
				record := iter.Next()
				gateway.HandleResponse(record.Value)
			}
		}
	}()
}
