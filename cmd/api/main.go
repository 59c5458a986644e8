package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/thread-heaven/storefront-api/internal/application/signup"
	"github.com/thread-heaven/storefront-api/internal/config"
	"github.com/thread-heaven/storefront-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/thread-heaven/storefront-api/internal/infrastructure/jwt"
	"github.com/thread-heaven/storefront-api/internal/infrastructure/resend"
	s3infra "github.com/thread-heaven/storefront-api/internal/infrastructure/s3"
	"github.com/thread-heaven/storefront-api/internal/infrastructure/sns"
	transporthttp "github.com/thread-heaven/storefront-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// Admin JWT provider is optional; without a secret the admin API is off.
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: admin JWT provider not available: %v", err)
	}

	// S3 store for product imagery.
	s3Client := s3infra.NewClient(cfg)
	imageStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// Transactional email (inert without a Resend API key).
	dispatcher := resend.NewDispatcher(cfg)
	if cfg.ResendAPIKey == "" {
		log.Println("WARN: RESEND_API_KEY not set, email dispatch degraded to not-configured")
	}

	// SNS order-event publisher (optional).
	var events sns.OrderEventPublisher
	if p, err := sns.NewPublisher(cfg); err == nil {
		events = p
	} else {
		log.Printf("WARN: order-event publisher not available: %v", err)
	}

	deps := &transporthttp.Deps{
		OrderRepo:    dynamo.NewOrderRepo(dynamoClient, cfg.DynamoTables.Orders),
		UserRepo:     dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		ProductRepo:  dynamo.NewProductRepo(dynamoClient, cfg.DynamoTables.Products),
		ImageStore:   imageStore,
		Dispatcher:   dispatcher,
		Events:       events,
		JWTProvider:  jwtProvider,
		PendingStore: signup.NewStore(),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
