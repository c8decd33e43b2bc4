package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daraja-gateway/config"
	httpHandler "daraja-gateway/internal/adapter/http/handler"
	pgStorage "daraja-gateway/internal/adapter/storage/postgres"
	redisStorage "daraja-gateway/internal/adapter/storage/redis"
	"daraja-gateway/internal/core/ports"
	"daraja-gateway/internal/daraja"
	"daraja-gateway/internal/service"
	"daraja-gateway/pkg/logger"

	"github.com/robfig/cron/v3"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Daraja Gateway")

	if cfg.Vault.Passphrase == "" || cfg.Vault.Salt == "" {
		log.Fatal().Msg("DGW_VAULT_PASSPHRASE and DGW_VAULT_SALT must be set")
	}
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("DGW_JWT_SECRET must be set")
	}

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	merchantRepo := pgStorage.NewMerchantRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	credRepo := pgStorage.NewCredentialRepo(pool)
	webhookRepo := pgStorage.NewWebhookRepo(pool)
	deliveryRepo := pgStorage.NewDeliveryRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	dedupStore := redisStorage.NewDedupStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	encSvc, err := service.NewAESEncryptionService(cfg.Vault.Passphrase, cfg.Vault.Salt)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	encFactory := func(passphrase string) (ports.EncryptionService, error) {
		return service.NewAESEncryptionService(passphrase, cfg.Vault.Salt)
	}
	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	vault := service.NewCredentialVaultService(credRepo, auditRepo, transactor, encSvc, encFactory, log)

	// Provider client with per-merchant OAuth token cache
	darajaHTTP := &http.Client{Timeout: cfg.Daraja.Timeout}
	baseURLs := daraja.BaseURLs{
		Sandbox:    cfg.Daraja.SandboxBaseURL,
		Production: cfg.Daraja.ProductionBaseURL,
	}
	tokenCache := daraja.NewTokenCache(vault, darajaHTTP, baseURLs, cfg.Daraja.TokenSafetyMargin, log)
	provider := daraja.NewClient(daraja.Config{
		BaseURLs:        baseURLs,
		CallbackBaseURL: cfg.Daraja.CallbackBaseURL,
	}, darajaHTTP, tokenCache, vault, log)

	// Initialize business services
	txStore := service.NewTransactionStoreService(txRepo, log)
	dispatcher := service.NewWebhookDispatcherService(
		webhookRepo,
		deliveryRepo,
		encSvc,
		sigSvc,
		&http.Client{Timeout: cfg.Webhook.Timeout},
		service.DispatcherConfig{
			MaxAttempts: cfg.Webhook.MaxAttempts,
			BaseDelay:   cfg.Webhook.BaseDelay,
			MaxDelay:    cfg.Webhook.MaxDelay,
			Timeout:     cfg.Webhook.Timeout,
		},
		log,
	)
	gatewaySvc := service.NewGatewayService(merchantRepo, txStore, provider, dispatcher, log)
	merchantSvc := service.NewMerchantService(
		merchantRepo, webhookRepo, deliveryRepo, txRepo, auditRepo, vault, tokenCache, tokenSvc, encSvc, log,
	)

	// Retry sweeper: re-attempts webhook deliveries whose backoff elapsed
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Webhook.SweepInterval, func() {
		if err := dispatcher.ProcessDue(context.Background()); err != nil {
			log.Error().Err(err).Msg("webhook retry sweep failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Webhook.SweepInterval).Msg("invalid sweep interval")
	}
	sweeper.Start()

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		GatewaySvc:     gatewaySvc,
		MerchantSvc:    merchantSvc,
		TokenSvc:       tokenSvc,
		Dedup:          dedupStore,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop the sweeper and let in-flight webhook deliveries finish
	<-sweeper.Stop().Done()
	dispatcher.Wait()

	log.Info().Msg("Server exited")
}
