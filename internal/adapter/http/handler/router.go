package handler

import (
	"daraja-gateway/internal/adapter/http/middleware"
	redisStore "daraja-gateway/internal/adapter/storage/redis"
	"daraja-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	GatewaySvc     ports.GatewayService
	MerchantSvc    ports.MerchantService
	TokenSvc       ports.TokenService
	Dedup          ports.CallbackDedup
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Provider callbacks (no auth: the provider does not sign these;
	// correlation against stored PENDING transactions bounds what they can do) ---
	callbackHandler := NewCallbackHandler(deps.GatewaySvc, deps.Dedup, deps.Logger)
	callbacks := r.Group("/callbacks", rl("callbacks"))
	{
		callbacks.POST("/stk", callbackHandler.STKCallback)
		callbacks.POST("/result", callbackHandler.ResultCallback)
		callbacks.POST("/timeout", callbackHandler.TimeoutCallback)
		callbacks.POST("/c2b/confirmation", callbackHandler.C2BConfirmation)
		callbacks.POST("/c2b/validation", callbackHandler.C2BValidation)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	merchantHandler := NewMerchantHandler(deps.MerchantSvc)
	v1.POST("/merchants", rl("onboard"), merchantHandler.Onboard)

	// --- JWT-authenticated routes (merchant API) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	gatewayHandler := NewGatewayHandler(deps.GatewaySvc)

	charges := v1.Group("/charges", jwtAuth)
	{
		charges.POST("", rl("charges"), gatewayHandler.InitiateCharge)
		charges.GET("/:checkoutRequestID", rl("queries"), gatewayHandler.QueryCharge)
	}

	payouts := v1.Group("/payouts", jwtAuth)
	{
		payouts.POST("", rl("payouts"), gatewayHandler.InitiatePayout)
	}

	c2b := v1.Group("/c2b", jwtAuth)
	{
		c2b.POST("/simulate", rl("charges"), gatewayHandler.SimulatePayment)
		c2b.POST("/register-urls", rl("merchant"), gatewayHandler.RegisterURLs)
	}

	operations := v1.Group("", jwtAuth)
	{
		operations.POST("/reversals", rl("payouts"), gatewayHandler.ReverseTransaction)
		operations.POST("/transaction-status", rl("queries"), gatewayHandler.QueryTransactionStatus)
		operations.POST("/qr", rl("queries"), gatewayHandler.GenerateQR)
	}

	merchants := v1.Group("/merchants/me", jwtAuth)
	{
		merchants.GET("", rl("merchant"), merchantHandler.GetProfile)
		merchants.PUT("/credentials", rl("merchant"), merchantHandler.StoreCredentials)
		merchants.POST("/webhooks", rl("merchant"), merchantHandler.CreateWebhook)
		merchants.GET("/webhooks", rl("merchant"), merchantHandler.ListWebhooks)
		merchants.PATCH("/webhooks/:id", rl("merchant"), merchantHandler.SetWebhookActive)
	}

	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.GET("", rl("queries"), merchantHandler.ListTransactions)
		transactions.GET("/:id/deliveries", rl("queries"), merchantHandler.ListDeliveries)
	}

	return r
}
