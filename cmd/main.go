package main

import (
	"context"
	"fmt"
	"os"
	"time"

	redisbus "github.com/clearbridge/clearbridge-backend/internal/clients/redis"
	"github.com/clearbridge/clearbridge-backend/internal/db"
	"github.com/clearbridge/clearbridge-backend/internal/handlers"
	"github.com/clearbridge/clearbridge-backend/internal/middleware"
	"github.com/clearbridge/clearbridge-backend/internal/observability"
	"github.com/clearbridge/clearbridge-backend/internal/platform/envutil"
	"github.com/clearbridge/clearbridge-backend/internal/platform/logger"
	"github.com/clearbridge/clearbridge-backend/internal/repos"
	"github.com/clearbridge/clearbridge-backend/internal/server"
	"github.com/clearbridge/clearbridge-backend/internal/services"
	"github.com/clearbridge/clearbridge-backend/internal/strategy"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	serviceName := envutil.Str("SERVICE_NAME", "clearbridge-backend")
	jwtSecretKey := envutil.Str("JWT_SECRET_KEY", "defaultsecret")
	accessTokenTTL := envutil.Int("ACCESS_TOKEN_TTL", 3600)

	// Tracing
	shutdownTracing := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: envutil.Str("APP_ENV", "development"),
		Version:     envutil.Str("APP_VERSION", "dev"),
	})
	if shutdownTracing != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(ctx)
		}()
	}

	// Strategy rules: structural problems are configuration errors and stop
	// the process here, never at request time.
	rules, err := strategy.LoadRules(envutil.Str("PLAN_RULES_PATH", ""))
	if err != nil {
		log.Fatal("Invalid plan rules configuration", "error", err)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	clientRepo := repos.NewClientRepo(thePG, log)
	actionPlanRepo := repos.NewActionPlanRepo(thePG, log)
	planSeriesRepo := repos.NewPlanSeriesRepo(thePG, log)
	actionPlanDiffRepo := repos.NewActionPlanDiffRepo(thePG, log)
	domainEventRepo := repos.NewDomainEventRepo(thePG, log)

	// Event fan-out is optional; the domain_event table is the audit trail.
	var bus redisbus.EventBus
	if b, err := redisbus.NewEventBus(log); err != nil {
		log.Warn("Redis event bus unavailable, domain events will not be published", "error", err)
	} else {
		bus = b
		defer b.Close()
	}

	// Services
	log.Info("Setting up services...")
	locks := services.NewClientLocks()
	eventService := services.NewDomainEventService(thePG, log, domainEventRepo, bus)
	contextProvider := services.NewClientContextProvider(thePG, log, clientRepo)
	baseline := strategy.NewRuleBasedBaseline(rules)
	recommenderService := services.NewPlanRecommenderService(thePG, log, actionPlanRepo, eventService, contextProvider, baseline, locks)
	activationService := services.NewActivationService(thePG, log, actionPlanRepo, planSeriesRepo, actionPlanDiffRepo, eventService, locks)
	planService := services.NewPlanService(thePG, log, actionPlanRepo, actionPlanDiffRepo)
	clientService := services.NewClientService(thePG, log, clientRepo, actionPlanRepo, planSeriesRepo)
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(log, clientService)
	planHandler := handlers.NewPlanHandler(log, recommenderService, activationService, planService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:    serviceName,
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		ClientHandler:  clientHandler,
		PlanHandler:    planHandler,
	})

	port := envutil.Str("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
