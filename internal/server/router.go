package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/clearbridge/clearbridge-backend/internal/handlers"
	"github.com/clearbridge/clearbridge-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName    string
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	ClientHandler  *handlers.ClientHandler
	PlanHandler    *handlers.PlanHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Clients
	protected.POST("/clients", cfg.ClientHandler.CreateClient)
	protected.GET("/clients", cfg.ClientHandler.ListClients)
	protected.GET("/clients/:id", cfg.ClientHandler.GetClient)
	protected.PUT("/clients/:id", cfg.ClientHandler.UpdateClient)

	// Plans
	protected.POST("/clients/:id/plans/recommend", cfg.PlanHandler.GenerateRecommendation)
	protected.GET("/clients/:id/plans", cfg.PlanHandler.ListClientPlans)
	protected.GET("/plans/:id", cfg.PlanHandler.GetPlan)
	protected.POST("/plans/:id/activate", cfg.PlanHandler.ActivatePlan)
	protected.GET("/plans/:id/diffs", cfg.PlanHandler.ListPlanDiffs)

	return router
}
