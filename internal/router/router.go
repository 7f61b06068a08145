package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/statushub-dev/statushub/internal/auth"
	"github.com/statushub-dev/statushub/internal/config"
	"github.com/statushub-dev/statushub/internal/handlers"
	"github.com/statushub-dev/statushub/internal/incident"
	"github.com/statushub-dev/statushub/internal/middleware"
	"github.com/statushub-dev/statushub/internal/overview"
	"github.com/statushub-dev/statushub/internal/status"
	"github.com/statushub-dev/statushub/internal/ws"
	"gorm.io/gorm"
)

type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Tokens    *auth.TokenManager
	Status    *status.Engine
	Incidents *incident.Engine
	View      *overview.View
	Hub       *ws.Hub
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(deps.DB, deps.Tokens, deps.Config)
	organizationHandler := handlers.NewOrganizationHandler(deps.Status)
	serviceHandler := handlers.NewServiceHandler(deps.Status)
	incidentHandler := handlers.NewIncidentHandler(deps.Incidents)
	subscribeHandler := handlers.NewSubscribeHandler(deps.DB)
	statusHandler := handlers.NewStatusHandler(deps.DB, deps.View, deps.Incidents)

	authenticated := middleware.Auth(deps.DB, deps.Tokens)

	api := r.Group("/api")
	{
		// Public surface
		api.GET("/status", statusHandler.PublicStatus)
		api.GET("/services/:id/uptime", serviceHandler.Uptime)
		api.POST("/notifications/subscribe", subscribeHandler.Subscribe)
		api.GET("/ws", deps.Hub.HandleConnection)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authenticated, authHandler.Me)
		}

		api.GET("/dashboard", authenticated, statusHandler.Dashboard)
		api.GET("/services/:id/incidents", authenticated, incidentHandler.ListForService)

		organizations := api.Group("/organizations", authenticated)
		{
			organizations.GET("", organizationHandler.List)
			organizations.POST("", organizationHandler.Create)
			organizations.DELETE("/:id", organizationHandler.Delete)
		}

		services := api.Group("/services", authenticated)
		{
			services.GET("", serviceHandler.List)
			services.POST("", serviceHandler.Create)
			services.GET("/:id", serviceHandler.Get)
			services.PUT("/:id", serviceHandler.Update)
			services.DELETE("/:id", serviceHandler.Delete)
			services.GET("/:id/history", serviceHandler.History)
		}

		incidents := api.Group("/incidents", authenticated)
		{
			incidents.GET("", incidentHandler.List)
			incidents.POST("", incidentHandler.Create)
			incidents.GET("/:id", incidentHandler.Get)
			incidents.PUT("/:id", incidentHandler.Update)
			incidents.DELETE("/:id", incidentHandler.Delete)
		}

		v1 := api.Group("/v1")
		{
			v1.GET("/health", handlers.HealthCheck)
			v1.GET("/services/status", statusHandler.ServicesStatus)
			v1.GET("/services/:id/status", statusHandler.ServiceStatus)
		}
	}

	return r
}
