package router

import (
	"github.com/gin-gonic/gin"

	"github.com/vmlandae/reemplazos-backend/internal/config"
	"github.com/vmlandae/reemplazos-backend/internal/http/handlers"
	"github.com/vmlandae/reemplazos-backend/internal/http/middleware"
	"github.com/vmlandae/reemplazos-backend/internal/models"
	"github.com/vmlandae/reemplazos-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	requestHandler *handlers.RequestHandler,
	applicantHandler *handlers.ApplicantHandler,
	matchingHandler *handlers.MatchingHandler,
	schoolHandler *handlers.SchoolHandler,
	receiptHandler *handlers.ReceiptHandler,
	notificationHandler *handlers.NotificationHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	api.GET("/ws", wsHandler.Handle)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/auth/register", authHandler.Register)
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/users", middleware.RequireRole(models.RoleAdminColegio), authHandler.ListUsers)
		protected.PATCH("/users/:id/role", middleware.RequireRole(models.RoleAdmin), authHandler.ChangeRole)

		protected.POST("/requests", requestHandler.Create)
		protected.GET("/requests", requestHandler.List)
		protected.GET("/requests/:id", requestHandler.Get)
		protected.PATCH("/requests/:id/status", middleware.RequireRole(models.RoleOficinaCentral), requestHandler.UpdateStatus)
		protected.POST("/requests/import-gform", middleware.RequireRole(models.RoleOficinaCentral), requestHandler.ImportGForm)

		protected.GET("/requests/:id/candidates", middleware.RequireRole(models.RoleOficinaCentral), matchingHandler.CandidatesForRequest)
		protected.POST("/matching", middleware.RequireRole(models.RoleOficinaCentral), matchingHandler.CandidatesForCriteria)
		protected.POST("/requests/:id/send-candidates", middleware.RequireRole(models.RoleOficinaCentral), notificationHandler.SendCandidates)

		protected.GET("/applicants", middleware.RequireRole(models.RoleOficinaCentral), applicantHandler.Pool)
		protected.POST("/applicants/refresh", middleware.RequireRole(models.RoleOficinaCentral), applicantHandler.RefreshPool)
		protected.GET("/applicants/:rut", middleware.RequireRole(models.RoleOficinaCentral), applicantHandler.Get)
		protected.PATCH("/applicants/:rut/stage", middleware.RequireRole(models.RoleOficinaCentral), applicantHandler.SetStage)
		protected.POST("/applicants/:rut/cv", middleware.RequireRole(models.RoleOficinaCentral), applicantHandler.UploadCV)
		protected.GET("/applicants/:rut/cv", middleware.RequireRole(models.RoleOficinaCentral), applicantHandler.DownloadCV)

		protected.GET("/schools", schoolHandler.List)
		protected.GET("/schools/:id", schoolHandler.Get)
		protected.POST("/schools", middleware.RequireRole(models.RoleOficinaCentral), schoolHandler.Create)
		protected.PUT("/schools/:id", schoolHandler.Update)

		protected.POST("/receipts", receiptHandler.Create)
		protected.GET("/receipts", receiptHandler.List)
		protected.GET("/receipts/:id", receiptHandler.Get)
		protected.PATCH("/receipts/:id", receiptHandler.Evaluate)
	}

	return r
}
