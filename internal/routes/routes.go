package routes

import (
	"net/http"

	"ehandout_backend/internal/handlers"
	"ehandout_backend/internal/middleware"
	"ehandout_backend/internal/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ehandout_backend/docs"
)

// RegisterRoutes mounts all HTTP routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokenService services.TokenService,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRequired := middleware.AuthMiddleware(tokenService)

	api := ginRouter.Group("/api")
	{
		appHandlers.VendorAuth.RegisterRoutes(api, authRequired)
		appHandlers.UserAuth.RegisterRoutes(api, authRequired)
		appHandlers.Manager.RegisterRoutes(api)
	}
}
