package api

import (
	"net/http"

	"egym/plan-service/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		protected.GET("/profile", profileHandler.GetProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		planGroup := protected.Group("/plans")
		{
			// POST /api/v1/plans/generate
			planGroup.POST("/generate", planHandler.GeneratePlan)
			// GET /api/v1/plans
			planGroup.GET("", planHandler.GetPlans)
			// GET /api/v1/plans/active
			planGroup.GET("/active", planHandler.GetActivePlan)
			// GET /api/v1/plans/{id}
			planGroup.GET("/:id", planHandler.GetPlan)
			// PUT /api/v1/plans/{id}/activate
			planGroup.PUT("/:id/activate", planHandler.ActivatePlan)
			// PUT /api/v1/plans/{id}/name
			planGroup.PUT("/:id/name", planHandler.RenamePlan)
		}
	}
}
