package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/claudiafierrez/whereisit/controllers"
	"github.com/claudiafierrez/whereisit/middleware"
	"github.com/claudiafierrez/whereisit/services"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client) {
	// Initialize services
	userService := services.NewUserService(db)
	followService := services.NewFollowService(db)
	completionService := services.NewCompletionService(db)
	achievementService := services.NewAchievementService(db)
	leaderboardService := services.NewLeaderboardService(db, rdb)

	// Initialize controllers
	authController := controllers.NewAuthController(db, userService)
	userController := controllers.NewUserController(db, userService, followService, leaderboardService)
	followController := controllers.NewFollowController(db, followService)
	placeController := controllers.NewPlaceController(db, completionService)
	achievementController := controllers.NewAchievementController(achievementService)
	uploadController := controllers.NewUploadController(userService)
	trackingController := controllers.NewTrackingController(db, completionService)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/check-username", authController.CheckUsername)
		public.POST("/check-email", authController.CheckEmail)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)
		protected.PUT("/password", authController.ChangePassword)
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		// Setup other routes within the protected group
		SetupUserRoutes(protected, userController)
		SetupFollowRoutes(protected, followController)
		SetupPlaceRoutes(protected, placeController, trackingController)
		SetupUploadRoutes(protected, uploadController)

		protected.GET("/achievements", achievementController.GetAchievements)
	}
}
