package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumnihub/alumnihub/internal/app/controllers"
	"github.com/alumnihub/alumnihub/internal/app/models"
	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	storyController *controllers.StoryController,
	eventController *controllers.EventController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authMiddleware.JWTAuth(), authController.GetCurrentUser)
	}

	// --- Story routes ---
	stories := api.Group("/stories")
	{
		stories.GET("", storyController.GetStories)
		stories.GET("/featured", storyController.GetFeaturedStories)
		stories.GET("/:id", storyController.GetStory)
		stories.GET("/:id/comments", storyController.GetComments)

		storiesAuth := stories.Group("")
		storiesAuth.Use(authMiddleware.JWTAuth())
		{
			storiesAuth.POST("", storyController.CreateStory)
			storiesAuth.PUT("/:id", storyController.UpdateStory)
			storiesAuth.DELETE("/:id", storyController.DeleteStory)
			storiesAuth.POST("/:id/like", storyController.ToggleLike)
			storiesAuth.POST("/:id/comments", storyController.AddComment)
		}
	}

	// --- Event routes ---
	events := api.Group("/events")
	{
		events.GET("", eventController.GetEvents)
		events.GET("/upcoming", eventController.GetUpcomingEvents)
		events.GET("/:id", eventController.GetEvent)

		eventsAuth := events.Group("")
		eventsAuth.Use(authMiddleware.JWTAuth())
		{
			eventsAuth.POST("/:id/register", eventController.ToggleRegistration)

			eventsAdmin := eventsAuth.Group("")
			eventsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				eventsAdmin.POST("", eventController.CreateEvent)
				eventsAdmin.PUT("/:id", eventController.UpdateEvent)
				eventsAdmin.DELETE("/:id", eventController.DeleteEvent)
			}
		}
	}

	// --- User routes (all authenticated) ---
	users := api.Group("/users")
	users.Use(authMiddleware.JWTAuth())
	{
		users.GET("/alumni", userController.GetAlumniDirectory)
		users.PUT("/profile", userController.UpdateProfile)
		users.PUT("/password", userController.ChangePassword)
		users.GET("/:id", userController.GetUserDetail)
		users.POST("/:id/friend", userController.ToggleFriend)
		users.GET("/:id/stories", userController.GetUserStories)
		users.GET("/:id/events", userController.GetUserEvents)

		usersAdmin := users.Group("")
		usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			usersAdmin.GET("", userController.ListUsers)
			usersAdmin.PUT("/:id/status", userController.UpdateStatus)
		}
	}
}
