package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/app/services"
	"github.com/alumnihub/alumnihub/internal/middleware"
	"github.com/alumnihub/alumnihub/internal/pkg/helpers"
)

// UserController handles account, directory and friend endpoints
type UserController struct {
	userService  *services.UserService
	storyService *services.StoryService
	eventService *services.EventService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, storyService *services.StoryService, eventService *services.EventService) *UserController {
	return &UserController{
		userService:  userService,
		storyService: storyService,
		eventService: eventService,
	}
}

// ListUsers handles GET /users (admin only)
func (c *UserController) ListUsers(ctx *gin.Context) {
	response, err := c.userService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetAlumniDirectory handles GET /users/alumni
func (c *UserController) GetAlumniDirectory(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)
	search := ctx.Query("search")

	response, err := c.userService.GetAlumniDirectory(ctx.Request.Context(), search, page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetUserDetail handles GET /users/:id
func (c *UserController) GetUserDetail(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	response, err := c.userService.GetUserDetail(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UpdateProfile handles PUT /users/profile
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.userService.UpdateProfile(ctx.Request.Context(), authCtx.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ChangePassword handles PUT /users/password
func (c *UserController) ChangePassword(ctx *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.ChangePassword(ctx.Request.Context(), authCtx.UserID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password updated successfully"))
}

// UpdateStatus handles PUT /users/:id/status (admin only)
func (c *UserController) UpdateStatus(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.userService.UpdateStatus(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ToggleFriend handles POST /users/:id/friend
func (c *UserController) ToggleFriend(ctx *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	targetID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	response, err := c.userService.ToggleFriend(ctx.Request.Context(), authCtx.UserID, targetID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetUserStories handles GET /users/:id/stories
func (c *UserController) GetUserStories(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	response, err := c.storyService.GetStoriesByAuthor(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetUserEvents handles GET /users/:id/events
func (c *UserController) GetUserEvents(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	response, err := c.eventService.GetEventsAttending(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
