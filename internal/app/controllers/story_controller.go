package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/app/services"
	"github.com/alumnihub/alumnihub/internal/middleware"
	"github.com/alumnihub/alumnihub/internal/pkg/helpers"
)

// StoryController handles success story endpoints
type StoryController struct {
	storyService *services.StoryService
}

// NewStoryController creates a new StoryController
func NewStoryController(storyService *services.StoryService) *StoryController {
	return &StoryController{storyService: storyService}
}

// GetStories handles GET /stories
func (c *StoryController) GetStories(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	response, err := c.storyService.GetStories(ctx.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetFeaturedStories handles GET /stories/featured
func (c *StoryController) GetFeaturedStories(ctx *gin.Context) {
	response, err := c.storyService.GetFeaturedStories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetStory handles GET /stories/:id
func (c *StoryController) GetStory(ctx *gin.Context) {
	storyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	response, err := c.storyService.GetStory(ctx.Request.Context(), storyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// CreateStory handles POST /stories
func (c *StoryController) CreateStory(ctx *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateStoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.storyService.CreateStory(ctx.Request.Context(), authCtx.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// UpdateStory handles PUT /stories/:id
func (c *StoryController) UpdateStory(ctx *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	storyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.storyService.UpdateStory(ctx.Request.Context(), authCtx.UserID, storyID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// DeleteStory handles DELETE /stories/:id
func (c *StoryController) DeleteStory(ctx *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	storyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.storyService.DeleteStory(ctx.Request.Context(), authCtx.UserID, authCtx.Role, storyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Story deleted successfully"))
}

// ToggleLike handles POST /stories/:id/like
func (c *StoryController) ToggleLike(ctx *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	storyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	response, err := c.storyService.ToggleLike(ctx.Request.Context(), authCtx.UserID, storyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetComments handles GET /stories/:id/comments
func (c *StoryController) GetComments(ctx *gin.Context) {
	storyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	response, err := c.storyService.GetComments(ctx.Request.Context(), storyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// AddComment handles POST /stories/:id/comments
func (c *StoryController) AddComment(ctx *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	storyID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.storyService.AddComment(ctx.Request.Context(), authCtx.UserID, storyID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// parseIDParam parses a numeric path parameter, responding 400 on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
}
