package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumnihub/alumnihub/internal/app/models/dto"
	"github.com/alumnihub/alumnihub/internal/app/services"
	"github.com/alumnihub/alumnihub/internal/middleware"
	"github.com/alumnihub/alumnihub/internal/pkg/helpers"
)

// EventController handles event endpoints
type EventController struct {
	eventService *services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// GetEvents handles GET /events
func (c *EventController) GetEvents(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	response, err := c.eventService.GetEvents(ctx.Request.Context(), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetUpcomingEvents handles GET /events/upcoming
func (c *EventController) GetUpcomingEvents(ctx *gin.Context) {
	response, err := c.eventService.GetUpcomingEvents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetEvent handles GET /events/:id
func (c *EventController) GetEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	response, err := c.eventService.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// CreateEvent handles POST /events (admin only)
func (c *EventController) CreateEvent(ctx *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.eventService.CreateEvent(ctx.Request.Context(), authCtx.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(response))
}

// UpdateEvent handles PUT /events/:id (admin only)
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.eventService.UpdateEvent(ctx.Request.Context(), eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// DeleteEvent handles DELETE /events/:id (admin only)
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx.Request.Context(), eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event deleted successfully"))
}

// ToggleRegistration handles POST /events/:id/register
func (c *EventController) ToggleRegistration(ctx *gin.Context) {
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	response, err := c.eventService.ToggleRegistration(ctx.Request.Context(), authCtx.UserID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
