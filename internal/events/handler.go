package events

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventvault-backend/internal/shared/server/middleware"
	"eventvault-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/events", h.create)
	rg.POST("/events/draft", h.saveDraft)
	rg.GET("/events", h.list)
	rg.GET("/events/:id", h.get)
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	event, err := h.Svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create event", nil)
		return
	}

	c.Set("eventId", event.ID)
	respond.JSON(c, http.StatusCreated, event)
}

func (h *Handler) saveDraft(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	event, err := h.Svc.SaveDraft(c.Request.Context(), userID, in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save draft", nil)
		return
	}

	c.Set("eventId", event.ID)
	respond.JSON(c, http.StatusCreated, event)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	list, err := h.Svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list events", nil)
		return
	}
	respond.JSON(c, http.StatusOK, list)
}

func (h *Handler) get(c *gin.Context) {
	eventID := c.Param("id")
	c.Set("eventId", eventID)

	userID := middleware.UserIDFromContext(c)
	event, err := h.Svc.GetByID(c.Request.Context(), userID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "event not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "event belongs to another user", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load event", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, event)
}
