package bugs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventvault-backend/internal/shared/server/middleware"
	"eventvault-backend/internal/shared/server/respond"
)

// Handler exposes the bug tracker to App Masters only.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bugs", h.create)
	rg.GET("/bugs", h.list)
	rg.POST("/bugs/:id/resolve", h.resolve)
}

func (h *Handler) create(c *gin.Context) {
	if !h.requireAppMaster(c) {
		return
	}

	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	reporterID := middleware.UserIDFromContext(c)
	bug, err := h.Svc.Create(c.Request.Context(), reporterID, in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create bug", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, bug)
}

func (h *Handler) list(c *gin.Context) {
	if !h.requireAppMaster(c) {
		return
	}

	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list bugs", nil)
		return
	}
	respond.JSON(c, http.StatusOK, list)
}

func (h *Handler) resolve(c *gin.Context) {
	if !h.requireAppMaster(c) {
		return
	}

	bug, err := h.Svc.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "bug not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to resolve bug", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, bug)
}

func (h *Handler) requireAppMaster(c *gin.Context) bool {
	if !middleware.IsAppMaster(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "app master access required", nil)
		return false
	}
	return true
}
