package contracts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventvault-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches contract routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/events/:id/contracts", h.upload)
	rg.GET("/events/:id/contracts", h.list)
	rg.GET("/contracts/analysis", h.analysis)
}

func (h *Handler) upload(c *gin.Context) {
	eventID := c.Param("id")
	c.Set("eventId", eventID)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	contract, err := h.Svc.Ingest(c.Request.Context(), eventID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload contract", nil)
		}
		return
	}

	c.Set("contractId", contract.ID)
	respond.JSON(c, http.StatusCreated, toResponse(contract))
}

func (h *Handler) list(c *gin.Context) {
	eventID := c.Param("id")
	c.Set("eventId", eventID)

	list, err := h.Svc.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list contracts", nil)
		}
		return
	}

	resp := make([]ContractResponse, 0, len(list))
	for _, contract := range list {
		resp = append(resp, toResponse(contract))
	}
	respond.JSON(c, http.StatusOK, resp)
}

// analysis returns the stored analysis for a contract file path, or JSON
// null while none exists. Missing analyses are an expected state for fresh
// uploads, so this endpoint never reports them as errors.
func (h *Handler) analysis(c *gin.Context) {
	path := c.Query("path")

	result, err := h.Svc.GetAnalysis(c.Request.Context(), path)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load analysis", nil)
		return
	}

	respond.JSON(c, http.StatusOK, result)
}
