package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcpsquare/marketplace-api/internal/handler"
	"github.com/mcpsquare/marketplace-api/internal/model"
	"github.com/mcpsquare/marketplace-api/internal/repository"
	"github.com/mcpsquare/marketplace-api/internal/service/catalog"
	"github.com/mcpsquare/marketplace-api/internal/validation"
)

type Handler struct {
	service catalog.CatalogServicer
}

func NewHandler(service catalog.CatalogServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	services := r.Group("/services")
	{
		services.GET("", h.ListServices)
		services.POST("", h.CreateService)
		services.GET("/:id", h.GetService)
		services.PUT("/:id", h.UpdateService)
		services.PATCH("/:id", h.PatchService)
		services.DELETE("/:id", h.DeleteService)
	}
}

// listResponse is the data block of GET /services.
type listResponse struct {
	Services   []*model.Service    `json:"services"`
	Pagination repository.PageMeta `json:"pagination"`
}

func (h *Handler) ListServices(c *gin.Context) {
	query, fieldErrors := validation.ParseListQuery(c.Request.URL.Query())
	if fieldErrors != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(
			http.StatusBadRequest, "Validation failed", handler.CodeValidationError,
			handler.ValidationDetails(fieldErrors)))
		return
	}

	filter := repository.NewListFilter(query.Category, query.Search)
	page := repository.NewPageParams(query.Page, query.Limit)

	services, meta, err := h.service.ListServices(c.Request.Context(), filter, page)
	if err != nil {
		h.serverError(c, err)
		return
	}
	if services == nil {
		services = []*model.Service{}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(http.StatusOK,
		listResponse{Services: services, Pagination: meta},
		"Services retrieved successfully"))
}

func (h *Handler) CreateService(c *gin.Context) {
	var req validation.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(
			http.StatusBadRequest, "Invalid JSON", handler.CodeValidationError, nil))
		return
	}
	if fieldErrors := req.Validate(); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(
			http.StatusBadRequest, "Validation failed", handler.CodeValidationError,
			handler.ValidationDetails(fieldErrors)))
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), req.ToService())
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			c.JSON(http.StatusConflict, handler.NewErrorResponse(
				http.StatusConflict, "id already exists", handler.CodeDuplicateError,
				map[string]interface{}{"field": "id"}))
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(http.StatusCreated,
		svc, "Service created successfully"))
}

func (h *Handler) GetService(c *gin.Context) {
	id, ok := h.serviceID(c)
	if !ok {
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		h.repositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(http.StatusOK,
		svc, "Service retrieved successfully"))
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := h.serviceID(c)
	if !ok {
		return
	}

	var req validation.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(
			http.StatusBadRequest, "Invalid JSON", handler.CodeValidationError, nil))
		return
	}
	if fieldErrors := req.Validate(); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(
			http.StatusBadRequest, "Validation failed", handler.CodeValidationError,
			handler.ValidationDetails(fieldErrors)))
		return
	}

	svc, err := h.service.ReplaceService(c.Request.Context(), id, req.ToService())
	if err != nil {
		h.repositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(http.StatusOK,
		svc, "Service updated successfully"))
}

func (h *Handler) PatchService(c *gin.Context) {
	id, ok := h.serviceID(c)
	if !ok {
		return
	}

	var req validation.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(
			http.StatusBadRequest, "Invalid JSON", handler.CodeValidationError, nil))
		return
	}
	if fieldErrors := req.Validate(); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(
			http.StatusBadRequest, "Validation failed", handler.CodeValidationError,
			handler.ValidationDetails(fieldErrors)))
		return
	}

	svc, err := h.service.PatchService(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		h.repositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(http.StatusOK,
		svc, "Service updated successfully"))
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := h.serviceID(c)
	if !ok {
		return
	}

	svc, err := h.service.DeleteService(c.Request.Context(), id)
	if err != nil {
		h.repositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(http.StatusOK,
		gin.H{"deletedService": svc}, "Service deleted successfully"))
}

// serviceID validates the :id path parameter before any repository call.
// A malformed id is a validation failure, not a missing record.
func (h *Handler) serviceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(
			http.StatusBadRequest, "Invalid service ID format", "", nil))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) repositoryError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse(
			http.StatusNotFound, "Service not found", handler.CodeNotFound, nil))
		return
	}
	h.serverError(c, err)
}

// serverError logs the underlying failure and returns an opaque 500 so
// internal error text never reaches clients.
func (h *Handler) serverError(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Str("request_id", c.GetString("request_id")).
		Msg("request failed")

	c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(
		http.StatusInternalServerError, "Database operation failed",
		handler.CodeDatabaseError, nil))
}
