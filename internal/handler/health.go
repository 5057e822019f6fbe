package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable. The postgres
// repository's DB satisfies it; the in-memory store uses a no-op.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	store Pinger
}

func NewHandler(store Pinger) *Handler {
	return &Handler{store: store}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(http.StatusOK, gin.H{"status": "healthy"}, ""))
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.store != nil {
		if err := h.store.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, NewErrorResponse(
				http.StatusServiceUnavailable, "store unreachable", CodeDatabaseError, nil))
			return
		}
	}
	c.JSON(http.StatusOK, NewSuccessResponse(http.StatusOK, gin.H{"status": "ready"}, ""))
}
