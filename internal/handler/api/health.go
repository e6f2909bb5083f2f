package api

import (
	"net/http"

	"workshop-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

// TickState reports whether the repeating tick is running.
type TickState interface {
	Running() bool
}

type HealthHandler struct {
	tick  TickState
	store shared.BookingStore
}

func NewHealthHandler(tick TickState, store shared.BookingStore) *HealthHandler {
	return &HealthHandler{tick: tick, store: store}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Scheduler string `json:"scheduler"`
	Tracked   int    `json:"tracked"`
}

// @Summary Health check
// @Description Reports whether the tick is running and how many bookings are tracked
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	res := HealthResponse{Status: "ok", Scheduler: "running", Tracked: len(h.store.All())}
	if !h.tick.Running() {
		res.Status = "degraded"
		res.Scheduler = "stopped"
		c.JSON(http.StatusServiceUnavailable, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
