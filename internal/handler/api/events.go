package api

import (
	"net/http"
	"strconv"

	"workshop-booking/internal/handler/httperr"
	"workshop-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type EventSubscriber interface {
	Subscribe() (<-chan shared.Event, func())
}

type EventsHandler struct {
	bus EventSubscriber
}

func NewEventsHandler(bus EventSubscriber) *EventsHandler {
	return &EventsHandler{bus: bus}
}

// @Summary Stream engine events
// @Description Server-sent events for arrival triggers, status changes, failed mutations and store updates
// @Tags events
// @Produce text/event-stream
// @Param booking_id query int false "Only events for this booking"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} map[string]string
// @Router /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	var only int64
	if raw := c.Query("booking_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking_id", nil)
			return
		}
		only = id
	}

	events, cancel := h.bus.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if only != 0 && e.BookingID != only {
				continue
			}
			c.SSEvent(string(e.Kind), e)
			c.Writer.Flush()
		}
	}
}
