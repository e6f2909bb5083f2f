package api

import (
	"net/http"
	"strconv"

	"workshop-booking/internal/domain/booking"
	reqdto "workshop-booking/internal/handler/dto/request"
	resdto "workshop-booking/internal/handler/dto/response"
	"workshop-booking/internal/handler/httperr"
	"workshop-booking/internal/handler/middleware"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/usecase/commands"
	"workshop-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errUnauthenticated = errs.New("no authenticated actor")

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary List tracked bookings
// @Description List every booking the engine currently tracks, with derived affordances
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	res, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get tracked booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Sync bookings
// @Description Load every booking from the backend and start tracking the unfinished ones
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SyncResponse
// @Failure 502 {object} map[string]string
// @Router /bookings/sync [post]
func (h *BookingHandler) Sync(c *gin.Context) {
	tracked, err := h.cmds.Sync(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.SyncResponse{Tracked: tracked})
}

// @Summary Track booking
// @Description Fetch one booking from the backend and start tracking it
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.TrackResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/track [post]
func (h *BookingHandler) Track(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	out, err := h.cmds.Track(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondTrack(c, http.StatusOK, out)
}

// @Summary Track locally created booking
// @Description Start tracking a booking this client just created; its local creation time becomes the cancellation reference
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.TrackLocalRequest true "Backend booking payload"
// @Success 201 {object} resdto.TrackResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/local [post]
func (h *BookingHandler) TrackLocal(c *gin.Context) {
	var req reqdto.TrackLocalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	out, err := h.cmds.TrackLocal(c.Request.Context(), req.Booking)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	h.respondTrack(c, http.StatusCreated, out)
}

// @Summary Untrack booking
// @Tags bookings
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Untrack(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	if err := h.cmds.Untrack(c.Request.Context(), id); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Apply lifecycle transition
// @Description Optimistically apply a transition and send it to the backend
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param request body reqdto.TransitionRequest true "Transition"
// @Success 200 {object} resdto.MutationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/transitions [post]
func (h *BookingHandler) Transition(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, ok := actorRole(c)
	if !ok {
		return
	}
	var req reqdto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	out, err := h.cmds.Transition(c.Request.Context(), id, actor, req.ToDomain())
	h.respondMutation(c, out, err)
}

// @Summary Change response
// @Description Accept or decline a booking before its appointment
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Param request body reqdto.RespondRequest true "Requested response"
// @Success 200 {object} resdto.MutationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/response [post]
func (h *BookingHandler) Respond(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, ok := actorRole(c)
	if !ok {
		return
	}
	var req reqdto.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	out, err := h.cmds.Respond(c.Request.Context(), id, actor, req.ToDomain())
	h.respondMutation(c, out, err)
}

// @Summary Confirm arrival
// @Description Confirm arrival for the caller's side of the booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.MutationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/arrival-confirmation [post]
func (h *BookingHandler) ConfirmArrival(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	actor, ok := actorRole(c)
	if !ok {
		return
	}

	out, err := h.cmds.ConfirmArrival(c.Request.Context(), id, actor)
	h.respondMutation(c, out, err)
}

func (h *BookingHandler) respondMutation(c *gin.Context, out *commands.MutationOutcome, err error) {
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromMutationOutcome(out)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	if out.Reconciled {
		httperr.AbortWithError(c, http.StatusConflict, errs.Wrap(errs.ErrHandledElsewhere, out.Notice), out.Notice, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) respondTrack(c *gin.Context, status int, out *commands.TrackOutcome) {
	res, err := resdto.FromTrackOutcome(out)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(status, res)
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errs.Newf("booking id must be positive, got %d", id)
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return 0, false
	}
	return id, true
}

func actorRole(c *gin.Context) (booking.ActorRole, bool) {
	actor, ok := middleware.GetActorRole(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return "", false
	}
	return actor, true
}
