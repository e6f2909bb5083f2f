//go:build e2e

package e2e

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/infra/backend"

	"github.com/gin-gonic/gin"
)

// FakeBackend serves the booking backend's REST surface from memory.
// A status change on a booking the server already finished answers 409
// with the server's record, the same way the real backend does.
type FakeBackend struct {
	mu       sync.Mutex
	bookings map[int64]backend.RawBooking
	calls    []string

	server *httptest.Server
}

func NewFakeBackend() *FakeBackend {
	f := &FakeBackend{bookings: make(map[int64]backend.RawBooking)}

	r := gin.New()
	r.GET("/bookings", f.list)
	r.GET("/bookings/:id", f.get)
	r.PATCH("/bookings/:id/status", f.updateStatus)
	r.PATCH("/bookings/:id/response", f.updateResponse)
	r.POST("/bookings/:id/confirm-arrival", f.confirmArrival)

	f.server = httptest.NewServer(r)
	return f
}

func (f *FakeBackend) URL() string { return f.server.URL }

func (f *FakeBackend) Close() { f.server.Close() }

// Put stores raw as the server's record, replacing any previous one.
func (f *FakeBackend) Put(raw backend.RawBooking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[raw.ID] = raw
}

func (f *FakeBackend) Get(id int64) (backend.RawBooking, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.bookings[id]
	return raw, ok
}

// Reset drops every record and recorded call.
func (f *FakeBackend) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = make(map[int64]backend.RawBooking)
	f.calls = nil
}

// Calls returns "METHOD path" for every mutating request received.
func (f *FakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FakeBackend) list(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]backend.RawBooking, 0, len(f.bookings))
	for _, raw := range f.bookings {
		out = append(out, raw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (f *FakeBackend) get(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, ok := f.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": raw})
}

func (f *FakeBackend) updateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(c)

	raw, ok := f.lookup(c)
	if !ok {
		return
	}
	if booking.Status(raw.Status).IsTerminal() {
		c.JSON(http.StatusConflict, raw)
		return
	}
	raw.Status = req.Status
	f.bookings[raw.ID] = raw
	c.JSON(http.StatusOK, raw)
}

func (f *FakeBackend) updateResponse(c *gin.Context) {
	var req struct {
		ResponseStatus string `json:"responseStatus"`
		ActorRole      string `json:"actorRole"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(c)

	raw, ok := f.lookup(c)
	if !ok {
		return
	}
	raw.ResponseStatus = req.ResponseStatus
	f.bookings[raw.ID] = raw
	c.JSON(http.StatusOK, raw)
}

func (f *FakeBackend) confirmArrival(c *gin.Context) {
	var req struct {
		ConfirmedBy string `json:"confirmedBy"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(c)

	raw, ok := f.lookup(c)
	if !ok {
		return
	}
	confirmed := true
	switch booking.ActorRole(req.ConfirmedBy) {
	case booking.ActorOwner:
		raw.OwnerConfirmed = &confirmed
	case booking.ActorWorkshop:
		raw.WorkshopConfirmed = &confirmed
	default:
		c.Status(http.StatusBadRequest)
		return
	}

	both := raw.OwnerConfirmed != nil && *raw.OwnerConfirmed &&
		raw.WorkshopConfirmed != nil && *raw.WorkshopConfirmed
	if both {
		raw.ResponseStatus = booking.ResponseConfirmed.String()
	}
	f.bookings[raw.ID] = raw
	c.JSON(http.StatusOK, gin.H{"bothConfirmed": both, "status": raw.Status})
}

func (f *FakeBackend) lookup(c *gin.Context) (backend.RawBooking, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return backend.RawBooking{}, false
	}
	raw, ok := f.bookings[id]
	if !ok {
		c.Status(http.StatusNotFound)
		return backend.RawBooking{}, false
	}
	return raw, true
}

func (f *FakeBackend) record(c *gin.Context) {
	f.calls = append(f.calls, c.Request.Method+" "+c.Request.URL.Path)
}
