//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"workshop-booking/internal/handler/api"
	"workshop-booking/internal/infra/store"
	"workshop-booking/tests/common/builder"
	"workshop-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type tickState bool

func (t tickState) Running() bool { return bool(t) }

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	bookings := store.NewMemoryStore()
	bookings.Upsert(builder.NewBookingBuilder().WithID(1).Build())
	bookings.Upsert(builder.NewBookingBuilder().WithID(2).Build())

	tests := []struct {
		name       string
		running    bool
		wantStatus int
		want       api.HealthResponse
	}{
		{
			name:       "tick running",
			running:    true,
			wantStatus: http.StatusOK,
			want:       api.HealthResponse{Status: "ok", Scheduler: "running", Tracked: 2},
		},
		{
			name:       "tick stopped",
			running:    false,
			wantStatus: http.StatusServiceUnavailable,
			want:       api.HealthResponse{Status: "degraded", Scheduler: "stopped", Tracked: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", api.NewHealthHandler(tickState(tt.running), bookings).Check)

			rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t,
				`{"status":"`+tt.want.Status+`","scheduler":"`+tt.want.Scheduler+`","tracked":2}`,
				rec.Body.String())
		})
	}
}
