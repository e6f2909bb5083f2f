package httperr

import (
	"net/http"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError records err on the context for the logging and error
// middleware and writes the public envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type rule struct {
	target error
	status int
	// fixed message; empty means the categorized reason is shown as is
	message string
}

// Order matters: actor rejections are also validation rejections.
var domainRules = []rule{
	{target: errs.ErrBookingNotTracked, status: http.StatusNotFound, message: "Booking not tracked"},
	{target: booking.ErrActorNotPermitted, status: http.StatusForbidden},
	{target: errs.ErrNotAllowed, status: http.StatusUnprocessableEntity},
	{target: errs.ErrHandledElsewhere, status: http.StatusConflict},
	{target: errs.ErrServerRejected, status: http.StatusBadGateway},
}

// StatusFor maps an engine error onto an HTTP status and the message the UI shows.
func StatusFor(err error) (int, string) {
	for _, r := range domainRules {
		if !errs.Is(err, r.target) {
			continue
		}
		if r.message != "" {
			return r.status, r.message
		}
		return r.status, errs.Reason(err)
	}
	return http.StatusInternalServerError, "Internal error"
}

func AbortWithDomainError(c *gin.Context, err error) {
	status, msg := StatusFor(err)
	AbortWithError(c, status, err, msg, nil)
}
