package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"workshop-booking/internal/domain/booking"
	"workshop-booking/internal/infra"
	"workshop-booking/internal/pkg/config"
	"workshop-booking/internal/pkg/errs"
	"workshop-booking/internal/pkg/patch"
	"workshop-booking/internal/usecase/shared"
)

const maxResponseBytes = 4 << 20

// Client talks to the booking backend's REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg config.BackendConfig, logger *slog.Logger) (*Client, error) {
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, errs.Wrapf(err, "invalid backend base url %q", cfg.BaseURL)
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

type statusRequest struct {
	Status string `json:"status"`
}

type responseRequest struct {
	ResponseStatus string `json:"responseStatus"`
	ActorRole      string `json:"actorRole"`
}

type confirmArrivalRequest struct {
	ConfirmedBy string `json:"confirmedBy"`
}

type confirmArrivalResponse struct {
	BothConfirmed   bool   `json:"bothConfirmed"`
	ResultingStatus string `json:"resultingStatus"`
	Status          string `json:"status"`
}

func (c *Client) ListBookings(ctx context.Context) ([]booking.TrackedBooking, error) {
	body, err := c.do(ctx, http.MethodGet, "/bookings", nil)
	if err != nil {
		return nil, err
	}

	raws, err := decodeList(body)
	if err != nil {
		return nil, infra.WrapBackendErr(c.logger, infra.KindDecode, 0, "decode booking list", err)
	}

	out := make([]booking.TrackedBooking, 0, len(raws))
	for _, raw := range raws {
		b, err := NormalizeBooking(raw)
		if err != nil {
			// One malformed record must not hide the others.
			c.logger.Warn("skipping malformed booking payload", "error", err)
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *Client) FetchBooking(ctx context.Context, id int64) (booking.TrackedBooking, error) {
	body, err := c.do(ctx, http.MethodGet, bookingPath(id, ""), nil)
	if err != nil {
		return booking.TrackedBooking{}, err
	}

	raw, err := decodeOne(body)
	if err != nil {
		return booking.TrackedBooking{}, infra.WrapBackendErr(c.logger, infra.KindDecode, 0, fmt.Sprintf("decode booking %d", id), err)
	}
	b, err := NormalizeBooking(raw)
	if err != nil {
		return booking.TrackedBooking{}, infra.WrapBackendErr(c.logger, infra.KindDecode, 0, fmt.Sprintf("normalize booking %d", id), err)
	}
	return b, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, status booking.Status) error {
	body, err := c.do(ctx, http.MethodPatch, bookingPath(id, "/status"), statusRequest{Status: status.String()})
	if err != nil {
		return conflictOr(id, body, err)
	}
	return nil
}

func (c *Client) UpdateResponse(ctx context.Context, id int64, response booking.ResponseStatus, actor booking.ActorRole) error {
	req := responseRequest{ResponseStatus: response.String(), ActorRole: actor.String()}
	body, err := c.do(ctx, http.MethodPatch, bookingPath(id, "/response"), req)
	if err != nil {
		return conflictOr(id, body, err)
	}
	return nil
}

func (c *Client) ConfirmArrival(ctx context.Context, id int64, actor booking.ActorRole) (*shared.ArrivalResult, error) {
	body, err := c.do(ctx, http.MethodPost, bookingPath(id, "/confirm-arrival"), confirmArrivalRequest{ConfirmedBy: actor.String()})
	if err != nil {
		return nil, conflictOr(id, body, err)
	}

	var resp confirmArrivalResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, infra.WrapBackendErr(c.logger, infra.KindDecode, 0, fmt.Sprintf("decode arrival confirmation %d", id), err)
	}

	result := &shared.ArrivalResult{BothConfirmed: resp.BothConfirmed}
	if value := patch.FirstNonEmpty(resp.ResultingStatus, resp.Status); value != "" {
		status, err := NormalizeStatus(value)
		if err != nil {
			return nil, infra.WrapBackendErr(c.logger, infra.KindDecode, 0, fmt.Sprintf("decode arrival confirmation %d", id), err)
		}
		result.ResultingStatus = status
	}
	return result, nil
}

// conflictOr turns a 409 carrying the server's current record into a ConflictError.
func conflictOr(id int64, body []byte, err error) error {
	if !infra.IsKind(err, infra.KindConflict) {
		return err
	}

	raw, decodeErr := decodeOne(body)
	if decodeErr != nil {
		return err
	}
	value := patch.FirstNonEmpty(raw.Status, raw.JobStatus, raw.BookingStatus)
	if value == "" {
		return err
	}
	current, statusErr := NormalizeStatus(value)
	if statusErr != nil {
		return err
	}
	return &shared.ConflictError{BookingID: id, Current: current}
}

func (c *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	op := method + " " + path

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, errs.Wrap(err, "encode request body")
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, errs.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	if requestBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, infra.WrapBackendErr(c.logger, infra.KindTransport, 0, op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, infra.WrapBackendErr(c.logger, infra.KindTransport, resp.StatusCode, op, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return body, infra.WrapBackendErr(c.logger, infra.KindNotFound, resp.StatusCode, op, nil)
	case resp.StatusCode == http.StatusConflict:
		return body, infra.WrapBackendErr(c.logger, infra.KindConflict, resp.StatusCode, op, nil)
	default:
		return body, infra.WrapBackendErr(c.logger, infra.KindRejected, resp.StatusCode, fmt.Sprintf("%s: HTTP %d", op, resp.StatusCode), nil)
	}
}

func bookingPath(id int64, suffix string) string {
	return fmt.Sprintf("/bookings/%d%s", id, suffix)
}

// decodeList accepts a bare array or an object wrapping it in "data" or "bookings".
func decodeList(body []byte) ([]RawBooking, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raws []RawBooking
		err := json.Unmarshal(trimmed, &raws)
		return raws, err
	}

	var envelope struct {
		Data     []RawBooking `json:"data"`
		Bookings []RawBooking `json:"bookings"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data != nil {
		return envelope.Data, nil
	}
	return envelope.Bookings, nil
}

// decodeOne accepts a bare object or an object wrapping it in "data" or "booking".
func decodeOne(body []byte) (RawBooking, error) {
	var envelope struct {
		Data    *RawBooking `json:"data"`
		Booking *RawBooking `json:"booking"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return RawBooking{}, err
	}
	if envelope.Data != nil {
		return *envelope.Data, nil
	}
	if envelope.Booking != nil {
		return *envelope.Booking, nil
	}

	var raw RawBooking
	err := json.Unmarshal(body, &raw)
	return raw, err
}

// DecodeBooking normalizes a single booking payload received outside a client call,
// such as the creation response a UI forwards after booking locally.
func (c *Client) DecodeBooking(payload []byte) (booking.TrackedBooking, error) {
	raw, err := decodeOne(payload)
	if err != nil {
		return booking.TrackedBooking{}, infra.WrapBackendErr(c.logger, infra.KindDecode, 0, "decode booking payload", err)
	}
	b, err := NormalizeBooking(raw)
	if err != nil {
		return booking.TrackedBooking{}, infra.WrapBackendErr(c.logger, infra.KindDecode, 0, "normalize booking payload", err)
	}
	return b, nil
}
