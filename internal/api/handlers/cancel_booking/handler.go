package cancel_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KaayaanAi/salon-receptionist/internal/api/handlers"
	bookingsService "github.com/KaayaanAi/salon-receptionist/internal/service/bookings"
	"github.com/KaayaanAi/salon-receptionist/internal/service/bookings/models"
	"github.com/KaayaanAi/salon-receptionist/pkg/validate"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgTenantNotFound      = "tenant not found"
	msgBookingNotFound     = "booking not found"
	msgAlreadyCancelled    = "booking is already cancelled"
	msgCannotCancel        = "booking cannot be cancelled"
	msgAlreadyPast         = "booking has already started and cannot be cancelled"
	msgInsufficientNotice  = "cancellation notice period has passed"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason" validate:"omitempty,max=500"`
}

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/bookings/{bookingRef}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID := vars["tenantId"]
	bookingRef := vars["bookingRef"]

	// Тело опционально: отмена без причины допустима
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{ref}/cancel - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := validate.Struct(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Cancel(r.Context(), tenantID, bookingRef, &models.CancelBookingRequest{
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrTenantNotFound):
			h.logger.Warn("POST /bookings/{ref}/cancel - tenant not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{ref}/cancel - booking not found: tenant=%s, ref=%s", tenantID, bookingRef)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAlreadyCancelled):
			h.logger.Warn("POST /bookings/{ref}/cancel - already cancelled: tenant=%s, ref=%s", tenantID, bookingRef)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, bookingsService.ErrCannotCancel):
			h.logger.Warn("POST /bookings/{ref}/cancel - cannot cancel: tenant=%s, ref=%s", tenantID, bookingRef)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookingsService.ErrAlreadyPast):
			h.logger.Warn("POST /bookings/{ref}/cancel - already started: tenant=%s, ref=%s", tenantID, bookingRef)
			handlers.RespondConflict(w, msgAlreadyPast)

		case errors.Is(err, bookingsService.ErrInsufficientNotice):
			h.logger.Warn("POST /bookings/{ref}/cancel - insufficient notice: tenant=%s, ref=%s", tenantID, bookingRef)
			handlers.RespondConflict(w, msgInsufficientNotice)

		default:
			h.logger.Error("POST /bookings/{ref}/cancel - failed: tenant=%s, ref=%s, error=%v", tenantID, bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{ref}/cancel - booking cancelled: ref=%s, tenant=%s", bookingRef, tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
