package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KaayaanAi/salon-receptionist/internal/api/handlers"
	bookingsService "github.com/KaayaanAi/salon-receptionist/internal/service/bookings"
)

const msgBookingNotFound = "booking not found"

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

// Handle GET /api/v1/tenants/{tenantId}/bookings/{bookingRef}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID := vars["tenantId"]
	bookingRef := vars["bookingRef"]

	result, err := h.service.GetByRef(r.Context(), tenantID, bookingRef)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{ref} - not found: tenant=%s, ref=%s", tenantID, bookingRef)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /bookings/{ref} - failed: tenant=%s, ref=%s, error=%v", tenantID, bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
