package get_customer_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KaayaanAi/salon-receptionist/internal/api/handlers"
	bookingsService "github.com/KaayaanAi/salon-receptionist/internal/service/bookings"
	"github.com/KaayaanAi/salon-receptionist/internal/service/bookings/models"
)

const (
	msgTenantNotFound = "tenant not found"
	msgInvalidPhone   = "invalid phone number"
	msgInvalidSince   = "invalid since date, expected YYYY-MM-DD"
)

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

// Handle GET /api/v1/tenants/{tenantId}/customers/{phone}/bookings?since=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID := vars["tenantId"]
	phone := vars["phone"]

	req := &models.GetCustomerBookingsRequest{
		TenantID: tenantID,
		Phone:    phone,
	}
	if since := r.URL.Query().Get("since"); since != "" {
		req.Since = &since
	}

	result, err := h.service.GetCustomerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrTenantNotFound):
			h.logger.Warn("GET /customers/{phone}/bookings - tenant not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, bookingsService.ErrInvalidPhone):
			h.logger.Warn("GET /customers/{phone}/bookings - invalid phone: tenant=%s", tenantID)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /customers/{phone}/bookings - invalid input: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidSince)

		default:
			h.logger.Error("GET /customers/{phone}/bookings - failed: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
