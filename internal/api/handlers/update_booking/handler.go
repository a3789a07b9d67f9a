package update_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KaayaanAi/salon-receptionist/internal/api/handlers"
	"github.com/KaayaanAi/salon-receptionist/internal/rules"
	updateBooking "github.com/KaayaanAi/salon-receptionist/internal/usecase/update_booking"
	"github.com/KaayaanAi/salon-receptionist/pkg/validate"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgTenantNotFound     = "tenant not found"
	msgBookingNotFound    = "booking not found"
	msgBookingImmutable   = "booking can no longer be updated"
	msgSlotNotAvailable   = "the requested time slot is not available"
	msgNoChanges          = "request contains no fields to update"
	msgValidationFailed   = "booking request failed validation"
	msgTenantConfig       = "tenant configuration error"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/tenants/{tenantId}/bookings/{bookingRef}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID := vars["tenantId"]
	bookingRef := vars["bookingRef"]

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{ref} - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := validate.Struct(&req); err != nil {
		h.logger.Warn("PATCH /bookings/{ref} - request validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, bookingRef))
	if err != nil {
		if verr, ok := rules.AsValidationError(err); ok {
			h.logger.Warn("PATCH /bookings/{ref} - rules rejected request: tenant=%s, ref=%s, reasons=%d",
				tenantID, bookingRef, len(verr.Reasons))
			handlers.RespondValidationErrors(w, msgValidationFailed, verr.Reasons)
			return
		}

		switch {
		case errors.Is(err, updateBooking.ErrTenantNotFound):
			h.logger.Warn("PATCH /bookings/{ref} - tenant not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{ref} - booking not found: tenant=%s, ref=%s", tenantID, bookingRef)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, updateBooking.ErrBookingImmutable):
			h.logger.Warn("PATCH /bookings/{ref} - booking immutable: tenant=%s, ref=%s", tenantID, bookingRef)
			handlers.RespondConflict(w, msgBookingImmutable)

		case errors.Is(err, updateBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{ref} - slot not available: tenant=%s, ref=%s", tenantID, bookingRef)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, updateBooking.ErrNoChanges):
			handlers.RespondBadRequest(w, msgNoChanges)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{ref} - invalid input: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, updateBooking.ErrTenantConfig):
			h.logger.Error("PATCH /bookings/{ref} - tenant config error: tenant=%s, error=%v", tenantID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgTenantConfig)

		default:
			h.logger.Error("PATCH /bookings/{ref} - failed: tenant=%s, ref=%s, error=%v", tenantID, bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{ref} - booking updated: ref=%s, tenant=%s", bookingRef, tenantID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
