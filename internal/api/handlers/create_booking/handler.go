package create_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KaayaanAi/salon-receptionist/internal/api/handlers"
	"github.com/KaayaanAi/salon-receptionist/internal/rules"
	createBooking "github.com/KaayaanAi/salon-receptionist/internal/usecase/create_booking"
	"github.com/KaayaanAi/salon-receptionist/pkg/validate"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgTenantNotFound     = "tenant not found"
	msgSlotNotAvailable   = "the requested time slot is not available"
	msgValidationFailed   = "booking request failed validation"
	msgRefGeneration      = "could not allocate a booking reference, please retry"
	msgTenantConfig       = "tenant configuration error"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := validate.Struct(&req); err != nil {
		h.logger.Warn("POST /bookings - request validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		// Нарушения бизнес-правил возвращаются полным списком
		if verr, ok := rules.AsValidationError(err); ok {
			h.logger.Warn("POST /bookings - rules rejected request: tenant=%s, reasons=%d", tenantID, len(verr.Reasons))
			handlers.RespondValidationErrors(w, msgValidationFailed, verr.Reasons)
			return
		}

		switch {
		case errors.Is(err, createBooking.ErrTenantNotFound):
			h.logger.Warn("POST /bookings - tenant not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - slot not available: tenant=%s", tenantID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrRefGenerationFailed):
			h.logger.Error("POST /bookings - ref generation failed: tenant=%s", tenantID)
			handlers.RespondConflict(w, msgRefGeneration)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - invalid input: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createBooking.ErrTenantConfig):
			h.logger.Error("POST /bookings - tenant config error: tenant=%s, error=%v", tenantID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgTenantConfig)

		default:
			h.logger.Error("POST /bookings - failed to create booking: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - booking created: ref=%s, tenant=%s", result.BookingRef, tenantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
