package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/KaayaanAi/salon-receptionist/internal/api/handlers"
	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	getAvailableSlots "github.com/KaayaanAi/salon-receptionist/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "date query parameter is required, expected YYYY-MM-DD"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgMissingServiceID = "serviceId query parameter is required"
	msgTenantNotFound   = "tenant not found"
	msgServiceNotFound  = "service not found"
	msgDateInPast       = "date must not be in the past"
	msgDateTooFar       = "date is beyond the booking horizon"
	msgTenantConfig     = "tenant configuration error"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/available-slots?date=YYYY-MM-DD&serviceId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceID := query.Get("serviceId")
	if serviceID == "" {
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		TenantID:  tenantID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTenantNotFound):
			h.logger.Warn("GET /available-slots - tenant not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - service not found: tenant=%s, service=%s", tenantID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - date in past: tenant=%s, date=%s", tenantID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - date too far: tenant=%s, date=%s", tenantID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - invalid input: tenant=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableSlots.ErrTenantConfig):
			h.logger.Error("GET /available-slots - tenant config error: tenant=%s, error=%v", tenantID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgTenantConfig)

		default:
			h.logger.Error("GET /available-slots - failed: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
