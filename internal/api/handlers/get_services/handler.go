package get_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KaayaanAi/salon-receptionist/internal/api/handlers"
	tenantsService "github.com/KaayaanAi/salon-receptionist/internal/service/tenants"
)

const msgTenantNotFound = "tenant not found"

type Handler struct {
	service TenantsService
	logger  Logger
}

func NewHandler(service TenantsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]

	result, err := h.service.ListServices(tenantID)
	if err != nil {
		switch {
		case errors.Is(err, tenantsService.ErrTenantNotFound):
			h.logger.Warn("GET /services - tenant not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		default:
			h.logger.Error("GET /services - failed: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
