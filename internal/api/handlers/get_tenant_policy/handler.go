package get_tenant_policy

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KaayaanAi/salon-receptionist/internal/api/handlers"
	tenantsService "github.com/KaayaanAi/salon-receptionist/internal/service/tenants"
)

const (
	msgTenantNotFound = "tenant not found"
	msgInvalidPolicy  = "tenant configuration is invalid"
)

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

// Handle GET /api/v1/tenants/{tenantId}/policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]

	result, err := h.service.GetPolicy(tenantID)
	if err != nil {
		switch {
		case errors.Is(err, tenantsService.ErrTenantNotFound):
			h.logger.Warn("GET /policy - tenant not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, tenantsService.ErrInvalidPolicy):
			h.logger.Error("GET /policy - invalid config: tenant=%s, error=%v", tenantID, err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInvalidPolicy)

		default:
			h.logger.Error("GET /policy - failed: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
