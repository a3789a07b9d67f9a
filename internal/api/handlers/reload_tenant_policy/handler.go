package reload_tenant_policy

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KaayaanAi/salon-receptionist/internal/api/handlers"
	tenantsService "github.com/KaayaanAi/salon-receptionist/internal/service/tenants"
)

const (
	msgTenantNotFound = "tenant not found"
	msgInvalidPolicy  = "tenant configuration is invalid, previous version kept"
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

// Handle POST /api/v1/tenants/{tenantId}/policy/reload
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]

	result, err := h.service.ReloadPolicy(tenantID)
	if err != nil {
		switch {
		case errors.Is(err, tenantsService.ErrTenantNotFound):
			h.logger.Warn("POST /policy/reload - tenant not found: tenant=%s", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, tenantsService.ErrInvalidPolicy):
			h.logger.Error("POST /policy/reload - invalid config: tenant=%s, error=%v", tenantID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidPolicy)

		default:
			h.logger.Error("POST /policy/reload - failed: tenant=%s, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /policy/reload - config reloaded: tenant=%s", tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
