package reload_tenant_policy

import (
	tenantsService "github.com/KaayaanAi/salon-receptionist/internal/service/tenants"
)

type TenantsService interface {
	ReloadPolicy(tenantID string) (*tenantsService.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
