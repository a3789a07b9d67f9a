package get_services

import (
	tenantsService "github.com/KaayaanAi/salon-receptionist/internal/service/tenants"
)

type TenantsService interface {
	ListServices(tenantID string) (*tenantsService.ServiceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
