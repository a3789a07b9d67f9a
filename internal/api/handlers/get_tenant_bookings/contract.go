package get_tenant_bookings

import (
	"context"

	"github.com/KaayaanAi/salon-receptionist/internal/service/bookings/models"
)

type BookingsService interface {
	GetTenantBookings(ctx context.Context, req *models.GetTenantBookingsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
