package get_booking

import (
	"context"

	"github.com/KaayaanAi/salon-receptionist/internal/service/bookings/models"
)

type BookingsService interface {
	GetByRef(ctx context.Context, tenantID, bookingRef string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
