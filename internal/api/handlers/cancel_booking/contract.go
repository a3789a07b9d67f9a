package cancel_booking

import (
	"context"

	"github.com/KaayaanAi/salon-receptionist/internal/service/bookings/models"
)

type BookingsService interface {
	Cancel(ctx context.Context, tenantID, bookingRef string, req *models.CancelBookingRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
