package get_customer_bookings

import (
	"context"

	"github.com/KaayaanAi/salon-receptionist/internal/service/bookings/models"
)

type BookingsService interface {
	GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
