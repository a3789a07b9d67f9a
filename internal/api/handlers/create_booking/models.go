package create_booking

import (
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	createBooking "github.com/KaayaanAi/salon-receptionist/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName" validate:"required,min=2,max=120"`
	CustomerPhone string  `json:"customerPhone" validate:"required,min=5,max=24"`
	ServiceID     string  `json:"serviceId" validate:"required,max=64"`
	Date          string  `json:"date" validate:"required,len=10"`     // "2025-10-15"
	StartTime     string  `json:"startTime" validate:"required,len=5"` // "10:00"
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingRef      string  `json:"bookingRef"`
	TenantID        string  `json:"tenantId"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	ServiceID       string  `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID string) *createBooking.Request {
	return &createBooking.Request{
		TenantID:      tenantID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ServiceID:     r.ServiceID,
		Date:          r.Date,
		StartTime:     r.StartTime,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingRef:      resp.BookingRef,
		TenantID:        resp.TenantID,
		CustomerName:    resp.CustomerName,
		CustomerPhone:   resp.CustomerPhone,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
