package get_available_slots

import (
	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	getAvailableSlots "github.com/KaayaanAi/salon-receptionist/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// AvailableSlotsResponse HTTP модель ответа со слотами
type AvailableSlotsResponse struct {
	TenantID    string         `json:"tenantId"`
	ServiceID   string         `json:"serviceId"`
	ServiceName string         `json:"serviceName"`
	Date        string         `json:"date"` // "2025-10-15"
	Slots       []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
		})
	}

	return &AvailableSlotsResponse{
		TenantID:    resp.TenantID,
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		Date:        resp.Date.Format(domain.DateFormat),
		Slots:       slots,
	}
}
