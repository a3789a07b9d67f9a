package tenants

import (
	"sort"
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
)

// WorkingHoursResponse расписание работы на день недели
type WorkingHoursResponse struct {
	Enabled bool   `json:"enabled"`
	Open    string `json:"open,omitempty"`
	Close   string `json:"close,omitempty"`
}

// ServiceResponse услуга салона
type ServiceResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ServiceListResponse список активных услуг салона
type ServiceListResponse struct {
	TenantID string            `json:"tenantId"`
	Services []ServiceResponse `json:"services"`
}

// PolicyResponse конфигурация салона в том виде, в котором она действует
type PolicyResponse struct {
	TenantID               string                          `json:"tenantId"`
	Name                   string                          `json:"name"`
	Country                string                          `json:"country"`
	WorkingHours           map[string]WorkingHoursResponse `json:"workingHours"`
	SlotGranularityMinutes int                             `json:"slotGranularityMinutes"`
	MaxConcurrentBookings  int                             `json:"maxConcurrentBookings"`
	AdvanceBookingDays     int                             `json:"advanceBookingDays"`
	CancelNoticeHours      int                             `json:"cancelNoticeHours"`
	BlockedDates           []string                        `json:"blockedDates"`
	Services               []ServiceResponse               `json:"services"`
}

// weekdayKeys ключи дней недели в JSON-ответе
var weekdayKeys = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.TenantPolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	hours := make(map[string]WorkingHoursResponse, len(p.WorkingHours))
	for weekday, wh := range p.WorkingHours {
		resp := WorkingHoursResponse{Enabled: wh.Enabled}
		if wh.Enabled {
			resp.Open = wh.Open.String()
			resp.Close = wh.Close.String()
		}
		hours[weekdayKeys[weekday]] = resp
	}

	blocked := make([]string, 0, len(p.BlockedDates))
	for date := range p.BlockedDates {
		blocked = append(blocked, date)
	}
	sort.Strings(blocked)

	return &PolicyResponse{
		TenantID:               p.TenantID,
		Name:                   p.Name,
		Country:                p.Country,
		WorkingHours:           hours,
		SlotGranularityMinutes: p.SlotGranularityMinutes,
		MaxConcurrentBookings:  p.MaxConcurrentBookings,
		AdvanceBookingDays:     p.AdvanceBookingDays,
		CancelNoticeHours:      p.CancelNoticeHours,
		BlockedDates:           blocked,
		Services:               fromDomainServices(p.Services),
	}
}

// FromDomainServiceList конвертирует активные услуги салона в DTO
func FromDomainServiceList(p *domain.TenantPolicy) *ServiceListResponse {
	return &ServiceListResponse{
		TenantID: p.TenantID,
		Services: fromDomainServices(p.ActiveServices()),
	}
}

func fromDomainServices(services []domain.Service) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(services))
	for _, svc := range services {
		if !svc.Active {
			continue
		}
		result = append(result, ServiceResponse{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
		})
	}
	return result
}
