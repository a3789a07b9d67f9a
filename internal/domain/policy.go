package domain

import (
	"time"

	"github.com/KaayaanAi/salon-receptionist/pkg/types"
)

// WorkingHours describes one weekday of a tenant's schedule
type WorkingHours struct {
	Enabled bool
	Open    types.TimeString
	Close   types.TimeString
}

// Service is a bookable salon service in a tenant's catalog
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool
}

// TenantPolicy is the per-salon scheduling configuration.
// Loaded from a tenant file, cached and treated as immutable at runtime:
// any change replaces the whole object, never mutates it in place.
type TenantPolicy struct {
	TenantID string
	Name     string
	Country  string // ISO region hint for phone parsing, e.g. "KW"

	WorkingHours map[time.Weekday]WorkingHours

	SlotGranularityMinutes int
	MaxConcurrentBookings int // number of stylists working in parallel
	AdvanceBookingDays    int // 0 = unlimited
	CancelNoticeHours     int

	BlockedDates map[string]struct{} // keys in YYYY-MM-DD format

	Services []Service
}

// WorkingHoursFor returns the schedule entry for the weekday of date
func (p *TenantPolicy) WorkingHoursFor(date time.Time) WorkingHours {
	hours, ok := p.WorkingHours[date.Weekday()]
	if !ok {
		return WorkingHours{Enabled: false}
	}
	return hours
}

// ServiceByID returns the service with the given id, or nil
func (p *TenantPolicy) ServiceByID(id string) *Service {
	for i := range p.Services {
		if p.Services[i].ID == id {
			return &p.Services[i]
		}
	}
	return nil
}

// ActiveServices returns the services currently offered by the tenant
func (p *TenantPolicy) ActiveServices() []Service {
	active := make([]Service, 0, len(p.Services))
	for _, svc := range p.Services {
		if svc.Active {
			active = append(active, svc)
		}
	}
	return active
}

// IsBlockedDate reports whether the tenant blocked the given calendar date
func (p *TenantPolicy) IsBlockedDate(date time.Time) bool {
	_, blocked := p.BlockedDates[date.Format(DateFormat)]
	return blocked
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p *TenantPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}
