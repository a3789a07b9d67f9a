package domain

// Default policy values applied when a tenant file omits a field
const (
	DefaultSlotGranularityMinutes = 30
	DefaultMaxConcurrentBookings  = 1
	DefaultAdvanceBookingDays     = 30
	DefaultCancelNoticeHours      = 24
)

// Business validation constants
const (
	MinCustomerNameLength = 2

	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240
	MinConcurrentBookings     = 1
	MaxConcurrentBookings     = 100

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Booking reference format: BK-{tenantId}-{YYYYMMDD}-{seq}
const (
	BookingRefPrefix   = "BK"
	BookingRefDateFmt  = "20060102"
	BookingRefSeqWidth = 3 // minimum digits; widens beyond 999, never truncates
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone anchors all scheduling computations.
// Overridable via service configuration.
const DefaultTimezone = "Asia/Kuwait"

// InactiveStatuses список статусов, не занимающих слот.
// Используется при подсчете занятости.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
	StatusCompleted,
}

// ActiveStatuses список статусов, занимающих слот
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
