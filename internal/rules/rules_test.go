package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
)

func kuwaitLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kuwait")
	require.NoError(t, err)
	return loc
}

func testPolicy() *domain.TenantPolicy {
	return &domain.TenantPolicy{
		TenantID:               "salon-farah",
		Name:                   "Salon Farah",
		Country:                "KW",
		SlotGranularityMinutes: 30,
		MaxConcurrentBookings:  3,
		AdvanceBookingDays:     30,
		CancelNoticeHours:      24,
		WorkingHours: map[time.Weekday]domain.WorkingHours{
			time.Sunday:    {Enabled: true, Open: "10:00", Close: "21:00"},
			time.Monday:    {Enabled: true, Open: "10:00", Close: "21:00"},
			time.Tuesday:   {Enabled: true, Open: "10:00", Close: "21:00"},
			time.Wednesday: {Enabled: true, Open: "10:00", Close: "21:00"},
			time.Thursday:  {Enabled: true, Open: "10:00", Close: "21:00"},
			time.Friday:    {Enabled: false},
			time.Saturday:  {Enabled: true, Open: "12:00", Close: "22:00"},
		},
		BlockedDates: map[string]struct{}{
			"2026-10-20": {},
		},
		Services: []domain.Service{
			{ID: "haircut", Name: "Haircut & Styling", DurationMinutes: 45, Price: 12.0, Active: true},
			{ID: "bridal-package", Name: "Bridal Package", DurationMinutes: 240, Price: 150.0, Active: false},
		},
	}
}

func validInput() BookingInput {
	return BookingInput{
		Date:          "2026-10-05", // понедельник
		StartTime:     "11:00",
		ServiceID:     "haircut",
		CustomerName:  "  Noura Al-Sabah  ",
		CustomerPhone: "50123456",
	}
}

func testNow(loc *time.Location) time.Time {
	// Четверг, 1 октября 2026, полдень
	return time.Date(2026, 10, 1, 12, 0, 0, 0, loc)
}

func TestValidateBooking_Valid(t *testing.T) {
	loc := kuwaitLocation(t)
	engine := NewEngine(loc)

	normalized, err := engine.ValidateBooking(testPolicy(), validInput(), testNow(loc))
	require.NoError(t, err)

	assert.Equal(t, time.Monday, normalized.Weekday)
	assert.Equal(t, "2026-10-05", normalized.Date.Format(domain.DateFormat))
	assert.Equal(t, "11:00", normalized.StartTime.String())
	assert.Equal(t, "haircut", normalized.Service.ID)
	assert.Equal(t, 45, normalized.Service.DurationMinutes)
	assert.Equal(t, "Noura Al-Sabah", normalized.CustomerName)
	assert.Equal(t, "+96550123456", normalized.CustomerPhone)
}

func TestValidateBooking_AccumulatesAllReasons(t *testing.T) {
	loc := kuwaitLocation(t)
	engine := NewEngine(loc)

	in := BookingInput{
		Date:          "not-a-date",
		StartTime:     "99:99",
		ServiceID:     "unknown",
		CustomerName:  " X ",
		CustomerPhone: "123",
	}

	_, err := engine.ValidateBooking(testPolicy(), in, testNow(loc))
	require.Error(t, err)

	verr, ok := AsValidationError(err)
	require.True(t, ok)

	// Дата, услуга, имя и телефон - четыре независимых нарушения.
	// Проверка времени пропущена: без даты нет дня недели.
	assert.Len(t, verr.Reasons, 4)
}

func TestValidateBooking_DateRules(t *testing.T) {
	loc := kuwaitLocation(t)
	engine := NewEngine(loc)
	now := testNow(loc)

	tests := []struct {
		name   string
		date   string
		reason string
	}{
		{name: "past date", date: "2026-09-30", reason: "booking date is in the past"},
		{name: "beyond advance window", date: "2026-11-15", reason: "advance window"},
		{name: "blocked date", date: "2026-10-20", reason: "not accepting bookings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Date = tt.date

			_, err := engine.ValidateBooking(testPolicy(), in, now)
			require.Error(t, err)

			verr, ok := AsValidationError(err)
			require.True(t, ok)
			require.Len(t, verr.Reasons, 1)
			assert.Contains(t, verr.Reasons[0], tt.reason)
		})
	}
}

func TestValidateBooking_TimeRules(t *testing.T) {
	loc := kuwaitLocation(t)
	engine := NewEngine(loc)
	now := testNow(loc)

	t.Run("closed weekday", func(t *testing.T) {
		in := validInput()
		in.Date = "2026-10-09" // пятница

		_, err := engine.ValidateBooking(testPolicy(), in, now)
		require.Error(t, err)
		verr, _ := AsValidationError(err)
		require.Len(t, verr.Reasons, 1)
		assert.Contains(t, verr.Reasons[0], "closed on fridays")
	})

	t.Run("non-canonical time is rejected", func(t *testing.T) {
		// "9:30" парсится, но ломает лексикографическое сравнение времен
		in := validInput()
		in.StartTime = "9:30"

		_, err := engine.ValidateBooking(testPolicy(), in, now)
		require.Error(t, err)
		verr, _ := AsValidationError(err)
		require.Len(t, verr.Reasons, 1)
		assert.Contains(t, verr.Reasons[0], "not a valid time")
	})

	t.Run("before opening", func(t *testing.T) {
		in := validInput()
		in.StartTime = "09:30"

		_, err := engine.ValidateBooking(testPolicy(), in, now)
		require.Error(t, err)
		verr, _ := AsValidationError(err)
		assert.Contains(t, verr.Reasons[0], "outside working hours")
	})

	t.Run("at opening is allowed", func(t *testing.T) {
		in := validInput()
		in.StartTime = "10:00"

		_, err := engine.ValidateBooking(testPolicy(), in, now)
		assert.NoError(t, err)
	})

	t.Run("at closing is rejected", func(t *testing.T) {
		in := validInput()
		in.StartTime = "21:00"

		_, err := engine.ValidateBooking(testPolicy(), in, now)
		require.Error(t, err)
		verr, _ := AsValidationError(err)
		assert.Contains(t, verr.Reasons[0], "outside working hours")
	})
}

func TestValidateBooking_ServiceRules(t *testing.T) {
	loc := kuwaitLocation(t)
	engine := NewEngine(loc)
	now := testNow(loc)

	t.Run("unknown service", func(t *testing.T) {
		in := validInput()
		in.ServiceID = "massage"

		_, err := engine.ValidateBooking(testPolicy(), in, now)
		require.Error(t, err)
		verr, _ := AsValidationError(err)
		assert.Contains(t, verr.Reasons[0], "not offered")
	})

	t.Run("inactive service", func(t *testing.T) {
		in := validInput()
		in.ServiceID = "bridal-package"

		_, err := engine.ValidateBooking(testPolicy(), in, now)
		require.Error(t, err)
		verr, _ := AsValidationError(err)
		assert.Contains(t, verr.Reasons[0], "currently unavailable")
	})
}

func TestCheckCancellationNotice(t *testing.T) {
	loc := kuwaitLocation(t)
	engine := NewEngine(loc)
	policy := testPolicy() // cancel_notice_hours = 24

	appt := &domain.Appointment{
		BookingRef:      "BK-salon-farah-20261005-001",
		Date:            time.Date(2026, 10, 5, 0, 0, 0, 0, loc),
		StartTime:       "11:00",
		DurationMinutes: 45,
		Status:          domain.StatusConfirmed,
	}

	t.Run("enough notice", func(t *testing.T) {
		now := time.Date(2026, 10, 3, 11, 0, 0, 0, loc) // 48 часов до начала
		assert.NoError(t, engine.CheckCancellationNotice(policy, appt, now))
	})

	t.Run("exactly at the notice boundary", func(t *testing.T) {
		now := time.Date(2026, 10, 4, 11, 0, 0, 0, loc) // ровно 24 часа
		assert.NoError(t, engine.CheckCancellationNotice(policy, appt, now))
	})

	t.Run("insufficient notice", func(t *testing.T) {
		now := time.Date(2026, 10, 5, 1, 0, 0, 0, loc) // 10 часов до начала
		err := engine.CheckCancellationNotice(policy, appt, now)
		assert.ErrorIs(t, err, ErrInsufficientNotice)
	})

	t.Run("already started", func(t *testing.T) {
		now := time.Date(2026, 10, 5, 11, 0, 0, 0, loc) // ровно время начала
		err := engine.CheckCancellationNotice(policy, appt, now)
		assert.ErrorIs(t, err, ErrAppointmentAlreadyPast)
	})

	t.Run("long past", func(t *testing.T) {
		now := time.Date(2026, 10, 7, 9, 0, 0, 0, loc)
		err := engine.CheckCancellationNotice(policy, appt, now)
		assert.ErrorIs(t, err, ErrAppointmentAlreadyPast)
	})
}
