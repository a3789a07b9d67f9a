package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	"github.com/KaayaanAi/salon-receptionist/internal/infra/tenantcfg"
	"github.com/KaayaanAi/salon-receptionist/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error

	calls   int
	filters []domain.TenantBookingsFilter
}

func (f *fakeAppointmentRepo) GetByTenantWithFilter(_ context.Context, filter domain.TenantBookingsFilter) ([]*domain.Appointment, error) {
	f.calls++
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

type fakePolicyProvider struct {
	policy *domain.TenantPolicy
	err    error
}

func (f *fakePolicyProvider) GetPolicy(string) (*domain.TenantPolicy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.policy, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type testLogger struct{}

func (testLogger) Info(format string, v ...interface{})  {}
func (testLogger) Warn(format string, v ...interface{})  {}
func (testLogger) Error(format string, v ...interface{}) {}

func slotsPolicy() *domain.TenantPolicy {
	return &domain.TenantPolicy{
		TenantID:               "salon-farah",
		Country:                "KW",
		SlotGranularityMinutes: 30,
		MaxConcurrentBookings:  2,
		AdvanceBookingDays:     30,
		CancelNoticeHours:      24,
		WorkingHours: map[time.Weekday]domain.WorkingHours{
			time.Sunday: {Enabled: true, Open: "10:00", Close: "13:00"},
			time.Friday: {Enabled: false},
		},
		BlockedDates: map[string]struct{}{"2026-10-11": {}},
		Services: []domain.Service{
			{ID: "haircut", Name: "Haircut & Styling", DurationMinutes: 45, Price: 12.0, Active: true},
			{ID: "bridal-package", Name: "Bridal Package", DurationMinutes: 240, Price: 150.0, Active: false},
		},
	}
}

func dayAppointment(ref string, start, end types.TimeString) *domain.Appointment {
	return &domain.Appointment{
		BookingRef:      ref,
		TenantID:        "salon-farah",
		StartTime:       start,
		EndTime:         end,
		Status:          domain.StatusConfirmed,
		DurationMinutes: 45,
	}
}

func newSlotsUseCase(repo *fakeAppointmentRepo, policy *domain.TenantPolicy, now time.Time) *UseCase {
	return NewUseCase(repo, &fakePolicyProvider{policy: policy}, &fakeTimeProvider{now: now}, testLogger{})
}

func TestExecute_GeneratesSlotsWithinWorkingHours(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, loc)
	date := time.Date(2026, 10, 4, 0, 0, 0, 0, loc) // воскресенье

	repo := &fakeAppointmentRepo{}
	uc := newSlotsUseCase(repo, slotsPolicy(), now)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:  "salon-farah",
		ServiceID: "haircut",
		Date:      date,
	})
	require.NoError(t, err)

	assert.Equal(t, "Haircut & Styling", resp.ServiceName)

	// Окно 10:00-13:00, шаг 30 минут, услуга 45 минут:
	// последний слот 12:00 (конец 12:45), 12:30 уже не помещается
	starts := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime.String())
		assert.Equal(t, 2, s.AvailableSpots)
		assert.Equal(t, 2, s.TotalSpots)
		assert.Equal(t, 45, s.DurationMinutes)
	}
	assert.Equal(t, []string{"10:00", "10:30", "11:00", "11:30", "12:00"}, starts)
}

func TestExecute_SlotEndingExactlyAtCloseIsOffered(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, loc)
	date := time.Date(2026, 10, 4, 0, 0, 0, 0, loc)

	policy := slotsPolicy()
	policy.Services[0].DurationMinutes = 90

	uc := newSlotsUseCase(&fakeAppointmentRepo{}, policy, now)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:  "salon-farah",
		ServiceID: "haircut",
		Date:      date,
	})
	require.NoError(t, err)

	// 11:30 + 90 минут заканчивается ровно в закрытие - допустимо
	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, "11:30", last.StartTime.String())
}

func TestExecute_OccupiedCapacityReducesSpots(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, loc)
	date := time.Date(2026, 10, 4, 0, 0, 0, 0, loc)

	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		dayAppointment("BK-salon-farah-20261004-001", "10:00", "10:45"),
	}}
	uc := newSlotsUseCase(repo, slotsPolicy(), now)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:  "salon-farah",
		ServiceID: "haircut",
		Date:      date,
	})
	require.NoError(t, err)

	bySpots := make(map[string]int, len(resp.Slots))
	for _, s := range resp.Slots {
		bySpots[s.StartTime.String()] = s.AvailableSpots
	}

	// 10:00 и 10:30 пересекаются с существующей записью 10:00-10:45
	assert.Equal(t, 1, bySpots["10:00"])
	assert.Equal(t, 1, bySpots["10:30"])
	assert.Equal(t, 2, bySpots["11:00"])
}

func TestExecute_FullyBookedSlotsAreDropped(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, loc)
	date := time.Date(2026, 10, 4, 0, 0, 0, 0, loc)

	policy := slotsPolicy()
	policy.MaxConcurrentBookings = 1

	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		dayAppointment("BK-salon-farah-20261004-001", "10:00", "10:45"),
	}}
	uc := newSlotsUseCase(repo, policy, now)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:  "salon-farah",
		ServiceID: "haircut",
		Date:      date,
	})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.NotEqual(t, "10:00", s.StartTime.String())
		assert.NotEqual(t, "10:30", s.StartTime.String())
		assert.Positive(t, s.AvailableSpots)
	}
}

func TestExecute_SameDayPastSlotsAreFiltered(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	// Запрос на сегодня в 11:10 - слоты 10:00, 10:30 и 11:00 уже не предлагаем
	now := time.Date(2026, 10, 4, 11, 10, 0, 0, loc)
	date := time.Date(2026, 10, 4, 0, 0, 0, 0, loc)

	uc := newSlotsUseCase(&fakeAppointmentRepo{}, slotsPolicy(), now)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:  "salon-farah",
		ServiceID: "haircut",
		Date:      date,
	})
	require.NoError(t, err)

	starts := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime.String())
	}
	assert.Equal(t, []string{"11:30", "12:00"}, starts)
}

func TestExecute_ClosedDayReturnsEmptyListWithoutRepoCall(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, loc)

	tests := []struct {
		name string
		date time.Time
	}{
		{name: "disabled weekday", date: time.Date(2026, 10, 9, 0, 0, 0, 0, loc)}, // пятница
		{name: "blocked date", date: time.Date(2026, 10, 11, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{}
			uc := newSlotsUseCase(repo, slotsPolicy(), now)

			resp, err := uc.Execute(context.Background(), &Request{
				TenantID:  "salon-farah",
				ServiceID: "haircut",
				Date:      tt.date,
			})
			require.NoError(t, err)
			assert.Empty(t, resp.Slots)
			assert.Zero(t, repo.calls)
		})
	}
}

func TestExecute_SingleSnapshotPerComputation(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, loc)
	date := time.Date(2026, 10, 4, 0, 0, 0, 0, loc)

	repo := &fakeAppointmentRepo{}
	uc := newSlotsUseCase(repo, slotsPolicy(), now)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID:  "salon-farah",
		ServiceID: "haircut",
		Date:      date,
	})
	require.NoError(t, err)

	require.Equal(t, 1, repo.calls)
	filter := repo.filters[0]
	assert.Equal(t, "salon-farah", filter.TenantID)
	require.NotNil(t, filter.Date)
	assert.True(t, filter.Date.Equal(date))
	assert.False(t, filter.IncludeInactive)
	assert.Nil(t, filter.Status)
}

func TestExecute_Errors(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	now := time.Date(2026, 10, 1, 9, 0, 0, 0, loc)
	futureDate := time.Date(2026, 10, 4, 0, 0, 0, 0, loc)

	t.Run("unknown service", func(t *testing.T) {
		uc := newSlotsUseCase(&fakeAppointmentRepo{}, slotsPolicy(), now)
		_, err := uc.Execute(context.Background(), &Request{TenantID: "salon-farah", ServiceID: "massage", Date: futureDate})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("inactive service", func(t *testing.T) {
		uc := newSlotsUseCase(&fakeAppointmentRepo{}, slotsPolicy(), now)
		_, err := uc.Execute(context.Background(), &Request{TenantID: "salon-farah", ServiceID: "bridal-package", Date: futureDate})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("date in the past", func(t *testing.T) {
		uc := newSlotsUseCase(&fakeAppointmentRepo{}, slotsPolicy(), now)
		past := time.Date(2026, 9, 30, 0, 0, 0, 0, loc)
		_, err := uc.Execute(context.Background(), &Request{TenantID: "salon-farah", ServiceID: "haircut", Date: past})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("date beyond advance window", func(t *testing.T) {
		uc := newSlotsUseCase(&fakeAppointmentRepo{}, slotsPolicy(), now)
		farAway := time.Date(2026, 12, 1, 0, 0, 0, 0, loc)
		_, err := uc.Execute(context.Background(), &Request{TenantID: "salon-farah", ServiceID: "haircut", Date: farAway})
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("tenant not found", func(t *testing.T) {
		provider := &fakePolicyProvider{err: tenantcfg.ErrTenantNotFound}
		uc := NewUseCase(&fakeAppointmentRepo{}, provider, &fakeTimeProvider{now: now}, testLogger{})
		_, err := uc.Execute(context.Background(), &Request{TenantID: "ghost", ServiceID: "haircut", Date: futureDate})
		assert.ErrorIs(t, err, ErrTenantNotFound)
	})

	t.Run("broken tenant config", func(t *testing.T) {
		provider := &fakePolicyProvider{err: tenantcfg.ErrInvalidPolicy}
		uc := NewUseCase(&fakeAppointmentRepo{}, provider, &fakeTimeProvider{now: now}, testLogger{})
		_, err := uc.Execute(context.Background(), &Request{TenantID: "salon-farah", ServiceID: "haircut", Date: futureDate})
		assert.ErrorIs(t, err, ErrTenantConfig)
	})

	t.Run("missing request fields", func(t *testing.T) {
		uc := newSlotsUseCase(&fakeAppointmentRepo{}, slotsPolicy(), now)
		_, err := uc.Execute(context.Background(), &Request{TenantID: "", ServiceID: "haircut", Date: futureDate})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
