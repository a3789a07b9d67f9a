package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	appointmentRepo "github.com/KaayaanAi/salon-receptionist/internal/infra/storage/appointment"
	"github.com/KaayaanAi/salon-receptionist/internal/infra/tenantcfg"
	"github.com/KaayaanAi/salon-receptionist/internal/rules"
	"github.com/KaayaanAi/salon-receptionist/internal/service/bookings/models"
	"github.com/KaayaanAi/salon-receptionist/pkg/ptr"
)

type fakeRepo struct {
	appointment  *domain.Appointment
	appointments []*domain.Appointment

	cancelCalls  int
	cancelReason string
	lastFilter   domain.TenantBookingsFilter
	lastPhone    string
	lastSince    time.Time
}

func (f *fakeRepo) GetByRef(_ context.Context, _, _ string) (*domain.Appointment, error) {
	if f.appointment == nil {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return f.appointment, nil
}

func (f *fakeRepo) GetByTenantWithFilter(_ context.Context, filter domain.TenantBookingsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	return f.appointments, nil
}

func (f *fakeRepo) GetByPhoneSince(_ context.Context, _, phone string, since time.Time) ([]*domain.Appointment, error) {
	f.lastPhone = phone
	f.lastSince = since
	return f.appointments, nil
}

func (f *fakeRepo) Cancel(_ context.Context, _, _ string, reason string) error {
	f.cancelCalls++
	f.cancelReason = reason

	f.appointment.Status = domain.StatusCancelled
	if reason != "" {
		f.appointment.CancellationReason = &reason
	}
	cancelledAt := time.Now()
	f.appointment.CancelledAt = &cancelledAt
	return nil
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

func servicePolicy() *domain.TenantPolicy {
	return &domain.TenantPolicy{
		TenantID:          "salon-farah",
		Country:           "KW",
		CancelNoticeHours: 24,
	}
}

func confirmedAppointment(loc *time.Location) *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		BookingRef:      "BK-salon-farah-20261005-001",
		TenantID:        "salon-farah",
		CustomerName:    "Noura Al-Sabah",
		CustomerPhone:   "+96550123456",
		ServiceID:       "haircut",
		ServiceName:     "Haircut & Styling",
		Date:            time.Date(2026, 10, 5, 0, 0, 0, 0, loc),
		StartTime:       "11:00",
		EndTime:         "11:45",
		DurationMinutes: 45,
		Status:          domain.StatusConfirmed,
	}
}

func newBookingsService(repo *fakeRepo, provider *fakePolicyProvider, now time.Time) *Service {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	return NewService(repo, provider, rules.NewEngine(loc), &fakeTimeProvider{now: now}, testLogger{})
}

func TestGetByRef(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, loc)

	t.Run("found", func(t *testing.T) {
		repo := &fakeRepo{appointment: confirmedAppointment(loc)}
		svc := newBookingsService(repo, &fakePolicyProvider{policy: servicePolicy()}, now)

		resp, err := svc.GetByRef(context.Background(), "salon-farah", "BK-salon-farah-20261005-001")
		require.NoError(t, err)
		assert.Equal(t, "BK-salon-farah-20261005-001", resp.BookingRef)
		assert.Equal(t, "2026-10-05", resp.Date)
		assert.Equal(t, "11:00", resp.StartTime)
	})

	t.Run("not found", func(t *testing.T) {
		svc := newBookingsService(&fakeRepo{}, &fakePolicyProvider{policy: servicePolicy()}, now)

		_, err := svc.GetByRef(context.Background(), "salon-farah", "BK-salon-farah-20261005-099")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancel(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")

	t.Run("with enough notice", func(t *testing.T) {
		now := time.Date(2026, 10, 3, 11, 0, 0, 0, loc) // за 48 часов
		repo := &fakeRepo{appointment: confirmedAppointment(loc)}
		svc := newBookingsService(repo, &fakePolicyProvider{policy: servicePolicy()}, now)

		resp, err := svc.Cancel(context.Background(), "salon-farah", "BK-salon-farah-20261005-001",
			&models.CancelBookingRequest{CancellationReason: "travel plans changed"})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "travel plans changed", *resp.CancellationReason)
		assert.NotNil(t, resp.CancelledAt)
		assert.Equal(t, 1, repo.cancelCalls)
	})

	t.Run("already cancelled", func(t *testing.T) {
		now := time.Date(2026, 10, 3, 11, 0, 0, 0, loc)
		appt := confirmedAppointment(loc)
		appt.Status = domain.StatusCancelled
		repo := &fakeRepo{appointment: appt}
		svc := newBookingsService(repo, &fakePolicyProvider{policy: servicePolicy()}, now)

		_, err := svc.Cancel(context.Background(), "salon-farah", appt.BookingRef, &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrAlreadyCancelled)
		assert.Zero(t, repo.cancelCalls)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		now := time.Date(2026, 10, 3, 11, 0, 0, 0, loc)
		appt := confirmedAppointment(loc)
		appt.Status = domain.StatusCompleted
		repo := &fakeRepo{appointment: appt}
		svc := newBookingsService(repo, &fakePolicyProvider{policy: servicePolicy()}, now)

		_, err := svc.Cancel(context.Background(), "salon-farah", appt.BookingRef, &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("already started", func(t *testing.T) {
		now := time.Date(2026, 10, 5, 11, 30, 0, 0, loc)
		repo := &fakeRepo{appointment: confirmedAppointment(loc)}
		svc := newBookingsService(repo, &fakePolicyProvider{policy: servicePolicy()}, now)

		_, err := svc.Cancel(context.Background(), "salon-farah", "BK-salon-farah-20261005-001", &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrAlreadyPast)
		assert.Zero(t, repo.cancelCalls)
	})

	t.Run("insufficient notice", func(t *testing.T) {
		now := time.Date(2026, 10, 5, 1, 0, 0, 0, loc) // за 10 часов
		repo := &fakeRepo{appointment: confirmedAppointment(loc)}
		svc := newBookingsService(repo, &fakePolicyProvider{policy: servicePolicy()}, now)

		_, err := svc.Cancel(context.Background(), "salon-farah", "BK-salon-farah-20261005-001", &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrInsufficientNotice)
		assert.Zero(t, repo.cancelCalls)
	})

	t.Run("booking not found", func(t *testing.T) {
		now := time.Date(2026, 10, 3, 11, 0, 0, 0, loc)
		svc := newBookingsService(&fakeRepo{}, &fakePolicyProvider{policy: servicePolicy()}, now)

		_, err := svc.Cancel(context.Background(), "salon-farah", "BK-salon-farah-20261005-099", &models.CancelBookingRequest{})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetTenantBookings(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, loc)

	t.Run("passes filter through", func(t *testing.T) {
		repo := &fakeRepo{appointments: []*domain.Appointment{confirmedAppointment(loc)}}
		svc := newBookingsService(repo, &fakePolicyProvider{policy: servicePolicy()}, now)

		resp, err := svc.GetTenantBookings(context.Background(), &models.GetTenantBookingsRequest{
			TenantID:        "salon-farah",
			Date:            ptr.Ptr("2026-10-05"),
			Status:          ptr.Ptr("confirmed"),
			IncludeInactive: true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)

		assert.Equal(t, "salon-farah", repo.lastFilter.TenantID)
		require.NotNil(t, repo.lastFilter.Date)
		assert.Equal(t, "2026-10-05", repo.lastFilter.Date.Format(domain.DateFormat))
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
		assert.True(t, repo.lastFilter.IncludeInactive)
	})

	t.Run("invalid date filter", func(t *testing.T) {
		svc := newBookingsService(&fakeRepo{}, &fakePolicyProvider{policy: servicePolicy()}, now)

		_, err := svc.GetTenantBookings(context.Background(), &models.GetTenantBookingsRequest{
			TenantID: "salon-farah",
			Date:     ptr.Ptr("05/10/2026"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		svc := newBookingsService(&fakeRepo{}, &fakePolicyProvider{policy: servicePolicy()}, now)

		_, err := svc.GetTenantBookings(context.Background(), &models.GetTenantBookingsRequest{
			TenantID: "salon-farah",
			Status:   ptr.Ptr("rescheduled"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetCustomerBookings(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kuwait")
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, loc)

	t.Run("normalizes phone before lookup", func(t *testing.T) {
		repo := &fakeRepo{appointments: []*domain.Appointment{confirmedAppointment(loc)}}
		svc := newBookingsService(repo, &fakePolicyProvider{policy: servicePolicy()}, now)

		resp, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			TenantID: "salon-farah",
			Phone:    "5012 3456", // локальный формат, страна из политики
		})
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)

		assert.Equal(t, "+96550123456", repo.lastPhone)
		assert.True(t, repo.lastSince.IsZero())
	})

	t.Run("since lower bound", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := newBookingsService(repo, &fakePolicyProvider{policy: servicePolicy()}, now)

		_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			TenantID: "salon-farah",
			Phone:    "+96550123456",
			Since:    ptr.Ptr("2026-01-01"),
		})
		require.NoError(t, err)
		assert.Equal(t, "2026-01-01", repo.lastSince.Format(domain.DateFormat))
	})

	t.Run("invalid phone", func(t *testing.T) {
		svc := newBookingsService(&fakeRepo{}, &fakePolicyProvider{policy: servicePolicy()}, now)

		_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			TenantID: "salon-farah",
			Phone:    "123",
		})
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("tenant not found", func(t *testing.T) {
		svc := newBookingsService(&fakeRepo{}, &fakePolicyProvider{err: tenantcfg.ErrTenantNotFound}, now)

		_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
			TenantID: "ghost",
			Phone:    "+96550123456",
		})
		assert.ErrorIs(t, err, ErrTenantNotFound)
	})
}
