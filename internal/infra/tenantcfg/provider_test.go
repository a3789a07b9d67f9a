package tenantcfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

const validPolicyTOML = `
name = "Salon Farah"
country = "KW"

slot_granularity_minutes = 30
max_concurrent_bookings = 3
advance_booking_days = 30
cancel_notice_hours = 24

blocked_dates = ["2026-09-23"]

[working_hours.sunday]
enabled = true
open = "10:00"
close = "21:00"

[working_hours.friday]
enabled = false

[[services]]
id = "haircut"
name = "Haircut & Styling"
duration_minutes = 45
price = 12.0
active = true

[[services]]
id = "bridal-package"
name = "Bridal Package"
duration_minutes = 240
price = 150.0
active = false
`

func writePolicyFile(t *testing.T, dir, tenantID, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, tenantID+".toml"), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestProvider_GetPolicy(t *testing.T) {
	dir := t.TempDir()
	writePolicyFile(t, dir, "salon-farah", validPolicyTOML)

	provider := NewProvider(dir, noopLogger{})

	policy, err := provider.GetPolicy("salon-farah")
	require.NoError(t, err)

	assert.Equal(t, "salon-farah", policy.TenantID)
	assert.Equal(t, "Salon Farah", policy.Name)
	assert.Equal(t, "KW", policy.Country)
	assert.Equal(t, 30, policy.SlotGranularityMinutes)
	assert.Equal(t, 3, policy.MaxConcurrentBookings)
	assert.Equal(t, 24, policy.CancelNoticeHours)
	assert.Contains(t, policy.BlockedDates, "2026-09-23")
	assert.Len(t, policy.Services, 2)

	sunday := policy.WorkingHours[time.Sunday]
	assert.True(t, sunday.Enabled)
	assert.Equal(t, "10:00", sunday.Open.String())
	assert.Equal(t, "21:00", sunday.Close.String())
	assert.False(t, policy.WorkingHours[time.Friday].Enabled)
}

func TestProvider_GetPolicy_CachesLoadedPolicy(t *testing.T) {
	dir := t.TempDir()
	writePolicyFile(t, dir, "salon-farah", validPolicyTOML)

	provider := NewProvider(dir, noopLogger{})

	first, err := provider.GetPolicy("salon-farah")
	require.NoError(t, err)

	// Удаление файла не мешает повторным чтениям - политика уже в кеше
	require.NoError(t, os.Remove(filepath.Join(dir, "salon-farah.toml")))

	second, err := provider.GetPolicy("salon-farah")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestProvider_GetPolicy_TenantNotFound(t *testing.T) {
	provider := NewProvider(t.TempDir(), noopLogger{})

	_, err := provider.GetPolicy("no-such-salon")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestProvider_GetPolicy_InvalidTenantID(t *testing.T) {
	provider := NewProvider(t.TempDir(), noopLogger{})

	for _, id := range []string{"", "X", "Salon-Farah", "../etc/passwd", "salon_farah"} {
		_, err := provider.GetPolicy(id)
		assert.ErrorIs(t, err, ErrInvalidTenantID, "tenant id %q", id)
	}
}

func TestProvider_Reload_KeepsOldVersionOnFailure(t *testing.T) {
	dir := t.TempDir()
	writePolicyFile(t, dir, "salon-farah", validPolicyTOML)

	provider := NewProvider(dir, noopLogger{})

	original, err := provider.GetPolicy("salon-farah")
	require.NoError(t, err)

	// Ломаем файл и пробуем перезагрузить
	writePolicyFile(t, dir, "salon-farah", "country = \n")

	_, err = provider.Reload("salon-farah")
	require.ErrorIs(t, err, ErrInvalidPolicy)

	// Кеш не тронут, читатели продолжают видеть рабочую версию
	cached, err := provider.GetPolicy("salon-farah")
	require.NoError(t, err)
	assert.Same(t, original, cached)
}

func TestProvider_Reload_PicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	writePolicyFile(t, dir, "salon-farah", validPolicyTOML)

	provider := NewProvider(dir, noopLogger{})

	original, err := provider.GetPolicy("salon-farah")
	require.NoError(t, err)
	require.Equal(t, 3, original.MaxConcurrentBookings)

	updated := `
name = "Salon Farah"
country = "KW"
max_concurrent_bookings = 5

[working_hours.sunday]
enabled = true
open = "09:00"
close = "20:00"

[[services]]
id = "haircut"
name = "Haircut"
duration_minutes = 45
price = 12.0
active = true
`
	writePolicyFile(t, dir, "salon-farah", updated)

	reloaded, err := provider.Reload("salon-farah")
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.MaxConcurrentBookings)

	cached, err := provider.GetPolicy("salon-farah")
	require.NoError(t, err)
	assert.Same(t, reloaded, cached)
}

func TestProvider_Invalidate(t *testing.T) {
	dir := t.TempDir()
	writePolicyFile(t, dir, "salon-farah", validPolicyTOML)

	provider := NewProvider(dir, noopLogger{})

	_, err := provider.GetPolicy("salon-farah")
	require.NoError(t, err)

	provider.Invalidate("salon-farah")
	require.NoError(t, os.Remove(filepath.Join(dir, "salon-farah.toml")))

	_, err = provider.GetPolicy("salon-farah")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestBuildPolicy_Defaults(t *testing.T) {
	policy, err := buildPolicy("salon-farah", &filePolicy{
		Name:    "Salon Farah",
		Country: "KW",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSlotGranularityMinutes, policy.SlotGranularityMinutes)
	assert.Equal(t, domain.DefaultMaxConcurrentBookings, policy.MaxConcurrentBookings)
	assert.Equal(t, domain.DefaultCancelNoticeHours, policy.CancelNoticeHours)
}

func TestBuildPolicy_Rejections(t *testing.T) {
	base := func() *filePolicy {
		return &filePolicy{Name: "Salon", Country: "KW"}
	}

	tests := []struct {
		name   string
		mutate func(*filePolicy)
	}{
		{name: "granularity out of range", mutate: func(fp *filePolicy) { fp.SlotGranularityMinutes = 3 }},
		{name: "capacity out of range", mutate: func(fp *filePolicy) { fp.MaxConcurrentBookings = 101 }},
		{name: "negative advance window", mutate: func(fp *filePolicy) { fp.AdvanceBookingDays = -1 }},
		{name: "missing country", mutate: func(fp *filePolicy) { fp.Country = "" }},
		{name: "unknown weekday", mutate: func(fp *filePolicy) {
			fp.WorkingHours = map[string]fileWorkingHours{"someday": {Enabled: true, Open: "10:00", Close: "21:00"}}
		}},
		{name: "open after close", mutate: func(fp *filePolicy) {
			fp.WorkingHours = map[string]fileWorkingHours{"sunday": {Enabled: true, Open: "21:00", Close: "10:00"}}
		}},
		{name: "malformed blocked date", mutate: func(fp *filePolicy) { fp.BlockedDates = []string{"23/09/2026"} }},
		{name: "service without id", mutate: func(fp *filePolicy) {
			fp.Services = []fileService{{Name: "Haircut", DurationMinutes: 45}}
		}},
		{name: "service with zero duration", mutate: func(fp *filePolicy) {
			fp.Services = []fileService{{ID: "haircut", Name: "Haircut"}}
		}},
		{name: "duplicate service id", mutate: func(fp *filePolicy) {
			fp.Services = []fileService{
				{ID: "haircut", Name: "Haircut", DurationMinutes: 45},
				{ID: "haircut", Name: "Haircut Deluxe", DurationMinutes: 60},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := base()
			tt.mutate(fp)

			_, err := buildPolicy("salon-farah", fp)
			assert.ErrorIs(t, err, ErrInvalidPolicy)
		})
	}
}
