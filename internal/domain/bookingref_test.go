package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBookingRef(t *testing.T) {
	date := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "BK-salon-farah-20251010-001", FormatBookingRef("salon-farah", date, 1))
	assert.Equal(t, "BK-salon-farah-20251010-042", FormatBookingRef("salon-farah", date, 42))
	assert.Equal(t, "BK-salon-farah-20251010-999", FormatBookingRef("salon-farah", date, 999))

	// После 999 номер расширяется, не обрезается
	assert.Equal(t, "BK-salon-farah-20251010-1000", FormatBookingRef("salon-farah", date, 1000))
	assert.Equal(t, "BK-salon-farah-20251010-12345", FormatBookingRef("salon-farah", date, 12345))
}

func TestBookingRefDayPrefix(t *testing.T) {
	date := time.Date(2026, 1, 5, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "BK-glow-spa-20260105", BookingRefDayPrefix("glow-spa", date))
}

func TestSequenceFromRef(t *testing.T) {
	prefix := "BK-salon-farah-20251010"

	tests := []struct {
		name   string
		ref    string
		want   int
		wantOK bool
	}{
		{name: "padded sequence", ref: "BK-salon-farah-20251010-001", want: 1, wantOK: true},
		{name: "wide sequence", ref: "BK-salon-farah-20251010-1000", want: 1000, wantOK: true},
		{name: "other day", ref: "BK-salon-farah-20251011-001", wantOK: false},
		{name: "other tenant", ref: "BK-glow-spa-20251010-001", wantOK: false},
		{name: "no sequence", ref: "BK-salon-farah-20251010-", wantOK: false},
		{name: "non numeric", ref: "BK-salon-farah-20251010-abc", wantOK: false},
		{name: "zero sequence", ref: "BK-salon-farah-20251010-000", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, ok := SequenceFromRef(tt.ref, prefix)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, seq)
			}
		})
	}
}
