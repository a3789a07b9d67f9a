package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatBookingRef formats a booking reference: BK-{tenantId}-{YYYYMMDD}-{seq}.
// The sequence is zero-padded to three digits and widens naturally for
// sequences of 1000 and above.
func FormatBookingRef(tenantID string, date time.Time, seq int) string {
	return fmt.Sprintf("%s-%0*d", BookingRefDayPrefix(tenantID, date), BookingRefSeqWidth, seq)
}

// BookingRefDayPrefix returns the shared prefix of all references minted for
// one tenant and calendar day: "BK-{tenantId}-{YYYYMMDD}".
func BookingRefDayPrefix(tenantID string, date time.Time) string {
	return fmt.Sprintf("%s-%s-%s", BookingRefPrefix, tenantID, date.Format(BookingRefDateFmt))
}

// SequenceFromRef extracts the numeric sequence from a booking reference
// sharing the given day prefix. Returns false for foreign or malformed refs.
func SequenceFromRef(ref string, dayPrefix string) (int, bool) {
	suffix, found := strings.CutPrefix(ref, dayPrefix+"-")
	if !found {
		return 0, false
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 1 {
		return 0, false
	}
	return seq, true
}
