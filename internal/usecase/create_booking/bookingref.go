package create_booking

import (
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
)

// nextBookingRef вычисляет следующий номер записи для салона на дату.
// Номера последовательны в пределах дня: берем максимальную из уже выданных
// последовательностей и прибавляем единицу. Выполняется внутри сериализуемой
// транзакции; уникальный индекс по (tenant_id, booking_ref) страхует от гонки.
func nextBookingRef(existingRefs []string, tenantID string, date time.Time) string {
	dayPrefix := domain.BookingRefDayPrefix(tenantID, date)

	maxSeq := 0
	for _, ref := range existingRefs {
		seq, ok := domain.SequenceFromRef(ref, dayPrefix)
		if ok && seq > maxSeq {
			maxSeq = seq
		}
	}

	return domain.FormatBookingRef(tenantID, date, maxSeq+1)
}
