package domain

import "github.com/KaayaanAi/salon-receptionist/pkg/types"

// AvailableSlot represents a time slot with free capacity
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailableSpots  int // remaining capacity for this window
	TotalSpots      int // tenant's concurrent-booking limit
}

// IsFull returns true if the slot has no available spots
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// IsFullyAvailable returns true if all spots are available
func (s *AvailableSlot) IsFullyAvailable() bool {
	return s.AvailableSpots == s.TotalSpots
}

// CountOverlapping подсчитывает активные записи, пересекающиеся с окном
// [start, start+durationMinutes). Это единственная реализация проверки
// пересечений в системе - выдача слотов, создание и обновление записи
// считают занятость через нее.
//
// Интервалы полуоткрытые: [a1,a2) и [b1,b2) пересекаются только при
// a1 < b2 И b1 < a2. Записи, граничащие встык (конец одной равен началу
// другой), не конфликтуют.
//
// excludeRef исключает из подсчета запись с указанным booking ref -
// при обновлении запись не должна конфликтовать сама с собой.
func CountOverlapping(appointments []*Appointment, start types.TimeString, durationMinutes int, excludeRef string) (int, error) {
	windowEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return 0, err
	}

	count := 0

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if excludeRef != "" && appt.BookingRef == excludeRef {
			continue
		}

		apptEnd, err := appt.StartTime.AddMinutes(appt.DurationMinutes)
		if err != nil {
			// Запись с некорректным временем не может занимать слот
			continue
		}

		if appt.StartTime.IsBefore(windowEnd) && apptEnd.IsAfter(start) {
			count++
		}
	}

	return count, nil
}
