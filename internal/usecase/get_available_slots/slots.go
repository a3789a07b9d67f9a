package get_available_slots

import (
	"time"

	"github.com/KaayaanAi/salon-receptionist/internal/domain"
	"github.com/KaayaanAi/salon-receptionist/pkg/types"
)

// generateCandidateTimes генерирует времена начала слотов на день.
// Кандидаты идут от открытия с шагом granularity; слот попадает в список,
// только если услуга целиком помещается до закрытия (конец ровно в закрытие допустим).
func generateCandidateTimes(
	hours domain.WorkingHours,
	granularityMinutes int,
	serviceDurationMinutes int,
	requestDate time.Time,
	now time.Time,
) ([]types.TimeString, error) {
	if !hours.Enabled {
		return []types.TimeString{}, nil
	}

	candidates := make([]types.TimeString, 0)
	current := hours.Open

	for current.IsBefore(hours.Close) {
		end, err := current.AddMinutes(serviceDurationMinutes)
		if err != nil {
			// Услуга не помещается до полуночи
			break
		}
		if end.IsAfter(hours.Close) {
			break
		}

		candidates = append(candidates, current)
		current, err = current.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
	}

	// На сегодня уже начавшиеся слоты не предлагаем
	if isSameDay(requestDate, now) {
		nowTime := types.NewTimeString(now)
		filtered := make([]types.TimeString, 0, len(candidates))
		for _, c := range candidates {
			if !c.IsBefore(nowTime) {
				filtered = append(filtered, c)
			}
		}
		return filtered, nil
	}

	return candidates, nil
}

// buildAvailableSlots вычисляет остаточную вместимость каждого кандидата по одному
// снимку записей дня и отбрасывает полностью занятые слоты
func buildAvailableSlots(
	candidates []types.TimeString,
	serviceDurationMinutes int,
	appointments []*domain.Appointment,
	maxConcurrentBookings int,
) ([]domain.AvailableSlot, error) {
	result := make([]domain.AvailableSlot, 0, len(candidates))

	for _, start := range candidates {
		overlapping, err := domain.CountOverlapping(appointments, start, serviceDurationMinutes, "")
		if err != nil {
			return nil, err
		}

		available := maxConcurrentBookings - overlapping
		if available <= 0 {
			continue
		}

		result = append(result, domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: serviceDurationMinutes,
			AvailableSpots:  available,
			TotalSpots:      maxConcurrentBookings,
		})
	}

	return result, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
