// Package clock предоставляет провайдер времени, привязанный к таймзоне
// салонов. Все вычисления расписания идут в одной таймзоне независимо от
// локали сервера.
package clock

import "time"

// Zoned провайдер текущего времени в фиксированной таймзоне
type Zoned struct {
	loc *time.Location
}

// NewZoned создает провайдер для указанной таймзоны
func NewZoned(loc *time.Location) *Zoned {
	return &Zoned{loc: loc}
}

// Now возвращает текущее время в таймзоне провайдера
func (z *Zoned) Now() time.Time {
	return time.Now().In(z.loc)
}

// Location возвращает таймзону провайдера
func (z *Zoned) Location() *time.Location {
	return z.loc
}
