package engine

import "time"

// Engine пересчитывает производные поля и проверяет бизнес-инварианты.
// Все методы работают внутри транзакции, которую открывает репозиторий:
// пересчёт и валидация завершаются до фиксации изменившей их записи.
type Engine struct {
	// Источник текущего времени, подменяется в тестах
	Now func() time.Time
}

func New() *Engine {
	return &Engine{Now: time.Now}
}

// Сравнение дат без учёта времени суток
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func maxDate(dates []time.Time) *time.Time {
	if len(dates) == 0 {
		return nil
	}
	max := dates[0]
	for _, d := range dates[1:] {
		if d.After(max) {
			max = d
		}
	}
	return &max
}

func uniq(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
