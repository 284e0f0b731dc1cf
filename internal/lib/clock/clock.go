// Package clock предоставляет инжектируемый источник времени,
// чтобы сканирование платежей можно было тестировать на фиксированных датах.
package clock

import "time"

// Clock описывает источник текущего времени.
type Clock interface {
	Now() time.Time
}

// System возвращает Clock, читающий системное время.
func System() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Fixed возвращает Clock, всегда отдающий одно и то же время.
// Используется в тестах.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
