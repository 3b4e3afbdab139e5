// Package clock абстрагирует текущее время, чтобы TTL кэша и метки
// очереди можно было проверять в тестах без sleep.
package clock

import (
	"sync"
	"time"
)

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// System возвращает реальное время
type System struct{}

// Now implements Clock.
func (System) Now() time.Time { return time.Now() }

// Fake управляемые часы для тестов
type Fake struct {
	now time.Time
	mu  sync.Mutex
}

// NewFake создает часы, остановленные в момент t
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

// Now implements Clock.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance сдвигает часы вперед на d
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set устанавливает текущее время
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}
