package app

import (
	"time"

	"tienlen/internal/ports"
)

// TimerScheduler runs callbacks on runtime timers. Callbacks fire on their own goroutine.
type TimerScheduler struct{}

func (TimerScheduler) After(d time.Duration, fn func()) ports.Cancel {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
