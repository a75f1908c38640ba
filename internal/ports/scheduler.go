package ports

import "time"

// Cancel stops a scheduled callback. It is safe to call more than once and after the callback ran.
type Cancel func()

// Scheduler runs fn once after d. fn must never run synchronously inside After, since callers
// schedule while holding locks that fn takes.
type Scheduler interface {
	After(d time.Duration, fn func()) Cancel
}
