package logging

import (
	"time"

	"golang.org/x/time/rate"
)

// Throttle gates a log line that may fire every frame. Suppressed calls are
// counted and reported with the next allowed one.
type Throttle struct {
	limiter    *rate.Limiter
	suppressed int
}

func NewThrottle(every time.Duration, burst int) *Throttle {
	if burst < 1 {
		burst = 1
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Every(every), burst)}
}

// AllowAt reports whether a line may be written at now, and how many calls
// were dropped since the last allowed one.
func (t *Throttle) AllowAt(now time.Time) (bool, int) {
	if t == nil {
		return true, 0
	}
	if !t.limiter.AllowN(now, 1) {
		t.suppressed++
		return false, 0
	}
	dropped := t.suppressed
	t.suppressed = 0
	return true, dropped
}
