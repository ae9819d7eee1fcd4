package game

import "time"

// Ticker is a periodic timer that can be re-armed with a new interval.
type Ticker interface {
	C() <-chan time.Time
	Reset(d time.Duration)
	Stop()
}

// NewTimeTicker returns a Ticker backed by time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return &timeTicker{ticker: time.NewTicker(d)}
}

type timeTicker struct {
	ticker *time.Ticker
}

func (t *timeTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *timeTicker) Reset(d time.Duration) {
	t.ticker.Reset(d)
}

func (t *timeTicker) Stop() {
	t.ticker.Stop()
}
