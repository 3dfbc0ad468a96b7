package classify

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/baitcheck/internal/model"
)

// progressEmitter throttles TrainingProgress callbacks so tight training
// loops don't flood the caller. Stage boundaries (0% and >=100%) always
// fire; intermediate checkpoints are rate-limited.
type progressEmitter struct {
	fn      ProgressFunc
	limiter *rate.Limiter
	start   time.Time
}

func newProgressEmitter(fn ProgressFunc, perSecond float64) *progressEmitter {
	if perSecond <= 0 {
		perSecond = 10
	}
	return &progressEmitter{
		fn:      fn,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		start:   time.Now(),
	}
}

func (p *progressEmitter) emit(stage string, pct float64, msg string) {
	if p == nil || p.fn == nil {
		return
	}
	if pct > 0 && pct < 100 && !p.limiter.Allow() {
		return
	}
	p.fn(model.TrainingProgress{
		Stage:    stage,
		Progress: pct,
		Message:  msg,
		Elapsed:  time.Since(p.start),
	})
}
