package util

import (
	"github.com/buildbarn/bb-storage/pkg/clock"
	"github.com/buildbarn/bb-storage/pkg/util"
	"golang.org/x/time/rate"
)

type rateLimitingErrorLogger struct {
	base    util.ErrorLogger
	limiter *rate.Limiter
	clock   clock.Clock
}

// NewRateLimitingErrorLogger creates a decorator for ErrorLogger that
// drops messages exceeding a token bucket rate. This can be used for
// error conditions that an attacker, or simply a corrupted layer, can
// trigger at arbitrary frequency, so that a flood of identical errors
// does not drown out the rest of the log.
func NewRateLimitingErrorLogger(base util.ErrorLogger, limiter *rate.Limiter, clock clock.Clock) util.ErrorLogger {
	return &rateLimitingErrorLogger{
		base:    base,
		limiter: limiter,
		clock:   clock,
	}
}

func (el *rateLimitingErrorLogger) Log(err error) {
	if el.limiter.AllowN(el.clock.Now(), 1) {
		el.base.Log(err)
	}
}
