package server

import (
	"github.com/dunelark/tunecast/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultCommandsPerSecond = 20
	defaultBurst             = 40
)

// newCommandLimiter builds the per-connection limiter that smooths command
// bursts. Zero config values fall back to defaults; the protocol stays
// synchronous either way, the limiter only delays pathological clients.
func newCommandLimiter(limits shared.LimitsConfig) *rate.Limiter {
	cps := limits.CommandsPerSecond
	if cps <= 0 {
		cps = defaultCommandsPerSecond
	}
	burst := limits.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	return rate.NewLimiter(rate.Limit(cps), burst)
}
