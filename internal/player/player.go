// Package player provides asynchronous, mutually exclusive song playback.
//
// The command loop only ever calls [Player.Play] and [Player.Stop]; the
// actual audio pipeline sits behind the [Output] interface so the server can
// run without sound hardware.
package player

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dunelark/tunecast/internal/models"
	"github.com/dunelark/tunecast/internal/shared"
)

// Player triggers background playback. Play returns immediately; Stop halts
// the active playback and reports [shared.ErrNotPlaying] when there is none.
type Player interface {
	Play(song *models.Song)
	Stop() error
}

// Output streams one song until it ends naturally or stop is closed.
type Output interface {
	Stream(song *models.Song, stop <-chan struct{}) error
}

// Controller implements [Player] with one active playback at a time.
//
// Each Play spawns a goroutine that waits for the current playback to finish
// before streaming; there is no queue beyond that mutual exclusion, so a
// burst of play requests drains in whatever order the runtime hands out the
// lock.
type Controller struct {
	output Output
	logger *log.Logger

	playMu sync.Mutex // serializes playback goroutines

	mu      sync.Mutex
	current chan struct{} // stop signal of the active playback, nil when idle
}

// NewController creates a Controller streaming to output.
func NewController(output Output, logger *log.Logger) *Controller {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Controller{output: output, logger: logger}
}

// Play schedules song for playback and returns immediately. The playback
// goroutine blocks behind any active playback.
func (c *Controller) Play(song *models.Song) {
	go func() {
		c.playMu.Lock()
		defer c.playMu.Unlock()

		stop := make(chan struct{})
		c.mu.Lock()
		c.current = stop
		c.mu.Unlock()

		c.logger.Info("playing song", "song", song.FullName())
		if err := c.output.Stream(song, stop); err != nil {
			c.logger.Error("playback failed", "song", song.FullName(), "err", err)
		}

		c.mu.Lock()
		if c.current == stop {
			c.current = nil
		}
		c.mu.Unlock()
	}()
}

// Stop halts the active playback. Calling Stop with nothing playing is not a
// fault: it returns [shared.ErrNotPlaying] and the command layer turns that
// into an informative reply.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return shared.ErrNotPlaying
	}
	close(c.current)
	c.current = nil
	return nil
}

// LogOutput is the default [Output]: it holds the playback slot for a fixed
// duration per song and logs instead of touching audio hardware.
type LogOutput struct {
	Logger   *log.Logger
	Duration time.Duration
}

// Stream waits out the song's slot or the stop signal.
func (o LogOutput) Stream(song *models.Song, stop <-chan struct{}) error {
	duration := o.Duration
	if duration <= 0 {
		duration = 30 * time.Second
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-stop:
		if o.Logger != nil {
			o.Logger.Info("playback stopped", "song", song.FullName())
		}
	case <-timer.C:
		if o.Logger != nil {
			o.Logger.Info("playback finished", "song", song.FullName())
		}
	}
	return nil
}
