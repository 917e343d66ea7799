package player

import (
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dunelark/tunecast/internal/models"
	"github.com/dunelark/tunecast/internal/shared"
)

// blockingOutput streams until stopped and counts concurrently active streams.
type blockingOutput struct {
	active  atomic.Int32
	maxSeen atomic.Int32
	started chan string
}

func newBlockingOutput() *blockingOutput {
	return &blockingOutput{started: make(chan string, 16)}
}

func (o *blockingOutput) Stream(song *models.Song, stop <-chan struct{}) error {
	n := o.active.Add(1)
	defer o.active.Add(-1)
	for {
		max := o.maxSeen.Load()
		if n <= max || o.maxSeen.CompareAndSwap(max, n) {
			break
		}
	}

	o.started <- song.FullName()
	<-stop
	return nil
}

func waitStarted(t *testing.T, o *blockingOutput) string {
	t.Helper()
	select {
	case name := <-o.started:
		return name
	case <-time.After(2 * time.Second):
		t.Fatal("playback never started")
		return ""
	}
}

func TestController(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("stop with nothing playing is an informative error", func(t *testing.T) {
		controller := NewController(newBlockingOutput(), logger)

		if err := controller.Stop(); !errors.Is(err, shared.ErrNotPlaying) {
			t.Errorf("expected ErrNotPlaying, got %v", err)
		}
	})

	t.Run("play returns immediately and stop halts it", func(t *testing.T) {
		output := newBlockingOutput()
		controller := NewController(output, logger)

		controller.Play(models.NewSong("ABBA", "Waterloo"))
		waitStarted(t, output)

		if err := controller.Stop(); err != nil {
			t.Errorf("expected active playback to stop, got %v", err)
		}
		if err := controller.Stop(); !errors.Is(err, shared.ErrNotPlaying) {
			t.Errorf("second stop must report nothing playing, got %v", err)
		}
	})

	t.Run("playback is mutually exclusive", func(t *testing.T) {
		output := newBlockingOutput()
		controller := NewController(output, logger)

		controller.Play(models.NewSong("A", "First"))
		controller.Play(models.NewSong("B", "Second"))
		waitStarted(t, output)

		// The second stream must not start while the first is active.
		time.Sleep(50 * time.Millisecond)
		if output.active.Load() != 1 {
			t.Fatalf("expected one active stream, got %d", output.active.Load())
		}

		if err := controller.Stop(); err != nil {
			t.Fatalf("stop failed: %v", err)
		}
		waitStarted(t, output)
		if err := controller.Stop(); err != nil {
			t.Fatalf("stopping the queued playback failed: %v", err)
		}

		if output.maxSeen.Load() != 1 {
			t.Errorf("streams overlapped: max active %d", output.maxSeen.Load())
		}
	})

	t.Run("log output ends on its own after the slot duration", func(t *testing.T) {
		controller := NewController(LogOutput{Duration: 10 * time.Millisecond}, logger)

		controller.Play(models.NewSong("ABBA", "Waterloo"))

		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if err := controller.Stop(); errors.Is(err, shared.ErrNotPlaying) {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Error("playback never finished on its own")
	})
}
