// Package driver is the frame clock of the plexus background. It calls a
// frame function once per tick, either from its own ticker goroutine or
// pumped by a host loop that already owns the clock, and it can be stopped
// deterministically: once Stop has been called no new frame starts.
package driver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidArgument = errors.New("driver: invalid argument")
	ErrStarted         = errors.New("driver: already started")
	ErrStopped         = errors.New("driver: stopped")
)

// FrameFunc runs one frame. frame counts up from zero. A non-nil error
// stops the driver.
type FrameFunc func(frame uint64) error

// Driver schedules frames until stopped
type Driver struct {
	interval time.Duration
	fn       FrameFunc

	frameMu sync.Mutex // Serialises frames
	frames  atomic.Uint64
	stopped atomic.Bool

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
}

// New returns a driver that ticks every interval
func New(interval time.Duration, fn FrameFunc) (*Driver, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval %v", ErrInvalidArgument, interval)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: nil frame func", ErrInvalidArgument)
	}
	return &Driver{interval: interval, fn: fn}, nil
}

// Interval returns the tick period
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Start runs frames on a ticker goroutine until Stop, a frame error or ctx
// cancellation.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped.Load() {
		return ErrStopped
	}
	if d.started {
		return ErrStarted
	}
	d.started = true

	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})
	go d.loop(ctx, d.done)
	return nil
}

func (d *Driver) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return
		case <-ticker.C:
			if _, err := d.Tick(); err != nil || d.stopped.Load() {
				return
			}
		}
	}
}

// Tick runs a single frame now. It reports false without calling the frame
// function once the driver is stopped, so a late callback is harmless.
func (d *Driver) Tick() (bool, error) {
	d.frameMu.Lock()
	defer d.frameMu.Unlock()

	if d.stopped.Load() {
		return false, nil
	}
	frame := d.frames.Add(1) - 1
	if err := d.fn(frame); err != nil {
		d.fail(err)
		return true, err
	}
	return true, nil
}

func (d *Driver) fail(err error) {
	d.mu.Lock()
	if d.err == nil {
		d.err = fmt.Errorf("frame %d: %w", d.frames.Load()-1, err)
	}
	d.mu.Unlock()
	d.Stop()
}

// Stop prevents any further frame from starting. It never blocks, so a frame
// may call it; use Wait to join the ticker goroutine.
func (d *Driver) Stop() {
	if d.stopped.Swap(true) {
		return
	}
	d.mu.Lock()
	cancel := d.cancel
	d.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the ticker goroutine has exited and returns the frame
// error, if any. It returns at once for a driver that was never started.
func (d *Driver) Wait() error {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()
	if done != nil {
		<-done
	}
	return d.Err()
}

// Err returns the error that stopped the driver
func (d *Driver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Frames returns how many frames have run
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Stopped reports whether Stop has been called
func (d *Driver) Stopped() bool {
	return d.stopped.Load()
}
