package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultAutoSaveDelay is how long typing must pause before a draft is
// persisted.
const DefaultAutoSaveDelay = 5 * time.Second

// SaveFunc persists a form snapshot. AutoSaver never calls it concurrently.
type SaveFunc func(ctx context.Context, form SessionForm) error

// AutoSaver debounces draft persistence for an editor: every Update restarts
// the delay timer, so saves only fire after typing pauses. Snapshots are
// compared in serialized form and redundant saves are skipped. Save errors
// are logged and surfaced via the optional OnError callback, never retried.
type AutoSaver struct {
	save    SaveFunc
	delay   time.Duration
	OnError func(error)

	mu        sync.Mutex
	timer     *time.Timer
	pending   SessionForm
	pendingOK bool
	lastSaved string
	inFlight  bool
	stopped   bool
}

func NewAutoSaver(save SaveFunc, delay time.Duration) *AutoSaver {
	if delay <= 0 {
		delay = DefaultAutoSaveDelay
	}
	return &AutoSaver{save: save, delay: delay}
}

// Update records the latest form state and restarts the debounce timer.
// A form identical to the last saved snapshot cancels any pending save.
func (a *AutoSaver) Update(form SessionForm) {
	snap := snapshot(form)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	if snap == a.lastSaved {
		a.pendingOK = false
		if a.timer != nil {
			a.timer.Stop()
			a.timer = nil
		}
		return
	}

	a.pending = form
	a.pendingOK = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.fire)
}

func (a *AutoSaver) fire() {
	a.mu.Lock()
	if a.stopped || !a.pendingOK {
		a.mu.Unlock()
		return
	}
	if a.inFlight {
		// A previous save is still running; try again after the delay.
		a.timer = time.AfterFunc(a.delay, a.fire)
		a.mu.Unlock()
		return
	}
	form := a.pending
	a.pendingOK = false
	a.inFlight = true
	a.mu.Unlock()

	a.runSave(form)
}

// Flush persists any pending snapshot immediately, bypassing the timer.
func (a *AutoSaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.stopped || !a.pendingOK {
		a.mu.Unlock()
		return nil
	}
	form := a.pending
	a.pendingOK = false
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.inFlight = true
	a.mu.Unlock()

	snap := snapshot(form)
	err := a.save(ctx, form)

	a.mu.Lock()
	a.inFlight = false
	if err == nil {
		a.lastSaved = snap
	}
	a.mu.Unlock()
	return err
}

// Stop cancels any pending save. The AutoSaver cannot be restarted.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	a.pendingOK = false
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *AutoSaver) runSave(form SessionForm) {
	snap := snapshot(form)
	err := a.save(context.Background(), form)

	a.mu.Lock()
	a.inFlight = false
	if err == nil {
		a.lastSaved = snap
	}
	a.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Msg("auto-save failed")
		if a.OnError != nil {
			a.OnError(err)
		}
	}
}

func snapshot(form SessionForm) string {
	data, err := json.Marshal(form)
	if err != nil {
		return ""
	}
	return string(data)
}
