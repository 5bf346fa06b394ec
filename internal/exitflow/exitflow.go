// Package exitflow gates navigation away from a running game behind a
// confirm/cancel step. It never touches game state.
package exitflow

import "sync"

// DefaultTarget is where a confirmed exit redirects when the host supplies
// no destination.
const DefaultTarget = "/welcome"

// Controller is a two-state machine: hidden → confirming → hidden.
type Controller struct {
	mu         sync.Mutex
	confirming bool
	target     string
}

// New returns a controller that redirects to target on confirm.
// An empty target selects DefaultTarget.
func New(target string) *Controller {
	if target == "" {
		target = DefaultTarget
	}
	return &Controller{target: target}
}

// RequestExit opens the confirmation step.
func (c *Controller) RequestExit() {
	c.mu.Lock()
	c.confirming = true
	c.mu.Unlock()
}

// Cancel closes the confirmation step with no side effect.
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.confirming = false
	c.mu.Unlock()
}

// Confirm closes the confirmation step and reports the redirect target.
// ok is false if no exit was being confirmed.
func (c *Controller) Confirm() (target string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.confirming {
		return "", false
	}
	c.confirming = false
	return c.target, true
}

// Confirming reports whether the confirmation step is open.
func (c *Controller) Confirming() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirming
}
