// Package scene holds the rotation state of the glyph scene, the per-frame
// transform pipeline and the draw sequence.
package scene

import (
	"log/slog"
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// State is the mutable rotation state. Angle is unbounded; Speed is in
// radians per reference frame.
type State struct {
	Angle      float64
	Speed      float64
	AutoRotate bool
	Paused     bool
}

// Running reports whether the angle advances on its own.
func (s State) Running() bool { return s.AutoRotate && !s.Paused }

// SpeedLimits bounds speed changes made through a Controller.
type SpeedLimits struct {
	Step float64
	Min  float64
}

// Controller applies user actions to a State.
type Controller struct {
	state  *State
	limits SpeedLimits
	log    *slog.Logger
}

func NewController(s *State, limits SpeedLimits, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{state: s, limits: limits, log: log}
}

// SetRotation overwrites the angle. The last write wins.
func (c *Controller) SetRotation(rad float64) {
	c.state.Angle = rad
}

func (c *Controller) TogglePause() {
	c.state.Paused = !c.state.Paused
	if c.state.Paused {
		c.log.Info("animation paused")
	} else {
		c.log.Info("animation resumed")
	}
}

func (c *Controller) SpeedUp() {
	c.state.Speed += c.limits.Step
	c.log.Info("rotation speed", "speed", c.state.Speed)
}

// SlowDown lowers the speed by one step, never below the minimum.
func (c *Controller) SlowDown() {
	c.state.Speed = math.Max(c.limits.Min, c.state.Speed-c.limits.Step)
	c.log.Info("rotation speed", "speed", c.state.Speed)
}

// Reset is bound to a key but left unimplemented; it changes nothing.
func (c *Controller) Reset() {
	c.log.Debug("reset is not implemented")
}

// Apply runs a single action. ActionSetRotation uses rad.
func (c *Controller) Apply(a Action, rad float64) {
	switch a {
	case ActionTogglePause:
		c.TogglePause()
	case ActionSpeedUp:
		c.SpeedUp()
	case ActionSlowDown:
		c.SlowDown()
	case ActionReset:
		c.Reset()
	case ActionSetRotation:
		c.SetRotation(rad)
	}
}
