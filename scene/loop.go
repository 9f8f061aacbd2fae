package scene

import (
	"log/slog"
	"time"
)

// ReferenceHz is the frame rate speeds are expressed against.
const ReferenceHz = 60

// Animation configures a Loop.
type Animation struct {
	Speed      float64 // radians per reference frame
	Step       float64
	MinSpeed   float64
	AutoRotate bool

	// FrameLocked advances by Speed once per tick regardless of elapsed time.
	FrameLocked bool
}

type command struct {
	action Action
	rad    float64
}

// Loop owns the scene state. Input is queued between ticks. Key actions apply
// before the angle advances; slider writes apply after it, so a slider write
// is what the next frame shows.
type Loop struct {
	state State
	ctrl  *Controller
	anim  Animation
	queue []command
	ticks uint64
}

func NewLoop(anim Animation, log *slog.Logger) *Loop {
	l := &Loop{
		anim: anim,
		state: State{
			Speed:      anim.Speed,
			AutoRotate: anim.AutoRotate,
		},
	}
	l.ctrl = NewController(&l.state, SpeedLimits{Step: anim.Step, Min: anim.MinSpeed}, log)
	return l
}

// State returns a copy of the current state.
func (l *Loop) State() State { return l.state }

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 { return l.ticks }

// Queue records an action for the next tick. Unknown actions are dropped.
func (l *Loop) Queue(a Action) {
	if a == ActionNone {
		return
	}
	l.queue = append(l.queue, command{action: a})
}

// QueueRotation records a slider write (radians) for the next tick.
func (l *Loop) QueueRotation(rad float64) {
	l.queue = append(l.queue, command{action: ActionSetRotation, rad: rad})
}

// Tick advances the angle by the elapsed time dt and returns the resulting
// state. A zero dt does not advance unless the loop is frame locked.
func (l *Loop) Tick(dt time.Duration) State {
	return l.tick(l.frames(dt))
}

// TickFrame advances by one reference frame, for hosts without a clock.
func (l *Loop) TickFrame() State {
	return l.tick(1)
}

func (l *Loop) tick(frames float64) State {
	for _, c := range l.queue {
		if c.action != ActionSetRotation {
			l.ctrl.Apply(c.action, 0)
		}
	}
	if l.state.Running() {
		l.state.Angle += l.state.Speed * frames
	}
	for _, c := range l.queue {
		if c.action == ActionSetRotation {
			l.ctrl.Apply(c.action, c.rad)
		}
	}
	l.queue = l.queue[:0]
	l.ticks++
	return l.state
}

func (l *Loop) frames(dt time.Duration) float64 {
	switch {
	case l.anim.FrameLocked:
		return 1
	case dt <= 0:
		return 0
	}
	return dt.Seconds() * ReferenceHz
}
