package scene

import "fmt"

// Action is a user-triggered change of the scene state.
type Action uint8

const (
	ActionNone Action = iota
	ActionTogglePause
	ActionSpeedUp
	ActionSlowDown
	ActionReset
	ActionSetRotation
)

func (a Action) String() string {
	switch a {
	case ActionTogglePause:
		return "toggle-pause"
	case ActionSpeedUp:
		return "speed-up"
	case ActionSlowDown:
		return "slow-down"
	case ActionReset:
		return "reset"
	case ActionSetRotation:
		return "set-rotation"
	default:
		return "none"
	}
}

// Bindings maps key runes to actions.
type Bindings struct {
	Pause    rune
	SpeedUp  rune
	SlowDown rune
	Reset    rune
}

func DefaultBindings() Bindings {
	return Bindings{Pause: ' ', SpeedUp: '+', SlowDown: '-', Reset: 'r'}
}

// Lookup returns the action bound to r, or ActionNone.
func (b Bindings) Lookup(r rune) Action {
	switch r {
	case 0:
		return ActionNone
	case b.Pause:
		return ActionTogglePause
	case b.SpeedUp:
		return ActionSpeedUp
	case b.SlowDown:
		return ActionSlowDown
	case b.Reset:
		return ActionReset
	}
	return ActionNone
}

// Validate rejects unset or duplicate bindings.
func (b Bindings) Validate() error {
	seen := map[rune]string{}
	for _, k := range []struct {
		name string
		r    rune
	}{{"pause", b.Pause}, {"speed_up", b.SpeedUp}, {"slow_down", b.SlowDown}, {"reset", b.Reset}} {
		if k.r == 0 {
			return fmt.Errorf("key %s is not bound", k.name)
		}
		if other, ok := seen[k.r]; ok {
			return fmt.Errorf("key %q bound to both %s and %s", k.r, other, k.name)
		}
		seen[k.r] = k.name
	}
	return nil
}
