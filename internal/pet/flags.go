package pet

import "time"

// Flag is a cosmetic animation marker raised by an action.
type Flag string

const (
	FlagBeingPet     Flag = "isBeingPet"
	FlagBeingFed     Flag = "isBeingFed"
	FlagBeingPunched Flag = "isBeingPunched"
	FlagBeingBathed  Flag = "isBeingBathed"
)

var flagDurations = map[Flag]time.Duration{
	FlagBeingPet:     1000 * time.Millisecond,
	FlagBeingFed:     1000 * time.Millisecond,
	FlagBeingPunched: 500 * time.Millisecond,
	FlagBeingBathed:  2000 * time.Millisecond,
}

// FlagFor maps an action to the flag it raises.
func FlagFor(kind ActionKind) Flag {
	switch kind {
	case ActionPet:
		return FlagBeingPet
	case ActionFeed:
		return FlagBeingFed
	case ActionPunch:
		return FlagBeingPunched
	case ActionBathe:
		return FlagBeingBathed
	}
	return ""
}

func FlagDuration(f Flag) time.Duration {
	return flagDurations[f]
}

// Flags holds one clear deadline per raised flag, measured on the session's
// simulated clock in seconds. Raising a flag again replaces its deadline, so
// a stale clear can never turn off a newer raise.
type Flags struct {
	deadlines map[Flag]float64
}

func (f *Flags) Raise(flag Flag, now float64) {
	d, ok := flagDurations[flag]
	if !ok {
		return
	}
	if f.deadlines == nil {
		f.deadlines = make(map[Flag]float64)
	}
	f.deadlines[flag] = now + d.Seconds()
}

// Cancel drops a pending flag immediately.
func (f *Flags) Cancel(flag Flag) {
	delete(f.deadlines, flag)
}

// Expire clears every flag whose deadline is at or before now.
func (f *Flags) Expire(now float64) {
	for flag, deadline := range f.deadlines {
		if deadline <= now {
			delete(f.deadlines, flag)
		}
	}
}

func (f Flags) Active(flag Flag) bool {
	_, ok := f.deadlines[flag]
	return ok
}

// Snapshot returns the active flags as a plain map for rendering.
func (f Flags) Snapshot() map[Flag]bool {
	out := make(map[Flag]bool, len(flagDurations))
	for flag := range flagDurations {
		out[flag] = f.Active(flag)
	}
	return out
}
