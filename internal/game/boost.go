package game

import "math"

// BoostState tracks one player's boost input window. Times are
// race-clock seconds since the race started; the server clock is the
// only one consulted, client timestamps never reach this code.
type BoostState struct {
	Down        bool
	StartedAt   float64
	LastEndedAt float64 // -Inf until the first boost ends
}

// NewBoostState returns a state with no prior boost on record.
func NewBoostState() BoostState {
	return BoostState{LastEndedAt: math.Inf(-1)}
}

// BoostVerdict is the answer to a boost press, relayed to the client so
// its UI can reflect the cooldown.
type BoostVerdict struct {
	Accepted       bool
	CooldownLeftMs float64
}

// ApplyBoostInput validates a press (down=true) or release (down=false)
// at race time now. A press is accepted only when no boost is active
// and the cooldown since the previous boost has fully elapsed. The
// second return reports whether anything worth notifying happened; a
// release with no active boost is a plain no-op.
func ApplyBoostInput(b *BoostState, down bool, now float64, p RaceParams) (BoostVerdict, bool) {
	if !down {
		if !b.Down {
			return BoostVerdict{}, false
		}
		b.Down = false
		b.LastEndedAt = now
		return BoostVerdict{Accepted: true}, true
	}

	if b.Down {
		return BoostVerdict{Accepted: false}, true
	}
	cooldown := p.BoostCooldownMs / 1000.0
	if elapsed := now - b.LastEndedAt; elapsed < cooldown {
		left := (cooldown - elapsed) * 1000.0
		if left < 0 {
			left = 0
		}
		return BoostVerdict{Accepted: false, CooldownLeftMs: left}, true
	}
	b.Down = true
	b.StartedAt = now
	return BoostVerdict{Accepted: true}, true
}

// ExpireBoost force-stops a boost that has run past BoostMaxMs. The
// room calls this every tick, so a lost release frame cannot keep a
// boost alive. Returns true when a forced stop happened.
func ExpireBoost(b *BoostState, now float64, p RaceParams) bool {
	if !b.Down {
		return false
	}
	if now-b.StartedAt <= p.BoostMaxMs/1000.0 {
		return false
	}
	b.Down = false
	b.LastEndedAt = now
	return true
}
