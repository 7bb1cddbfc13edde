package game

import "math"

// Motion is one participant's kinematic state for the current race.
type Motion struct {
	Progress      float64 // normalized lap fraction, 1.0 = finish line
	Speed         float64 // progress/s
	Finished      bool    // crossed the line
	FinishSeconds float64 // race time at the crossing, frozen once set
	FinishSpeed   float64 // speed at the crossing, sets the coast-down rate
	FullyFinished bool    // crossed the line and coasted to a stop
}

// TargetSpeed returns the speed a participant is being pulled toward.
// A boost overrides the idle target entirely; bias scales only the idle
// target and is 1.0 for humans.
func TargetSpeed(p RaceParams, boosted bool, bias float64) float64 {
	if boosted {
		return p.BaseSpeed * p.BoostFactor
	}
	if !(bias > 0) {
		bias = 1
	}
	return p.BaseSpeed * p.IdleSpeedFactor * bias
}

// StepMotion advances a participant by dt seconds of race time.
//
// The speed closes on target by at most AccelRate*dt upward or
// DecelRate*dt downward, then picks up multiplicative noise of ±jitter,
// then integrates into progress. The first step that carries progress
// past 1.0 freezes FinishSeconds at raceSeconds and snapshots the
// crossing speed; later steps coast the speed down linearly over
// FinishDecelSec (progress still advances) until it hits zero, which
// flips FullyFinished.
func StepMotion(m *Motion, p RaceParams, target, jitter, dt, raceSeconds float64, rng func() float64) {
	if m.FullyFinished || dt <= 0 {
		return
	}
	if m.Finished {
		stepFinishCoast(m, p, dt)
		return
	}

	delta := target - m.Speed
	if delta > 0 {
		m.Speed += math.Min(delta, p.AccelRate*dt)
	} else {
		m.Speed -= math.Min(-delta, p.DecelRate*dt)
	}
	if jitter > 0 && rng != nil {
		m.Speed *= 1 + jitter*(2*rng()-1)
	}
	if m.Speed < 0 {
		m.Speed = 0
	}

	m.Progress += m.Speed * dt
	if m.Progress >= 1 {
		m.Finished = true
		m.FinishSeconds = raceSeconds
		m.FinishSpeed = m.Speed
		if m.FinishSpeed <= 0 {
			m.FullyFinished = true
		}
	}
}

// stepFinishCoast bleeds speed at FinishSpeed/FinishDecelSec so the
// participant visibly rolls past the line instead of stopping dead.
func stepFinishCoast(m *Motion, p RaceParams, dt float64) {
	decel := m.FinishSpeed / math.Max(p.FinishDecelSec, 1e-6)
	m.Speed -= decel * dt
	if m.Speed <= 0 {
		m.Speed = 0
		m.FullyFinished = true
		return
	}
	m.Progress += m.Speed * dt
}
