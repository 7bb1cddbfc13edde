package game

// RaceParams holds the tunable constants for a room's races.
// Speeds are in normalized lap progress per second (1.0 = one lap),
// so they are lane-independent; the per-lane lap distance only matters
// to the client drawing the track.
type RaceParams struct {
	TotalLanes      int     `json:"totalLanes"`      // lane slots per room (e.g., 8)
	TickHz          float64 `json:"tickHz"`          // simulation and broadcast rate (e.g., 20)
	CountdownSec    float64 `json:"countdownSec"`    // lobby countdown length (e.g., 3)
	BaseSpeed       float64 `json:"baseSpeed"`       // speed at factor 1.0 (e.g., 0.12)
	IdleSpeedFactor float64 `json:"idleSpeedFactor"` // target factor without boost (e.g., 0.6)
	BoostFactor     float64 `json:"boostFactor"`     // target factor while boosting (e.g., 2.0)
	AccelRate       float64 `json:"accelRate"`       // max speed gain per second
	DecelRate       float64 `json:"decelRate"`       // max speed loss per second
	HumanJitter     float64 `json:"humanJitter"`     // ± speed noise fraction for humans
	BotJitter       float64 `json:"botJitter"`       // ± speed noise fraction for bots
	BoostCooldownMs float64 `json:"boostCooldownMs"` // minimum gap between boosts (e.g., 2500)
	BoostMaxMs      float64 `json:"boostMaxMs"`      // forced boost stop after this (e.g., 1800)
	FinishDecelSec  float64 `json:"finishDecelSec"`  // coast-down time past the finish line
}

// SanitizeRaceParams clamps and normalizes race parameters to safe defaults.
func SanitizeRaceParams(p RaceParams) RaceParams {
	defaults := RaceParams{
		TotalLanes:      TotalLanes,
		TickHz:          TickHz,
		CountdownSec:    CountdownSeconds,
		BaseSpeed:       BaseSpeed,
		IdleSpeedFactor: IdleSpeedFactor,
		BoostFactor:     BoostFactor,
		AccelRate:       AccelRate,
		DecelRate:       DecelRate,
		HumanJitter:     HumanJitter,
		BotJitter:       BotJitter,
		BoostCooldownMs: BoostCooldownMs,
		BoostMaxMs:      BoostMaxMs,
		FinishDecelSec:  FinishDecelSec,
	}

	if !(p.TotalLanes > 0) {
		p.TotalLanes = defaults.TotalLanes
	}
	if !(p.TickHz > 0) {
		p.TickHz = defaults.TickHz
	}
	if !(p.CountdownSec > 0) {
		p.CountdownSec = defaults.CountdownSec
	}
	if !(p.BaseSpeed > 0) {
		p.BaseSpeed = defaults.BaseSpeed
	}
	if !(p.IdleSpeedFactor > 0) {
		p.IdleSpeedFactor = defaults.IdleSpeedFactor
	}
	if !(p.BoostFactor >= p.IdleSpeedFactor) {
		p.BoostFactor = defaults.BoostFactor
	}
	if !(p.AccelRate > 0) {
		p.AccelRate = defaults.AccelRate
	}
	if !(p.DecelRate > 0) {
		p.DecelRate = defaults.DecelRate
	}
	if !(p.HumanJitter >= 0 && p.HumanJitter < 1) {
		p.HumanJitter = defaults.HumanJitter
	}
	if !(p.BotJitter >= 0 && p.BotJitter < 1) {
		p.BotJitter = defaults.BotJitter
	}
	if !(p.BoostCooldownMs >= 0) {
		p.BoostCooldownMs = defaults.BoostCooldownMs
	}
	if !(p.BoostMaxMs > 0) {
		p.BoostMaxMs = defaults.BoostMaxMs
	}
	if !(p.FinishDecelSec > 0) {
		p.FinishDecelSec = defaults.FinishDecelSec
	}
	return p
}

// DefaultRaceParams returns the stock tuning from consts.go.
func DefaultRaceParams() RaceParams {
	return SanitizeRaceParams(RaceParams{})
}
