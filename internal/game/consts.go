package game

const (
	TickHz = 20.0 // server tick rate
	Dt     = 1.0 / TickHz

	TotalLanes       = 8
	CountdownSeconds = 3.0

	BaseSpeed       = 0.12 // lap progress/s at factor 1.0
	IdleSpeedFactor = 0.6
	BoostFactor     = 2.0
	AccelRate       = 0.30 // max speed gain, progress/s^2
	DecelRate       = 0.45 // max speed loss, progress/s^2
	HumanJitter     = 0.02 // ± fraction of speed noise for humans
	BotJitter       = 0.05 // ± fraction of speed noise for bots, pre personality scale

	BoostCooldownMs = 2500.0
	BoostMaxMs      = 1800.0
	FinishDecelSec  = 1.2 // coast-down from finish speed to a stop

	BotBoostStopRate = 0.5 // bot boost stop probability per second

	MaxNameLen = 24
	MaxTickDt  = 0.25 // cap on measured dt after scheduler stalls
)
