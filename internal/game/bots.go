package game

import "fmt"

// Personality shapes how a bot drives for one race. Values are sampled
// at lane allocation and never mutated, so the integrator can stay pure.
type Personality struct {
	Bias        float64 // scales the idle target speed (0.92..1.08)
	JitterScale float64 // scales BotJitter (0.6..1.4)
	BoostPref   float64 // boost starts per second while idle (0.05..0.30)
}

// RollPersonality samples a fresh personality from the room's dice.
func RollPersonality(rng func() float64) Personality {
	return Personality{
		Bias:        0.92 + 0.16*rng(),
		JitterScale: 0.6 + 0.8*rng(),
		BoostPref:   0.05 + 0.25*rng(),
	}
}

// Bot fills a lane no human claimed. Bots have no identity beyond their
// lane and are rebuilt from scratch on every allocation.
type Bot struct {
	Lane    int
	Name    string
	Persona Personality
	Boost   bool // bots skip the validator and toggle this directly
	Motion  Motion
}

func NewBot(lane int, rng func() float64) *Bot {
	return &Bot{
		Lane:    lane,
		Name:    fmt.Sprintf("Bot %d", lane),
		Persona: RollPersonality(rng),
	}
}

// UpdateBotBoost tosses the per-tick coin for starting or stopping a
// bot's boost. Probabilities scale with dt so the tick rate does not
// change how boosty a bot is.
func UpdateBotBoost(b *Bot, dt float64, rng func() float64) {
	if b.Motion.Finished {
		b.Boost = false
		return
	}
	if b.Boost {
		if rng() < BotBoostStopRate*dt {
			b.Boost = false
		}
		return
	}
	if rng() < b.Persona.BoostPref*dt {
		b.Boost = true
	}
}
