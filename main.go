package main

import (
	"flag"
	"log"
	"math"

	"LaneRally/internal/server"
)

func main() {
	addr := flag.String("addr", "", "address to listen on (empty = config file or :8080)")
	configPath := flag.String("config", "configs/server.yaml", "path to server tuning YAML")
	redisURL := flag.String("redis", "", "redis URL for result archiving (empty = in-memory)")
	debug := flag.String("debug", "", "log level: trace, debug, info, warn, error")
	lanes := flag.Int("lanes", 0, "override total lanes per race")
	tickHz := flag.Float64("tick-hz", math.NaN(), "override simulation tick rate")
	countdown := flag.Float64("countdown", math.NaN(), "override countdown length in seconds")
	baseSpeed := flag.Float64("base-speed", math.NaN(), "override reference progress per second")
	idleFactor := flag.Float64("idle-factor", math.NaN(), "override idle speed as a fraction of base")
	boostFactor := flag.Float64("boost-factor", math.NaN(), "override boost speed multiplier")
	accelRate := flag.Float64("accel-rate", math.NaN(), "override acceleration toward target speed")
	decelRate := flag.Float64("decel-rate", math.NaN(), "override deceleration toward target speed")
	humanJitter := flag.Float64("human-jitter", math.NaN(), "override per-tick speed jitter for humans (0-1)")
	botJitter := flag.Float64("bot-jitter", math.NaN(), "override per-tick speed jitter for bots (0-1)")
	boostCooldownMs := flag.Float64("boost-cooldown-ms", math.NaN(), "override cooldown between boosts")
	boostMaxMs := flag.Float64("boost-max-ms", math.NaN(), "override longest boost hold before forced release")
	finishDecel := flag.Float64("finish-decel", math.NaN(), "override seconds to coast to a stop after finishing")
	flag.Parse()

	cfg := server.DefaultAppConfig()
	cfg.Addr = *addr
	cfg.ConfigPath = *configPath
	cfg.RedisURL = *redisURL
	cfg.Debug = *debug

	var overrides server.RaceParamOverrides

	if *lanes > 0 {
		val := *lanes
		overrides.TotalLanes = &val
	}
	if !math.IsNaN(*tickHz) {
		val := *tickHz
		overrides.TickHz = &val
	}
	if !math.IsNaN(*countdown) {
		val := *countdown
		overrides.CountdownSec = &val
	}
	if !math.IsNaN(*baseSpeed) {
		val := *baseSpeed
		overrides.BaseSpeed = &val
	}
	if !math.IsNaN(*idleFactor) {
		val := *idleFactor
		overrides.IdleSpeedFactor = &val
	}
	if !math.IsNaN(*boostFactor) {
		val := *boostFactor
		overrides.BoostFactor = &val
	}
	if !math.IsNaN(*accelRate) {
		val := *accelRate
		overrides.AccelRate = &val
	}
	if !math.IsNaN(*decelRate) {
		val := *decelRate
		overrides.DecelRate = &val
	}
	if !math.IsNaN(*humanJitter) {
		val := *humanJitter
		overrides.HumanJitter = &val
	}
	if !math.IsNaN(*botJitter) {
		val := *botJitter
		overrides.BotJitter = &val
	}
	if !math.IsNaN(*boostCooldownMs) {
		val := *boostCooldownMs
		overrides.BoostCooldownMs = &val
	}
	if !math.IsNaN(*boostMaxMs) {
		val := *boostMaxMs
		overrides.BoostMaxMs = &val
	}
	if !math.IsNaN(*finishDecel) {
		val := *finishDecel
		overrides.FinishDecelSec = &val
	}

	cfg.RaceOverrides = overrides

	if err := server.StartApp(cfg); err != nil {
		log.Fatal(err)
	}
}
