package server

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	. "LaneRally/internal/game"
)

type raceConfig struct {
	TotalLanes      *int     `yaml:"totalLanes"`
	TickHz          *float64 `yaml:"tickHz"`
	CountdownSec    *float64 `yaml:"countdownSec"`
	BaseSpeed       *float64 `yaml:"baseSpeed"`
	IdleSpeedFactor *float64 `yaml:"idleSpeedFactor"`
	BoostFactor     *float64 `yaml:"boostFactor"`
	AccelRate       *float64 `yaml:"accelRate"`
	DecelRate       *float64 `yaml:"decelRate"`
	HumanJitter     *float64 `yaml:"humanJitter"`
	BotJitter       *float64 `yaml:"botJitter"`
	BoostCooldownMs *float64 `yaml:"boostCooldownMs"`
	BoostMaxMs      *float64 `yaml:"boostMaxMs"`
	FinishDecelSec  *float64 `yaml:"finishDecelSec"`
}

type serverConfig struct {
	Addr     *string     `yaml:"addr"`
	RedisURL *string     `yaml:"redisUrl"`
	Debug    *string     `yaml:"debug"`
	Race     *raceConfig `yaml:"race"`
}

// RaceParamOverrides represents optional command-line overrides for tuning race parameters.
type RaceParamOverrides struct {
	TotalLanes      *int
	TickHz          *float64
	CountdownSec    *float64
	BaseSpeed       *float64
	IdleSpeedFactor *float64
	BoostFactor     *float64
	AccelRate       *float64
	DecelRate       *float64
	HumanJitter     *float64
	BotJitter       *float64
	BoostCooldownMs *float64
	BoostMaxMs      *float64
	FinishDecelSec  *float64
}

func (o RaceParamOverrides) apply(base RaceParams) RaceParams {
	if o.TotalLanes != nil {
		base.TotalLanes = *o.TotalLanes
	}
	if o.TickHz != nil {
		base.TickHz = *o.TickHz
	}
	if o.CountdownSec != nil {
		base.CountdownSec = *o.CountdownSec
	}
	if o.BaseSpeed != nil {
		base.BaseSpeed = *o.BaseSpeed
	}
	if o.IdleSpeedFactor != nil {
		base.IdleSpeedFactor = *o.IdleSpeedFactor
	}
	if o.BoostFactor != nil {
		base.BoostFactor = *o.BoostFactor
	}
	if o.AccelRate != nil {
		base.AccelRate = *o.AccelRate
	}
	if o.DecelRate != nil {
		base.DecelRate = *o.DecelRate
	}
	if o.HumanJitter != nil {
		base.HumanJitter = *o.HumanJitter
	}
	if o.BotJitter != nil {
		base.BotJitter = *o.BotJitter
	}
	if o.BoostCooldownMs != nil {
		base.BoostCooldownMs = *o.BoostCooldownMs
	}
	if o.BoostMaxMs != nil {
		base.BoostMaxMs = *o.BoostMaxMs
	}
	if o.FinishDecelSec != nil {
		base.FinishDecelSec = *o.FinishDecelSec
	}
	return SanitizeRaceParams(base)
}

func mergeRaceConfig(base RaceParams, cfg *raceConfig) RaceParams {
	if cfg == nil {
		return base
	}
	if cfg.TotalLanes != nil {
		base.TotalLanes = *cfg.TotalLanes
	}
	if cfg.TickHz != nil {
		base.TickHz = *cfg.TickHz
	}
	if cfg.CountdownSec != nil {
		base.CountdownSec = *cfg.CountdownSec
	}
	if cfg.BaseSpeed != nil {
		base.BaseSpeed = *cfg.BaseSpeed
	}
	if cfg.IdleSpeedFactor != nil {
		base.IdleSpeedFactor = *cfg.IdleSpeedFactor
	}
	if cfg.BoostFactor != nil {
		base.BoostFactor = *cfg.BoostFactor
	}
	if cfg.AccelRate != nil {
		base.AccelRate = *cfg.AccelRate
	}
	if cfg.DecelRate != nil {
		base.DecelRate = *cfg.DecelRate
	}
	if cfg.HumanJitter != nil {
		base.HumanJitter = *cfg.HumanJitter
	}
	if cfg.BotJitter != nil {
		base.BotJitter = *cfg.BotJitter
	}
	if cfg.BoostCooldownMs != nil {
		base.BoostCooldownMs = *cfg.BoostCooldownMs
	}
	if cfg.BoostMaxMs != nil {
		base.BoostMaxMs = *cfg.BoostMaxMs
	}
	if cfg.FinishDecelSec != nil {
		base.FinishDecelSec = *cfg.FinishDecelSec
	}
	return SanitizeRaceParams(base)
}

func loadServerConfig(path string) (serverConfig, error) {
	var cfg serverConfig
	if path == "" {
		return cfg, nil
	}
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read server config %q: %w", cleanPath, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return serverConfig{}, fmt.Errorf("parse server config %q: %w", cleanPath, err)
	}
	return cfg, nil
}

func applyRaceOverrides(base RaceParams, overrides RaceParamOverrides) RaceParams {
	return overrides.apply(base)
}
