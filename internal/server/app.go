package server

import (
	"net/http"

	. "LaneRally/internal/game"
	"LaneRally/internal/store"

	"github.com/decred/slog"
)

const defaultAddr = ":8080"

// AppConfig carries everything main hands the server: flag values plus
// the race parameter overrides. Empty strings mean "not set on the
// command line", letting the config file fill them in.
type AppConfig struct {
	Addr          string
	ConfigPath    string
	RedisURL      string
	Debug         string
	RaceOverrides RaceParamOverrides
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		ConfigPath: "configs/server.yaml",
	}
}

func resolveRaceParams(fileCfg serverConfig, overrides RaceParamOverrides) RaceParams {
	params := DefaultRaceParams()
	params = mergeRaceConfig(params, fileCfg.Race)
	params = applyRaceOverrides(params, overrides)
	return SanitizeRaceParams(params)
}

// resolveRecorder picks the result archive. No Redis URL, or one that
// does not parse, means results are kept in process memory only.
func resolveRecorder(redisURL string, log slog.Logger) ResultRecorder {
	if redisURL == "" {
		return store.NewMemoryArchive(log)
	}
	archive, err := store.NewRedisArchive(redisURL, log)
	if err != nil {
		log.Warnf("redis archive: %v (falling back to memory)", err)
		return store.NewMemoryArchive(log)
	}
	log.Infof("archiving results to redis")
	return archive
}

// StartApp resolves configuration, wires the room registry to the
// result archive, and serves until the listener fails.
func StartApp(cfg AppConfig) error {
	fileCfg, cfgErr := loadServerConfig(cfg.ConfigPath)

	debug := cfg.Debug
	if debug == "" && fileCfg.Debug != nil {
		debug = *fileCfg.Debug
	}
	logs := newLoggers(debug)
	if cfgErr != nil {
		logs.srvr.Warnf("server config: %v (using defaults)", cfgErr)
	}

	addr := cfg.Addr
	if addr == "" && fileCfg.Addr != nil {
		addr = *fileCfg.Addr
	}
	if addr == "" {
		addr = defaultAddr
	}

	redisURL := cfg.RedisURL
	if redisURL == "" && fileCfg.RedisURL != nil {
		redisURL = *fileCfg.RedisURL
	}

	params := resolveRaceParams(fileCfg, cfg.RaceOverrides)
	recorder := resolveRecorder(redisURL, logs.stor)
	registry := NewRegistry(params, recorder, logs.game)

	logs.srvr.Infof("listening on %s (%d lanes, tick %.0f Hz, countdown %.1fs)",
		addr, params.TotalLanes, params.TickHz, params.CountdownSec)
	return http.ListenAndServe(addr, buildMux(registry, logs.srvr))
}
