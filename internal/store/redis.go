package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"LaneRally/internal/game"

	"github.com/decred/slog"
	"github.com/redis/go-redis/v9"
)

const (
	saveTimeout     = 5 * time.Second
	resultKeyPrefix = "lanerally:results:"
)

// RedisArchive pushes each race onto a per-room Redis list and trims it
// to the most recent historyKeep entries. Failures are logged and
// swallowed; a broken archive never touches a running race.
type RedisArchive struct {
	rdb *redis.Client
	log slog.Logger
}

func NewRedisArchive(url string, log slog.Logger) (*RedisArchive, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisArchive{
		rdb: redis.NewClient(opt),
		log: log,
	}, nil
}

type redisRecord struct {
	RaceID  string             `json:"raceId"`
	SavedMs int64              `json:"savedMs"`
	Results []game.ResultEntry `json:"results"`
}

func (a *RedisArchive) RecordRaceResult(roomID, raceID string, results []game.ResultEntry) {
	payload, err := json.Marshal(redisRecord{
		RaceID:  raceID,
		SavedMs: time.Now().UnixMilli(),
		Results: results,
	})
	if err != nil {
		a.log.Errorf("marshal race %s: %v", raceID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	key := resultKeyPrefix + roomID
	pipe := a.rdb.Pipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, historyKeep-1)
	if _, err := pipe.Exec(ctx); err != nil {
		a.log.Errorf("archive race %s for room %s: %v", raceID, roomID, err)
		return
	}
	a.log.Debugf("archived race %s for room %s", raceID, roomID)
}
