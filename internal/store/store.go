// Package store archives race results. Rooms hand standings over
// fire-and-forget; nothing in the race path ever waits on the archive.
package store

import (
	"sync"
	"time"

	"LaneRally/internal/game"

	"github.com/decred/slog"
)

// historyKeep is how many races are retained per room, newest first.
const historyKeep = 32

// Record is one archived race.
type Record struct {
	RoomID  string             `json:"roomId"`
	RaceID  string             `json:"raceId"`
	SavedAt time.Time          `json:"savedAt"`
	Results []game.ResultEntry `json:"results"`
}

// MemoryArchive keeps recent standings in process memory. It is the
// fallback when no Redis URL is configured; history dies with the
// process.
type MemoryArchive struct {
	mu     sync.Mutex
	byRoom map[string][]Record
	log    slog.Logger
}

func NewMemoryArchive(log slog.Logger) *MemoryArchive {
	return &MemoryArchive{
		byRoom: map[string][]Record{},
		log:    log,
	}
}

func (a *MemoryArchive) RecordRaceResult(roomID, raceID string, results []game.ResultEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	recs := append(a.byRoom[roomID], Record{
		RoomID:  roomID,
		RaceID:  raceID,
		SavedAt: time.Now(),
		Results: results,
	})
	if len(recs) > historyKeep {
		recs = recs[len(recs)-historyKeep:]
	}
	a.byRoom[roomID] = recs
	a.log.Debugf("archived race %s for room %s (%d standings)", raceID, roomID, len(results))
}

// RoomHistory returns the archived races for one room, oldest first.
func (a *MemoryArchive) RoomHistory(roomID string) []Record {
	a.mu.Lock()
	defer a.mu.Unlock()

	recs := a.byRoom[roomID]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}
