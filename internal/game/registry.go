package game

import (
	"sort"
	"sync"

	"github.com/decred/slog"
)

// Registry owns every room in the process, keyed by room ID. Rooms are
// created on first reference and kept for the lifetime of the server;
// an emptied room force-resets to the lobby instead of being destroyed,
// so a rejoin under the same ID finds it again.
type Registry struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	params   RaceParams
	recorder ResultRecorder
	log      slog.Logger
}

func NewRegistry(params RaceParams, rec ResultRecorder, log slog.Logger) *Registry {
	return &Registry{
		rooms:    map[string]*Room{},
		params:   SanitizeRaceParams(params),
		recorder: rec,
		log:      log,
	}
}

// GetRoom resolves a room by ID, creating it on first use.
func (g *Registry) GetRoom(id string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()

	r, ok := g.rooms[id]
	if !ok {
		r = newRoom(id, g.params, g.recorder, g.log)
		g.rooms[id] = r
		g.log.Infof("room %s created", id)
	}
	return r
}

// RoomInfo is a point-in-time view of one room for diagnostics.
type RoomInfo struct {
	ID      string  `json:"id"`
	Phase   Phase   `json:"phase"`
	Players int     `json:"players"`
	Bots    int     `json:"bots"`
	RaceID  string  `json:"raceId,omitempty"`
	Clock   float64 `json:"clock"`
}

// Snapshot lists every room, sorted by ID.
func (g *Registry) Snapshot() []RoomInfo {
	g.mu.Lock()
	rooms := make([]*Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		rooms = append(rooms, r)
	}
	g.mu.Unlock()

	infos := make([]RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		r.Mu.Lock()
		infos = append(infos, RoomInfo{
			ID:      r.ID,
			Phase:   r.Phase,
			Players: len(r.Players),
			Bots:    len(r.Bots),
			RaceID:  r.RaceID,
			Clock:   r.Now,
		})
		r.Mu.Unlock()
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}
