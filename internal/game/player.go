package game

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// Client is the transport half of a player. The ws layer implements it;
// rooms push outbound frames through it, sometimes while holding the
// room lock, so Send must never block.
type Client interface {
	Send(msg any)
}

// Player is a connected (or, mid-race, recently disconnected) human in
// a room. All fields are guarded by the owning room's mutex.
type Player struct {
	ID      int64
	Name    string
	JoinSeq int64 // join order within the room, drives lanes and host pick
	Ready   bool
	Lane    int // -1 while spectating

	Racing    bool // part of the current race's frozen roster
	Forfeited bool // disconnected mid-race; kept for the standings
	Motion    Motion
	Boost     BoostState

	client Client
}

func (p *Player) send(msg any) {
	if p.client != nil {
		p.client.Send(msg)
	}
}

// resetForRace clears the runtime state at race entry. Spectators stay
// out of the roster until the next allocation gives them a lane.
func (p *Player) resetForRace() {
	p.Motion = Motion{}
	p.Boost = NewBoostState()
	p.Racing = p.Lane >= 0
}

var lastPlayerID atomic.Int64

func nextPlayerID() int64 {
	return lastPlayerID.Add(1)
}

// SanitizeName trims and caps a display name, falling back to a
// generated one. Charset policing is the proxy layer's job.
func SanitizeName(raw string, id int64) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return fmt.Sprintf("racer-%d", id)
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		runes := []rune(name)
		name = string(runes[:MaxNameLen])
	}
	return name
}
