package game

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/decred/slog"
	"github.com/google/uuid"
)

type Phase string

const (
	PhaseLobby     Phase = "lobby"
	PhaseCountdown Phase = "countdown"
	PhaseRace      Phase = "race"
	PhaseResults   Phase = "results"
)

// ResultRecorder receives the final standings after each race. Calls
// run on their own goroutine and are fire-and-forget: the room never
// waits on or reacts to the outcome.
type ResultRecorder interface {
	RecordRaceResult(roomID, raceID string, results []ResultEntry)
}

// Room is one isolated race session. Everything below Mu is guarded by
// it; inbound commands and the tick body both run under the lock, so
// each handler sees and leaves a consistent room.
type Room struct {
	ID string

	Mu      sync.Mutex
	Phase   Phase
	HostID  int64 // 0 when the room is empty
	Players map[int64]*Player
	Bots    []*Bot

	// Now is the race clock in seconds. It advances only while the
	// room is ticking, so wall-clock stalls never eat countdowns or
	// inflate finish times.
	Now           float64
	RaceID        string
	countdownLeft float64
	deadline      time.Time // client-facing countdown deadline
	raceStartNow  float64
	raceStartWall time.Time

	Params RaceParams

	joinSeq  int64
	rng      *rand.Rand
	stopTick chan struct{}
	tickGen  uint64 // bumped on every ticker start
	recorder ResultRecorder
	log      slog.Logger

	// manualClock suppresses the wall-clock ticker so tests can drive
	// Advance with a fixed step.
	manualClock bool
}

func newRoom(id string, params RaceParams, rec ResultRecorder, log slog.Logger) *Room {
	return &Room{
		ID:       id,
		Phase:    PhaseLobby,
		Players:  map[int64]*Player{},
		Params:   SanitizeRaceParams(params),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		recorder: rec,
		log:      log,
	}
}

/* ------------------------------ commands ------------------------------ */

// Join adds a connection to the room and answers it with a welcome
// frame. Outside the race phase the newcomer is seated immediately;
// during a race they spectate (lane -1) until the next allocation.
func (r *Room) Join(c Client, name string) *Player {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	id := nextPlayerID()
	p := &Player{
		ID:      id,
		Name:    SanitizeName(name, id),
		JoinSeq: r.joinSeq,
		Lane:    -1,
		client:  c,
	}
	r.joinSeq++
	r.Players[id] = p
	if r.HostID == 0 {
		r.HostID = id
	}
	if r.Phase != PhaseRace {
		r.reassignLanesLocked()
	}
	r.log.Debugf("room %s: player %d (%s) joined, host %d", r.ID, id, p.Name, r.HostID)

	p.send(WelcomeMsg{Type: MsgWelcome, ID: id, Room: r.ID, HostID: r.HostID})
	r.broadcastLocked(r.roomStateLocked())
	return p
}

// Leave handles a disconnect. Mid-race racers are frozen as forfeits so
// the completion check and the standings stay coherent; everyone else
// is removed outright. The host role migrates to the earliest joiner
// left, and a room nobody is connected to force-resets to the lobby.
func (r *Room) Leave(playerID int64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	p := r.Players[playerID]
	if p == nil {
		return
	}
	wasHost := r.HostID == playerID
	if r.Phase == PhaseRace && p.Racing && !p.Forfeited {
		p.Forfeited = true
		p.Boost.Down = false
		p.client = nil
		r.log.Debugf("room %s: player %d forfeited mid-race", r.ID, playerID)
	} else {
		delete(r.Players, playerID)
		r.log.Debugf("room %s: player %d left", r.ID, playerID)
	}
	if wasHost {
		r.HostID = r.nextHostLocked()
	}

	if r.connectedCountLocked() == 0 {
		r.resetToLobbyLocked()
		return
	}
	if r.Phase != PhaseRace {
		r.reassignLanesLocked()
	}
	if r.Phase == PhaseResults && wasHost {
		r.resetToLobbyLocked()
		return
	}
	r.broadcastLocked(r.roomStateLocked())
}

// SetReady flips a lobby ready flag.
func (r *Room) SetReady(playerID int64, ready bool) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Phase != PhaseLobby {
		return
	}
	p := r.Players[playerID]
	if p == nil {
		return
	}
	p.Ready = ready
	r.broadcastLocked(r.roomStateLocked())
}

// Rename changes a display name anywhere but mid-race.
func (r *Room) Rename(playerID int64, name string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Phase == PhaseRace {
		return
	}
	p := r.Players[playerID]
	if p == nil {
		return
	}
	p.Name = SanitizeName(name, p.ID)
	r.broadcastLocked(r.roomStateLocked())
}

// StartGame moves lobby to countdown. Only the host may start, and only
// when alone or when every participant is ready; anything else is a
// silent no-op.
func (r *Room) StartGame(playerID int64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if playerID != r.HostID || r.Phase != PhaseLobby {
		return
	}
	if !r.startConditionLocked() {
		return
	}
	r.enterCountdownLocked()
}

// ResetGame returns a finished room to the lobby. Host only.
func (r *Room) ResetGame(playerID int64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if playerID != r.HostID || r.Phase != PhaseResults {
		return
	}
	r.resetToLobbyLocked()
}

// PressBoost validates a boost press or release against the cooldown
// and duration rules. Acceptances broadcast to the room; rejections go
// back to the requester with the remaining cooldown so its UI can show
// a meter.
func (r *Room) PressBoost(playerID int64, down bool) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.Phase != PhaseRace {
		return
	}
	p := r.Players[playerID]
	if p == nil || !p.Racing || p.Forfeited || p.Motion.Finished {
		return
	}
	verdict, changed := ApplyBoostInput(&p.Boost, down, r.Now-r.raceStartNow, r.Params)
	if !changed {
		return
	}
	msg := BoostMsg{
		Type:           MsgBoost,
		ID:             p.ID,
		Down:           down,
		Accepted:       verdict.Accepted,
		CooldownMsLeft: verdict.CooldownLeftMs,
	}
	if verdict.Accepted {
		r.broadcastLocked(msg)
	} else {
		p.send(msg)
	}
}

/* ----------------------------- tick loop ------------------------------ */

// Advance moves the simulation forward dt seconds. Tests call this
// directly with a fixed step; the ticker goroutine steps through
// advanceFromTicker instead.
func (r *Room) Advance(dt float64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.advanceLocked(dt)
}

// advanceFromTicker applies one measured tick. A stale gen means the
// step was already in flight when its goroutine was told to stop; it
// belongs to the old clock and must not move whatever phase has
// started since.
func (r *Room) advanceFromTicker(dt float64, gen uint64) {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	if gen != r.tickGen {
		return
	}
	r.advanceLocked(dt)
}

func (r *Room) advanceLocked(dt float64) {
	switch r.Phase {
	case PhaseCountdown:
		r.advanceCountdownLocked(dt)
	case PhaseRace:
		r.advanceRaceLocked(dt)
	}
}

func (r *Room) startTickLocked() {
	if r.stopTick != nil || r.manualClock {
		return
	}
	r.tickGen++
	stop := make(chan struct{})
	r.stopTick = stop
	go r.runTicks(stop, r.tickGen)
}

func (r *Room) stopTickLocked() {
	if r.stopTick == nil {
		return
	}
	close(r.stopTick)
	r.stopTick = nil
}

// runTicks drives the race clock while the room is in a timed phase.
// dt is measured rather than assumed so scheduling hiccups distort a
// race as little as possible, and capped so a long stall cannot
// teleport everyone forward. gen pins the goroutine to the start call
// that spawned it.
func (r *Room) runTicks(stop <-chan struct{}, gen uint64) {
	interval := time.Duration(float64(time.Second) / r.Params.TickHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt <= 0 {
				continue
			}
			if dt > MaxTickDt {
				dt = MaxTickDt
			}
			r.advanceFromTicker(dt, gen)
		}
	}
}

func (r *Room) advanceCountdownLocked(dt float64) {
	r.Now += dt
	r.countdownLeft -= dt
	if r.countdownLeft > 0 {
		r.broadcastLocked(CountdownMsg{
			Type:        MsgCountdown,
			SecondsLeft: r.countdownLeft,
			DeadlineMs:  r.deadline.UnixMilli(),
		})
		r.broadcastLocked(TickMsg{Type: MsgTick, ServerMs: time.Now().UnixMilli()})
		return
	}
	r.enterRaceLocked()
}

func (r *Room) advanceRaceLocked(dt float64) {
	r.Now += dt
	raceSeconds := r.Now - r.raceStartNow

	for _, p := range r.Players {
		if !p.Racing || p.Forfeited {
			continue
		}
		if ExpireBoost(&p.Boost, raceSeconds, r.Params) {
			r.broadcastLocked(BoostMsg{Type: MsgBoost, ID: p.ID, Down: false, Accepted: true})
		}
		target := TargetSpeed(r.Params, p.Boost.Down, 1)
		StepMotion(&p.Motion, r.Params, target, r.Params.HumanJitter, dt, raceSeconds, r.rng.Float64)
		if p.Motion.Finished && p.Boost.Down {
			// past the line the boost is moot; retire it quietly
			p.Boost.Down = false
			p.Boost.LastEndedAt = raceSeconds
		}
	}
	for _, b := range r.Bots {
		UpdateBotBoost(b, dt, r.rng.Float64)
		target := TargetSpeed(r.Params, b.Boost, b.Persona.Bias)
		jitter := r.Params.BotJitter * b.Persona.JitterScale
		StepMotion(&b.Motion, r.Params, target, jitter, dt, raceSeconds, r.rng.Float64)
	}

	r.broadcastLocked(r.tickMsgLocked())

	if r.raceCompleteLocked() {
		r.enterResultsLocked()
	}
}

/* ---------------------------- transitions ----------------------------- */

func (r *Room) enterCountdownLocked() {
	r.Phase = PhaseCountdown
	r.countdownLeft = r.Params.CountdownSec
	r.deadline = time.Now().Add(time.Duration(r.Params.CountdownSec * float64(time.Second)))
	r.startTickLocked()
	r.log.Infof("room %s: countdown started (%.1fs)", r.ID, r.countdownLeft)

	r.broadcastLocked(r.roomStateLocked())
	r.broadcastLocked(CountdownMsg{
		Type:        MsgCountdown,
		SecondsLeft: r.countdownLeft,
		DeadlineMs:  r.deadline.UnixMilli(),
	})
}

func (r *Room) enterRaceLocked() {
	r.Phase = PhaseRace
	r.RaceID = uuid.NewString()
	r.raceStartNow = r.Now
	r.raceStartWall = time.Now()
	r.reassignLanesLocked()
	for _, p := range r.Players {
		p.resetForRace()
	}
	r.log.Infof("room %s: race %s started with %d players, %d bots",
		r.ID, r.RaceID, r.racingCountLocked(), len(r.Bots))

	state := r.roomStateLocked()
	r.broadcastLocked(RaceStartMsg{
		Type:        MsgRaceStart,
		RaceID:      r.RaceID,
		StartedAtMs: r.raceStartWall.UnixMilli(),
		Players:     state.Players,
		Bots:        state.Bots,
	})
}

func (r *Room) enterResultsLocked() {
	r.Phase = PhaseResults
	r.stopTickLocked()
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		p.Ready = false
		players = append(players, p)
	}
	results := CompileResults(players, r.Bots)
	r.log.Infof("room %s: race %s finished, %d standings", r.ID, r.RaceID, len(results))

	r.broadcastLocked(r.roomStateLocked())
	r.broadcastLocked(RaceEndMsg{Type: MsgRaceEnd, RaceID: r.RaceID, Results: results})
	if r.recorder != nil {
		go r.recorder.RecordRaceResult(r.ID, r.RaceID, results)
	}
}

// resetToLobbyLocked is both the host-driven reset and the force reset
// for abandoned rooms. Forfeited records are dropped here and nowhere
// else; until the reset they are still part of the standings.
func (r *Room) resetToLobbyLocked() {
	r.stopTickLocked()
	r.Phase = PhaseLobby
	r.RaceID = ""
	for id, p := range r.Players {
		if p.Forfeited {
			delete(r.Players, id)
			continue
		}
		p.Ready = false
		p.Racing = false
		p.Motion = Motion{}
		p.Boost = NewBoostState()
	}
	if r.HostID == 0 {
		r.HostID = r.nextHostLocked()
	}
	r.reassignLanesLocked()
	r.log.Infof("room %s: reset to lobby (%d players)", r.ID, len(r.Players))
	r.broadcastLocked(r.roomStateLocked())
}

/* ------------------------------ helpers ------------------------------- */

func (r *Room) startConditionLocked() bool {
	n := 0
	allReady := true
	for _, p := range r.Players {
		n++
		if !p.Ready {
			allReady = false
		}
	}
	if n == 0 {
		return false
	}
	return n == 1 || allReady
}

func (r *Room) reassignLanesLocked() {
	players := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p)
	}
	if len(players) == 0 {
		r.Bots = nil
		return
	}
	r.Bots = AssignLanes(players, r.Params.TotalLanes, r.rng.Float64)
}

func (r *Room) nextHostLocked() int64 {
	var best *Player
	for _, p := range r.Players {
		if p.Forfeited {
			continue
		}
		if best == nil || p.JoinSeq < best.JoinSeq {
			best = p
		}
	}
	if best == nil {
		return 0
	}
	return best.ID
}

func (r *Room) connectedCountLocked() int {
	n := 0
	for _, p := range r.Players {
		if !p.Forfeited {
			n++
		}
	}
	return n
}

func (r *Room) racingCountLocked() int {
	n := 0
	for _, p := range r.Players {
		if p.Racing {
			n++
		}
	}
	return n
}

// raceCompleteLocked reports whether every seated racer is done.
// Forfeits and spectators are excluded, so a disconnect never holds
// the finish hostage; once nothing active remains on the grid the race
// is complete with whatever the standings already hold.
func (r *Room) raceCompleteLocked() bool {
	for _, p := range r.Players {
		if !p.Racing || p.Forfeited {
			continue
		}
		if !p.Motion.FullyFinished {
			return false
		}
	}
	for _, b := range r.Bots {
		if !b.Motion.FullyFinished {
			return false
		}
	}
	return true
}

func (r *Room) roomStateLocked() RoomStateMsg {
	msg := RoomStateMsg{
		Type:   MsgRoomState,
		Phase:  r.Phase,
		HostID: r.HostID,
		Params: r.Params,
	}
	msg.Players = make([]PlayerInfo, 0, len(r.Players))
	for _, p := range r.Players {
		msg.Players = append(msg.Players, PlayerInfo{
			ID:        p.ID,
			Name:      p.Name,
			Ready:     p.Ready,
			Lane:      p.Lane,
			Connected: !p.Forfeited,
		})
	}
	// roster order, stable for client rendering
	sort.Slice(msg.Players, func(i, j int) bool { return msg.Players[i].ID < msg.Players[j].ID })
	msg.Bots = make([]BotInfo, 0, len(r.Bots))
	for _, b := range r.Bots {
		msg.Bots = append(msg.Bots, BotInfo{Lane: b.Lane, Name: b.Name})
	}
	return msg
}

func (r *Room) tickMsgLocked() TickMsg {
	msg := TickMsg{Type: MsgTick, ServerMs: time.Now().UnixMilli()}
	for _, p := range r.Players {
		if !p.Racing {
			continue
		}
		msg.Participants = append(msg.Participants, ParticipantTick{
			ID:       p.ID,
			Lane:     p.Lane,
			Progress: p.Motion.Progress,
			Speed:    p.Motion.Speed,
			Finished: p.Motion.Finished,
		})
	}
	for _, b := range r.Bots {
		msg.Participants = append(msg.Participants, ParticipantTick{
			Lane:     b.Lane,
			Progress: b.Motion.Progress,
			Speed:    b.Motion.Speed,
			Finished: b.Motion.Finished,
		})
	}
	sort.Slice(msg.Participants, func(i, j int) bool {
		return msg.Participants[i].Lane < msg.Participants[j].Lane
	})
	return msg
}

func (r *Room) broadcastLocked(msg any) {
	for _, p := range r.Players {
		p.send(msg)
	}
}
