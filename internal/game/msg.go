package game

// Outbound frame payloads. Every frame carries a type tag; the ws layer
// writes them as JSON text frames in the order the room emitted them.

const (
	MsgWelcome   = "welcome"
	MsgRoomState = "roomState"
	MsgCountdown = "countdown"
	MsgRaceStart = "raceStart"
	MsgTick      = "tick"
	MsgBoost     = "boost"
	MsgRaceEnd   = "raceEnd"
)

// WelcomeMsg answers a hello with the ids the client needs to route
// everything else.
type WelcomeMsg struct {
	Type   string `json:"type"`
	ID     int64  `json:"id"`
	Room   string `json:"room"`
	HostID int64  `json:"hostId"`
}

type PlayerInfo struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Ready     bool   `json:"ready"`
	Lane      int    `json:"lane"`
	Connected bool   `json:"connected"`
}

type BotInfo struct {
	Lane int    `json:"lane"`
	Name string `json:"name"`
}

// RoomStateMsg is the full roster snapshot, broadcast on every change
// outside the tick loop. Params rides along so clients render with the
// same tuning the server simulates with.
type RoomStateMsg struct {
	Type    string       `json:"type"`
	Phase   Phase        `json:"phase"`
	HostID  int64        `json:"hostId"`
	Players []PlayerInfo `json:"players"`
	Bots    []BotInfo    `json:"bots"`
	Params  RaceParams   `json:"params"`
}

type CountdownMsg struct {
	Type        string  `json:"type"`
	SecondsLeft float64 `json:"secondsLeft"`
	DeadlineMs  int64   `json:"deadlineMs"`
}

type RaceStartMsg struct {
	Type        string       `json:"type"`
	RaceID      string       `json:"raceId"`
	StartedAtMs int64        `json:"startedAtMs"`
	Players     []PlayerInfo `json:"players"`
	Bots        []BotInfo    `json:"bots"`
}

// ParticipantTick is one racer's slice of a tick frame. Bots carry no
// id; the lane identifies them.
type ParticipantTick struct {
	ID       int64   `json:"id,omitempty"`
	Lane     int     `json:"lane"`
	Progress float64 `json:"progress"`
	Speed    float64 `json:"currentSpeed"`
	Finished bool    `json:"finished"`
}

type TickMsg struct {
	Type         string            `json:"type"`
	ServerMs     int64             `json:"serverMs"`
	Participants []ParticipantTick `json:"participants,omitempty"`
}

// BoostMsg reports a boost decision. Acceptances and forced stops go to
// the whole room; rejections go back to the requester alone.
type BoostMsg struct {
	Type           string  `json:"type"`
	ID             int64   `json:"id"`
	Down           bool    `json:"down"`
	Accepted       bool    `json:"accepted"`
	CooldownMsLeft float64 `json:"cooldownMsLeft,omitempty"`
}

type RaceEndMsg struct {
	Type    string        `json:"type"`
	RaceID  string        `json:"raceId"`
	Results []ResultEntry `json:"results"`
}
