package protocol

// Cmd represents a player or host instruction to a game session
type Cmd int

const (
	Null Cmd = iota
	Join
	Leave
	Open
	Start
	Word
	Setting
	Close
)

var CmdNames = map[Cmd]string{
	Null:    "Null",
	Join:    "Join",
	Leave:   "Leave",
	Open:    "Open",
	Start:   "Start",
	Word:    "Word",
	Setting: "Setting",
	Close:   "Close",
}

var NameToCmd = map[string]Cmd{
	"Null":    Null,
	"Join":    Join,
	"Leave":   Leave,
	"Open":    Open,
	"Start":   Start,
	"Word":    Word,
	"Setting": Setting,
	"Close":   Close,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

// Event names what a session announces back to its host.
type Event int

const (
	EventNull Event = iota
	PlayerJoined
	PlayerLeft
	LobbyOpened
	GameStarted
	TurnStarted
	WordAccepted
	WordRejected
	Exploded
	GameWon
	GameClosed
	SettingChanged
	Rejected
)

var EventNames = map[Event]string{
	EventNull:      "EventNull",
	PlayerJoined:   "PlayerJoined",
	PlayerLeft:     "PlayerLeft",
	LobbyOpened:    "LobbyOpened",
	GameStarted:    "GameStarted",
	TurnStarted:    "TurnStarted",
	WordAccepted:   "WordAccepted",
	WordRejected:   "WordRejected",
	Exploded:       "Exploded",
	GameWon:        "GameWon",
	GameClosed:     "GameClosed",
	SettingChanged: "SettingChanged",
	Rejected:       "Rejected",
}

func (e Event) String() string {
	return EventNames[e]
}
