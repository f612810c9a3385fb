package protocol

// InboundMessage is one chat action routed into a game session. Only
// the fields the command needs are set.
type InboundMessage struct {
	User    string `json:"user"`
	Command Cmd    `json:"command"`
	Word    string `json:"word,omitempty"`
	Setting string `json:"setting,omitempty"`
	Value   string `json:"value,omitempty"`
}

// OutboundMessage is one session announcement for the host to render.
// Message is always displayable as-is; the other fields carry the
// structured values hosts may want to format themselves.
type OutboundMessage struct {
	Event    Event    `json:"event"`
	User     string   `json:"user,omitempty"`
	Message  string   `json:"message,omitempty"`
	Fragment string   `json:"fragment,omitempty"`
	Seconds  float64  `json:"seconds,omitempty"`
	Winnings int      `json:"winnings,omitempty"`
	Players  []string `json:"players,omitempty"`
}
