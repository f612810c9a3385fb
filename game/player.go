package game

import "strings"

// Player is one participant in the party. The user token comes from
// the host and is never inspected beyond equality.
type Player struct {
	User  string
	Lives int
}

// Dead reports whether the player has been eliminated.
func (p *Player) Dead() bool {
	return p.Lives == 0
}

func (p *Player) String() string {
	return p.User + " (" + strings.Repeat("♥", p.Lives) + ")"
}

// Party tracks every participant and their join order. Go maps do not
// preserve insertion order, so the order slice is authoritative for
// host selection and for building the turn order.
type Party struct {
	players map[string]*Player
	order   []string
}

func NewParty() *Party {
	return &Party{players: map[string]*Player{}}
}

// Add inserts a new player with the given number of lives. Adding a
// user who is already in the party is a no-op and returns false.
func (pt *Party) Add(user string, lives int) bool {
	if _, ok := pt.players[user]; ok {
		return false
	}
	pt.players[user] = &Player{User: user, Lives: lives}
	pt.order = append(pt.order, user)
	return true
}

// Remove deletes the player outright, shrinking the join order. Only
// legal before the turn order is frozen; once a game has started,
// eliminate by zeroing lives instead.
func (pt *Party) Remove(user string) {
	if _, ok := pt.players[user]; !ok {
		return
	}
	delete(pt.players, user)
	for i, u := range pt.order {
		if u == user {
			pt.order = append(pt.order[:i], pt.order[i+1:]...)
			break
		}
	}
}

func (pt *Party) Get(user string) (*Player, bool) {
	p, ok := pt.players[user]
	return p, ok
}

func (pt *Party) Has(user string) bool {
	_, ok := pt.players[user]
	return ok
}

// Host returns the earliest joiner still in the party.
func (pt *Party) Host() (string, bool) {
	if len(pt.order) == 0 {
		return "", false
	}
	return pt.order[0], true
}

// Players returns every player in join order.
func (pt *Party) Players() []*Player {
	ps := make([]*Player, 0, len(pt.order))
	for _, user := range pt.order {
		ps = append(ps, pt.players[user])
	}
	return ps
}

// Users returns the party's user tokens in join order.
func (pt *Party) Users() []string {
	users := make([]string, len(pt.order))
	copy(users, pt.order)
	return users
}

// Alive returns the players with lives remaining, in join order.
func (pt *Party) Alive() []*Player {
	alive := []*Player{}
	for _, p := range pt.Players() {
		if !p.Dead() {
			alive = append(alive, p)
		}
	}
	return alive
}

func (pt *Party) Len() int {
	return len(pt.players)
}

// Reset empties the party.
func (pt *Party) Reset() {
	pt.players = map[string]*Player{}
	pt.order = nil
}
