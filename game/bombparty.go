// Package game implements the core of a chat-hosted word bomb game:
// a party of players, a shared decaying countdown, a frozen random
// turn order and the rules for judging answers. It never talks to a
// network or ticks a timer itself; a host drives it by calling the
// lifecycle methods and displaying the strings it returns.
package game

import (
	"math/rand"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Sheepposu/bombparty/letters"
)

// MinPlayers is the smallest party a game can start with.
const MinPlayers = 2

// MoneyPerPlayer is each party member's contribution to the pot.
const MoneyPerPlayer = 100

// Game is one bomb party from lobby to winner. All methods are for a
// single goroutine; hosts that juggle timers wrap a Game in their own
// loop (see the engine package).
type Game struct {
	rng   *rand.Rand
	clock clockwork.Clock
	pool  *letters.Pool

	settings  *Settings
	party     *Party
	scheduler *Scheduler
	countdown *Countdown

	inProgress bool
	started    bool
	usedWords  map[string]struct{}
	fragment   string
}

// Opts are the injectable parts of a Game. Zero values get sensible
// defaults: the embedded letter pool, a time-seeded RNG and the real
// clock. Tests inject all three.
type Opts struct {
	Pool  *letters.Pool
	RNG   *rand.Rand
	Clock clockwork.Clock
}

// New constructs a game in the idle state.
func New(opts Opts) (*Game, error) {
	pool := opts.Pool
	if pool == nil {
		var err error
		pool, err = letters.Default()
		if err != nil {
			return nil, err
		}
	}

	rng := opts.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	g := &Game{
		rng:       rng,
		clock:     clock,
		pool:      pool,
		party:     NewParty(),
		usedWords: map[string]struct{}{},
	}
	g.settings = NewSettings(g.redealLives)
	g.scheduler = NewScheduler(g.party)
	g.countdown = NewCountdown(g.settings, clock)

	return g, nil
}

// redealLives applies a committed lives setting to everybody,
// including eliminated players.
func (g *Game) redealLives(lives int) {
	for _, p := range g.party.Players() {
		p.Lives = lives
	}
}

// AddPlayer brings a user into the party with the configured number
// of lives. Joining twice is a no-op; the report says whether the
// user is new.
func (g *Game) AddPlayer(user string) bool {
	return g.party.Add(user, g.settings.Lives)
}

// RemovePlayer takes a user out of the game. Before the turn order is
// frozen they leave the party entirely; afterwards they are
// eliminated in place so the turn order keeps its shape.
func (g *Game) RemovePlayer(user string) {
	p, ok := g.party.Get(user)
	if !ok {
		return
	}
	if g.started {
		p.Lives = 0
		return
	}
	g.party.Remove(user)
}

// OnInProgress marks the lobby as open.
func (g *Game) OnInProgress() {
	g.inProgress = true
}

// OnStart freezes a shuffled turn order, fills the countdown and
// starts the first turn's stopwatch.
func (g *Game) OnStart() {
	g.scheduler.Start(g.rng)
	g.countdown.Refill()
	g.countdown.Rearm()
	g.started = true
}

// OnClose throws away the whole game state, settings included, ready
// for a fresh lobby.
func (g *Game) OnClose() {
	g.inProgress = false
	g.started = false
	g.usedWords = map[string]struct{}{}
	g.party.Reset()
	g.scheduler.Reset()
	g.fragment = ""
	g.settings.Reset()
	g.countdown.Refill()
	g.countdown.Disarm()
}

// DrawFragment picks the letter fragment for the next turn from the
// configured difficulty.
func (g *Game) DrawFragment() string {
	g.fragment = g.pool.Pick(g.settings.Difficulty, g.rng)
	return g.fragment
}

// Fragment is the letter fragment answers currently must contain.
func (g *Game) Fragment() string {
	return g.fragment
}

// CheckMessage judges an answer against the current fragment and the
// words already used. It returns the rejection to show the player, or
// "" if the answer is good. Matching is case-insensitive.
func (g *Game) CheckMessage(text string) string {
	word := strings.ToLower(text)
	if _, used := g.usedWords[word]; used {
		return msgWordAlreadyUsed
	}
	if !strings.Contains(word, g.fragment) {
		return missingFragmentMessage(g.fragment)
	}
	if len(word) == len(g.fragment) {
		return msgWordIsFragment
	}
	return ""
}

// AcceptWord commits an answer CheckMessage approved of: the word is
// burned, the countdown decays by the turn's overrun and the turn
// passes on. The word is stored lowercased so later checks are
// case-insensitive.
func (g *Game) AcceptWord(text string) error {
	g.countdown.OnWordUsed(g.countdown.Elapsed())
	g.usedWords[strings.ToLower(text)] = struct{}{}
	return g.NextPlayer()
}

// NextPlayer passes the turn to the next living player and restarts
// the turn stopwatch.
func (g *Game) NextPlayer() error {
	if err := g.scheduler.Advance(); err != nil {
		return err
	}
	g.countdown.Rearm()
	return nil
}

// OnExplode charges the current player a life and resets the
// countdown to full for the turns that follow. It returns the
// announcement for the host to display.
func (g *Game) OnExplode() string {
	g.countdown.OnExplode()
	p := g.scheduler.Current()
	if p == nil {
		return ""
	}
	if p.Lives > 0 {
		p.Lives--
	}
	return explosionMessage(p)
}

// Winner returns the last player standing, or nil while the game is
// still contested. Nobody wins a game where everybody is dead.
func (g *Game) Winner() *Player {
	alive := g.party.Alive()
	if len(alive) == 1 {
		return alive[0]
	}
	return nil
}

// CurrentPlayer is the player holding the bomb, nil before the turn
// order is frozen.
func (g *Game) CurrentPlayer() *Player {
	return g.scheduler.Current()
}

// HasPlayer reports whether the user is in the party, alive or not.
func (g *Game) HasPlayer(user string) bool {
	return g.party.Has(user)
}

// CanStart reports whether enough players have joined.
func (g *Game) CanStart() bool {
	return g.party.Len() >= MinPlayers
}

// Host is the earliest joiner still in the party.
func (g *Game) Host() (string, bool) {
	return g.party.Host()
}

// PlayerList returns the party in join order.
func (g *Game) PlayerList() []*Player {
	return g.party.Players()
}

// TurnOrder returns a copy of the frozen turn order, empty before
// OnStart.
func (g *Game) TurnOrder() []string {
	return g.scheduler.Order()
}

// WinningMoney is the pot the winner takes, scaled by party size.
// Eliminated players still count; they paid in.
func (g *Game) WinningMoney() int {
	return g.party.Len() * MoneyPerPlayer
}

// SecondsLeft is the longest the current turn can run before the bomb
// goes off.
func (g *Game) SecondsLeft() time.Duration {
	return g.countdown.SecondsLeft()
}

// StartingTime is the fuse length for the turn about to begin.
func (g *Game) StartingTime() time.Duration {
	return g.countdown.StartingTime()
}

// SetSetting routes raw player input into the settings store and
// returns the outcome message to display.
func (g *Game) SetSetting(name, raw string) string {
	return g.settings.Set(name, raw)
}

// Settings exposes the live settings store.
func (g *Game) Settings() *Settings {
	return g.settings
}

func (g *Game) InProgress() bool {
	return g.inProgress
}

func (g *Game) Started() bool {
	return g.started
}

// Phase names the lifecycle stage for logs and status lines.
func (g *Game) Phase() string {
	switch {
	case g.started:
		return "active"
	case g.inProgress:
		return "lobby"
	default:
		return "idle"
	}
}
