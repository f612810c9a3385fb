// Package engine runs games as actors. A Session owns one Game and a
// fuse timer; inbound chat commands and timer fires are serialised
// onto a single goroutine, so the game state needs no locks.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/Sheepposu/bombparty/game"
	"github.com/Sheepposu/bombparty/protocol"
)

const outboundBuffer = 32

// Session drives one channel's bomb party. Create it with NewSession,
// feed it with Send and drain Events; a session that is not drained
// will eventually stall.
type Session struct {
	id      string
	channel string
	g       *game.Game
	clock   clockwork.Clock

	inboundCh  chan protocol.InboundMessage
	outboundCh chan protocol.OutboundMessage
	done       chan struct{}
	closeOnce  sync.Once

	// fuse is the bomb for the current turn, nil between rounds. Only
	// the Listen goroutine touches it.
	fuse clockwork.Timer
}

// NewSession constructs a session and starts its actor goroutine. A
// nil clock means the real one.
func NewSession(id, channel string, g *game.Game, clock clockwork.Clock) *Session {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &Session{
		id:         id,
		channel:    channel,
		g:          g,
		clock:      clock,
		inboundCh:  make(chan protocol.InboundMessage),
		outboundCh: make(chan protocol.OutboundMessage, outboundBuffer),
		done:       make(chan struct{}),
	}

	go s.Listen()

	log.Info().Str("session_id", id).Str("channel", channel).Msg("session started")
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Channel() string {
	return s.channel
}

// Send routes one inbound message to the actor. It blocks until the
// actor picks it up, or returns immediately after Shutdown.
func (s *Session) Send(msg protocol.InboundMessage) {
	select {
	case s.inboundCh <- msg:
	case <-s.done:
	}
}

// Events is the stream of announcements for the host to render.
func (s *Session) Events() <-chan protocol.OutboundMessage {
	return s.outboundCh
}

// Shutdown stops the actor goroutine. Safe to call more than once.
func (s *Session) Shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
		log.Info().Str("session_id", s.id).Str("channel", s.channel).Msg("session shut down")
	})
}

// Listen is the actor loop. It owns the Game and the fuse.
func (s *Session) Listen() {
	for {
		var fire <-chan time.Time
		if s.fuse != nil {
			fire = s.fuse.Chan()
		}

		select {
		case <-s.done:
			s.disarmFuse()
			return

		case msg := <-s.inboundCh:
			s.handle(msg)

		case <-fire:
			s.fuse = nil
			s.explode()
		}
	}
}

func (s *Session) handle(msg protocol.InboundMessage) {
	switch msg.Command {
	case protocol.Join:
		s.handleJoin(msg)
	case protocol.Leave:
		s.handleLeave(msg)
	case protocol.Open:
		s.handleOpen(msg)
	case protocol.Start:
		s.handleStart(msg)
	case protocol.Word:
		s.handleWord(msg)
	case protocol.Setting:
		s.handleSetting(msg)
	case protocol.Close:
		s.handleClose(msg)
	default:
		log.Warn().Str("channel", s.channel).Stringer("command", msg.Command).
			Msg("dropping unknown command")
	}
}

func (s *Session) emit(out protocol.OutboundMessage) {
	select {
	case s.outboundCh <- out:
	case <-s.done:
	}
}

func (s *Session) reject(user, why string) {
	s.emit(protocol.OutboundMessage{Event: protocol.Rejected, User: user, Message: why})
}

func (s *Session) handleJoin(msg protocol.InboundMessage) {
	if !s.g.InProgress() || s.g.Started() {
		s.reject(msg.User, "There is no party to join right now.")
		return
	}
	if !s.g.AddPlayer(msg.User) {
		s.reject(msg.User, "You are already in the party.")
		return
	}

	log.Info().Str("channel", s.channel).Str("user", msg.User).Msg("player joined")
	s.emit(protocol.OutboundMessage{
		Event:   protocol.PlayerJoined,
		User:    msg.User,
		Message: fmt.Sprintf("%s has joined the game!", msg.User),
	})
}

func (s *Session) handleLeave(msg protocol.InboundMessage) {
	if !s.g.HasPlayer(msg.User) {
		s.reject(msg.User, "You are not in the party.")
		return
	}

	wasCurrent := s.g.Started() && s.g.CurrentPlayer() != nil &&
		s.g.CurrentPlayer().User == msg.User

	s.g.RemovePlayer(msg.User)
	log.Info().Str("channel", s.channel).Str("user", msg.User).Msg("player left")
	s.emit(protocol.OutboundMessage{
		Event:   protocol.PlayerLeft,
		User:    msg.User,
		Message: fmt.Sprintf("%s has left the game.", msg.User),
	})

	if !s.g.Started() {
		return
	}
	if w := s.g.Winner(); w != nil {
		s.finish(w)
		return
	}
	// the bomb cannot stay with an eliminated player
	if wasCurrent {
		if err := s.g.NextPlayer(); err != nil {
			s.closeDeadGame()
			return
		}
		s.startTurn(s.g.DrawFragment())
	}
}

func (s *Session) handleOpen(msg protocol.InboundMessage) {
	if s.g.InProgress() || s.g.Started() {
		s.reject(msg.User, "A game is already underway.")
		return
	}

	s.g.OnInProgress()
	log.Info().Str("channel", s.channel).Msg("lobby opened")
	s.emit(protocol.OutboundMessage{
		Event:   protocol.LobbyOpened,
		User:    msg.User,
		Message: "A bomb party is forming! Join now to play.",
	})
}

func (s *Session) handleStart(msg protocol.InboundMessage) {
	if !s.g.InProgress() {
		s.reject(msg.User, "There is no party to start.")
		return
	}
	if s.g.Started() {
		s.reject(msg.User, "The game has already started.")
		return
	}
	if host, ok := s.g.Host(); ok && msg.User != host {
		s.reject(msg.User, "Only the host can start the game.")
		return
	}
	if !s.g.CanStart() {
		s.reject(msg.User, "The game needs at least 2 players to start.")
		return
	}

	s.g.OnStart()
	log.Info().Str("channel", s.channel).Strs("turn_order", s.g.TurnOrder()).
		Msg("game started")
	s.emit(protocol.OutboundMessage{
		Event:   protocol.GameStarted,
		Message: "The bomb is lit!",
		Players: s.g.TurnOrder(),
	})
	s.startTurn(s.g.DrawFragment())
}

func (s *Session) handleWord(msg protocol.InboundMessage) {
	if !s.g.Started() {
		return
	}
	cur := s.g.CurrentPlayer()
	if cur == nil || cur.User != msg.User {
		log.Debug().Str("channel", s.channel).Str("user", msg.User).
			Msg("ignoring word from player out of turn")
		return
	}

	if verdict := s.g.CheckMessage(msg.Word); verdict != "" {
		s.emit(protocol.OutboundMessage{
			Event:   protocol.WordRejected,
			User:    msg.User,
			Message: verdict,
		})
		return
	}

	if err := s.g.AcceptWord(msg.Word); err != nil {
		// nobody left to pass to; settle the game
		if w := s.g.Winner(); w != nil {
			s.finish(w)
		} else {
			s.closeDeadGame()
		}
		return
	}

	s.emit(protocol.OutboundMessage{Event: protocol.WordAccepted, User: msg.User})
	s.startTurn(s.g.DrawFragment())
}

func (s *Session) handleSetting(msg protocol.InboundMessage) {
	host, ok := s.g.Host()
	if !ok || msg.User != host {
		s.reject(msg.User, "Only the host can change settings.")
		return
	}

	outcome := s.g.SetSetting(msg.Setting, msg.Value)
	log.Info().Str("channel", s.channel).Str("setting", msg.Setting).
		Str("value", msg.Value).Msg("setting change requested")
	s.emit(protocol.OutboundMessage{
		Event:   protocol.SettingChanged,
		User:    msg.User,
		Message: outcome,
	})
}

func (s *Session) handleClose(msg protocol.InboundMessage) {
	if !s.g.InProgress() && !s.g.Started() {
		s.reject(msg.User, "There is no game to close.")
		return
	}
	if host, ok := s.g.Host(); ok && msg.User != host {
		s.reject(msg.User, "Only the host can close the game.")
		return
	}

	s.disarmFuse()
	s.g.OnClose()
	log.Info().Str("channel", s.channel).Msg("game closed")
	s.emit(protocol.OutboundMessage{
		Event:   protocol.GameClosed,
		Message: "The game has been closed.",
	})
}

// startTurn arms the fuse before announcing the turn, so tests that
// advance a fake clock after seeing the announcement catch the fuse.
func (s *Session) startTurn(fragment string) {
	cur := s.g.CurrentPlayer()
	if cur == nil {
		return
	}
	secs := s.g.SecondsLeft()
	s.armFuse(secs)

	log.Debug().Str("channel", s.channel).Str("user", cur.User).
		Str("fragment", fragment).Dur("fuse", secs).Msg("turn started")
	s.emit(protocol.OutboundMessage{
		Event:    protocol.TurnStarted,
		User:     cur.User,
		Fragment: fragment,
		Seconds:  secs.Seconds(),
		Message:  fmt.Sprintf("@%s you're up! Your word must contain: %s", cur.User, fragment),
	})
}

func (s *Session) explode() {
	announcement := s.g.OnExplode()
	cur := s.g.CurrentPlayer()
	user := ""
	if cur != nil {
		user = cur.User
	}
	log.Info().Str("channel", s.channel).Str("user", user).Msg("bomb exploded")
	s.emit(protocol.OutboundMessage{
		Event:   protocol.Exploded,
		User:    user,
		Message: announcement,
	})

	if w := s.g.Winner(); w != nil {
		s.finish(w)
		return
	}
	if err := s.g.NextPlayer(); err != nil {
		s.closeDeadGame()
		return
	}
	s.startTurn(s.g.DrawFragment())
}

// finish pays out the sole survivor and resets for the next lobby.
func (s *Session) finish(w *game.Player) {
	s.disarmFuse()
	winnings := s.g.WinningMoney()

	log.Info().Str("channel", s.channel).Str("user", w.User).
		Int("winnings", winnings).Msg("game won")
	s.emit(protocol.OutboundMessage{
		Event:    protocol.GameWon,
		User:     w.User,
		Winnings: winnings,
		Message:  fmt.Sprintf("@%s wins %d!", w.User, winnings),
	})

	s.g.OnClose()
	s.emit(protocol.OutboundMessage{Event: protocol.GameClosed})
}

// closeDeadGame shuts a game where nobody is left alive to win.
func (s *Session) closeDeadGame() {
	s.disarmFuse()
	s.g.OnClose()
	log.Info().Str("channel", s.channel).Msg("game closed with no survivors")
	s.emit(protocol.OutboundMessage{
		Event:   protocol.GameClosed,
		Message: "Everybody is out. The game is over.",
	})
}

func (s *Session) armFuse(d time.Duration) {
	s.disarmFuse()
	s.fuse = s.clock.NewTimer(d)
}

// disarmFuse stops the fuse and drains an already-fired tick so a
// stale explosion can never follow a live one.
func (s *Session) disarmFuse() {
	if s.fuse == nil {
		return
	}
	if !s.fuse.Stop() {
		select {
		case <-s.fuse.Chan():
		default:
		}
	}
	s.fuse = nil
}
