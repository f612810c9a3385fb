// Package store tracks the live game session for each channel.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"

	"github.com/Sheepposu/bombparty/engine"
	"github.com/Sheepposu/bombparty/game"
)

var (
	ErrUnknownChannel = errors.New("no session for that channel")
	ErrFnChannelTaken = func(channel string) error {
		return fmt.Errorf("channel %q already has a session", channel)
	}
)

// SessionStore is what hosts use to look up and manage sessions.
type SessionStore interface {
	Find(channel string) (*engine.Session, bool)
	Create(channel string, opts game.Opts) (*engine.Session, error)
	End(channel string) error
	Channels() []string
	Len() int
}

// InMemorySessionStore maps channel names to running sessions. All
// methods are safe for concurrent use.
type InMemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*engine.Session
	clock    clockwork.Clock
}

// NewInMemorySessionStore constructs an empty store. The clock seeds
// every session created through it; nil means the real clock.
func NewInMemorySessionStore(clock clockwork.Clock) *InMemorySessionStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &InMemorySessionStore{
		sessions: map[string]*engine.Session{},
		clock:    clock,
	}
}

func (s *InMemorySessionStore) Find(channel string) (*engine.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[channel]
	return sess, ok
}

// Create builds a game from opts and starts a session for the
// channel. A channel gets at most one session at a time.
func (s *InMemorySessionStore) Create(channel string, opts game.Opts) (*engine.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[channel]; exists {
		return nil, ErrFnChannelTaken(channel)
	}

	if opts.Clock == nil {
		opts.Clock = s.clock
	}
	g, err := game.New(opts)
	if err != nil {
		return nil, err
	}

	sess := engine.NewSession(uuid.NewV4().String(), channel, g, opts.Clock)
	s.sessions[channel] = sess
	log.Info().Str("session_id", sess.ID()).Str("channel", channel).
		Int("sessions", len(s.sessions)).Msg("session created")
	return sess, nil
}

// End shuts the channel's session down and forgets it.
func (s *InMemorySessionStore) End(channel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[channel]
	if !ok {
		return ErrUnknownChannel
	}

	sess.Shutdown()
	delete(s.sessions, channel)
	log.Info().Str("session_id", sess.ID()).Str("channel", channel).
		Int("sessions", len(s.sessions)).Msg("session ended")
	return nil
}

// Channels lists the channels with live sessions, sorted.
func (s *InMemorySessionStore) Channels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := make([]string, 0, len(s.sessions))
	for c := range s.sessions {
		channels = append(channels, c)
	}
	sort.Strings(channels)
	return channels
}

func (s *InMemorySessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
