package game

import (
	"errors"
	"math/rand"
)

// ErrNoNextPlayer is returned by Advance when nobody else in the turn
// order has lives left. The caller should have declared a winner
// before asking for another turn.
var ErrNoNextPlayer = errors.New("no living player to pass the turn to")

// Scheduler owns the turn order. The order is a random permutation of
// the party frozen at start; eliminated players keep their slot and
// are skipped, so the permutation never changes shape mid-game.
type Scheduler struct {
	party *Party
	order []string
	idx   int
}

func NewScheduler(party *Party) *Scheduler {
	return &Scheduler{party: party}
}

// Start freezes the turn order as a shuffled copy of the current
// party and points the scheduler at the first slot.
func (s *Scheduler) Start(rng *rand.Rand) {
	s.order = s.party.Users()
	rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
	s.idx = 0
}

// Current returns the player whose turn it is, or nil before Start.
func (s *Scheduler) Current() *Player {
	if len(s.order) == 0 {
		return nil
	}
	p, ok := s.party.Get(s.order[s.idx])
	if !ok {
		return nil
	}
	return p
}

// Advance moves to the next living player, wrapping circularly and
// skipping eliminated slots. The turn must land on somebody else;
// scanning a full cycle without finding a living other player leaves
// the scheduler where it was and reports ErrNoNextPlayer.
func (s *Scheduler) Advance() error {
	if len(s.order) == 0 {
		return ErrNoNextPlayer
	}
	from := s.order[s.idx]
	for range s.order {
		s.idx++
		if s.idx == len(s.order) {
			s.idx = 0
		}
		if s.order[s.idx] == from {
			continue
		}
		if p, ok := s.party.Get(s.order[s.idx]); ok && !p.Dead() {
			return nil
		}
	}
	return ErrNoNextPlayer
}

// Order returns a copy of the frozen turn order.
func (s *Scheduler) Order() []string {
	order := make([]string, len(s.order))
	copy(order, s.order)
	return order
}

// Reset drops the frozen order.
func (s *Scheduler) Reset() {
	s.order = nil
	s.idx = 0
}
