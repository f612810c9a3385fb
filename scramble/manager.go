package scramble

import (
	"errors"
	"math"
	"math/rand"
	"strings"
)

// ErrUnknownScramble is returned for identifiers nothing was
// registered under.
var ErrUnknownScramble = errors.New("no scramble registered under that identifier")

// Manager runs a fixed set of scrambles keyed by identifier, for
// example "word" or "map". All randomness, shuffling the answer and
// rolling the score, comes from the injected source.
type Manager struct {
	rng       *rand.Rand
	scrambles map[string]*Scramble
}

func NewManager(rng *rand.Rand, scrambles map[string]*Scramble) *Manager {
	return &Manager{rng: rng, scrambles: scrambles}
}

func (m *Manager) find(id string) (*Scramble, error) {
	s, ok := m.scrambles[id]
	if !ok {
		return nil, ErrUnknownScramble
	}
	return s, nil
}

// Start begins a round for the identifier and returns the shuffled
// answer to display. The shuffle may coincidentally match the answer
// for very short words; that is the player's lucky day.
func (m *Manager) Start(id, channel string) (string, error) {
	s, err := m.find(id)
	if err != nil {
		return "", err
	}
	if err := s.NewAnswer(channel); err != nil {
		return "", err
	}

	shuffled := []rune(s.Answer())
	m.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return string(shuffled), nil
}

// Hint reveals one more letter and returns the updated mask.
func (m *Manager) Hint(id string) (string, error) {
	s, err := m.find(id)
	if err != nil {
		return "", err
	}
	return s.NextHint(), nil
}

// Name returns the scramble's display name.
func (m *Manager) Name(id string) (string, error) {
	s, err := m.find(id)
	if err != nil {
		return "", err
	}
	return s.Name(), nil
}

// Answer returns the current answer, for revealing when time is up.
func (m *Manager) Answer(id string) (string, error) {
	s, err := m.find(id)
	if err != nil {
		return "", err
	}
	return s.Answer(), nil
}

// InProgress reports whether the identifier has a running round.
// Unknown identifiers are simply not in progress.
func (m *Manager) InProgress(id string) bool {
	s, ok := m.scrambles[id]
	return ok && s.InProgress()
}

// HintsLeft reports whether the identifier's round has anything left
// to reveal.
func (m *Manager) HintsLeft(id string) bool {
	s, ok := m.scrambles[id]
	return ok && s.HintsLeft()
}

// CheckAnswer scores a guess. A correct guess earns
//
//	roll(5..10) x letters(answer) x hidden fraction x multiplier
//
// rounded to the nearest point, where letters ignores spaces but the
// hidden fraction does not. Wrong guesses, and guesses when no round
// is running, score nothing.
func (m *Manager) CheckAnswer(id, guess string) (int, bool, error) {
	s, err := m.find(id)
	if err != nil {
		return 0, false, err
	}
	if !s.InProgress() || !s.matches(guess) {
		return 0, false, nil
	}

	answer := s.Answer()
	letters := len([]rune(strings.ReplaceAll(answer, " ", "")))
	hidden := 0
	for _, r := range s.hint {
		if r == '?' {
			hidden++
		}
	}

	score := float64(5+m.rng.Intn(6)) *
		float64(letters) *
		(float64(hidden) / float64(len(s.answer))) *
		s.multiplier
	return int(math.Round(score)), true, nil
}

// Reset abandons the identifier's round, if any.
func (m *Manager) Reset(id string) {
	if s, ok := m.scrambles[id]; ok {
		s.Reset()
	}
}

// Arm registers the cancel hook for the identifier's round timeout.
func (m *Manager) Arm(id string, stop func()) {
	if s, ok := m.scrambles[id]; ok {
		s.Arm(stop)
	}
}
