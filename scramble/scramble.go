// Package scramble implements a guess-the-word minigame: an answer is
// shuffled, players guess, and hints progressively reveal letters.
// Points scale with answer length and shrink as hints are spent.
package scramble

import (
	"errors"
	"strings"
)

// HintStyle selects how NextHint uncovers the answer.
type HintStyle int

const (
	// Sequential reveals letters strictly left to right.
	Sequential HintStyle = iota
	// EveryOther reveals alternate letters while adjacent pairs
	// remain hidden, then falls back to Sequential.
	EveryOther
)

// AnswerFunc produces a fresh answer for the named channel. It is
// free to hit an API or a dictionary; errors abort the round.
type AnswerFunc func(channel string) (string, error)

// ErrNoCleanAnswer is returned when the generator keeps producing
// banned answers.
var ErrNoCleanAnswer = errors.New("could not generate an unbanned answer")

const maxGenerateAttempts = 100

// Scramble is one guessing game. An answer of nil means no round is
// running. Hints operate on runes so multi-byte answers reveal whole
// characters.
type Scramble struct {
	name          string
	generate      AnswerFunc
	multiplier    float64
	style         HintStyle
	caseSensitive bool
	banned        map[string]struct{}

	answer []rune
	hint   []rune
	stop   func()
}

// Opts are the optional knobs for a Scramble. The zero value means a
// 1x multiplier, sequential hints, case-insensitive guessing and no
// banned answers.
type Opts struct {
	Multiplier    float64
	Style         HintStyle
	CaseSensitive bool
	Banned        []string
}

// New creates a scramble with no round in progress.
func New(name string, generate AnswerFunc, opts Opts) *Scramble {
	multiplier := opts.Multiplier
	if multiplier == 0 {
		multiplier = 1
	}

	banned := make(map[string]struct{}, len(opts.Banned))
	for _, w := range opts.Banned {
		banned[w] = struct{}{}
	}

	return &Scramble{
		name:          name,
		generate:      generate,
		multiplier:    multiplier,
		style:         opts.Style,
		caseSensitive: opts.CaseSensitive,
		banned:        banned,
	}
}

func (s *Scramble) Name() string {
	return s.name
}

// InProgress reports whether a round is running.
func (s *Scramble) InProgress() bool {
	return s.answer != nil
}

// HintsLeft reports whether any letter is still hidden.
func (s *Scramble) HintsLeft() bool {
	for _, r := range s.hint {
		if r == '?' {
			return true
		}
	}
	return false
}

// Answer is the current round's answer, "" if no round is running.
func (s *Scramble) Answer() string {
	return string(s.answer)
}

// Hint is the current hint mask without revealing anything further.
func (s *Scramble) Hint() string {
	return string(s.hint)
}

// NewAnswer starts a round: it draws answers from the generator until
// one clears the banned list, then hides every letter.
func (s *Scramble) NewAnswer(channel string) error {
	for attempts := 0; ; attempts++ {
		answer, err := s.generate(channel)
		if err != nil {
			return err
		}
		if _, bad := s.banned[answer]; !bad {
			s.answer = []rune(answer)
			break
		}
		if attempts >= maxGenerateAttempts {
			return ErrNoCleanAnswer
		}
	}

	s.hint = make([]rune, len(s.answer))
	for i := range s.hint {
		s.hint[i] = '?'
	}
	return nil
}

// NextHint reveals one more letter according to the hint style and
// returns the updated mask.
func (s *Scramble) NextHint() string {
	switch s.style {
	case EveryOther:
		s.everyOtherHint()
	default:
		s.sequentialHint()
	}
	return string(s.hint)
}

// revealAt uncovers position i and re-hides everything after it.
func (s *Scramble) revealAt(i int) {
	hint := make([]rune, len(s.answer))
	copy(hint, s.hint[:i])
	hint[i] = s.answer[i]
	for j := i + 1; j < len(hint); j++ {
		hint[j] = '?'
	}
	s.hint = hint
}

func (s *Scramble) sequentialHint() {
	for i, r := range s.hint {
		if r == '?' {
			s.revealAt(i)
			return
		}
	}
}

// everyOtherHint uncovers the second letter of the first hidden pair,
// which alternates reveals across the answer. Once no pair is left it
// behaves like sequentialHint.
func (s *Scramble) everyOtherHint() {
	for i := 0; i+1 < len(s.hint); i++ {
		if s.hint[i] == '?' && s.hint[i+1] == '?' {
			s.revealAt(i + 1)
			return
		}
	}
	s.sequentialHint()
}

// matches judges a guess against the answer.
func (s *Scramble) matches(guess string) bool {
	answer := string(s.answer)
	if guess == answer {
		return true
	}
	return !s.caseSensitive && strings.EqualFold(guess, answer)
}

// Arm registers a cancel hook for the round's timeout, replacing any
// previous one.
func (s *Scramble) Arm(stop func()) {
	s.stop = stop
}

// Reset abandons the round and cancels its timeout.
func (s *Scramble) Reset() {
	s.answer = nil
	s.hint = nil
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}
