package scramble

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	utils "github.com/Sheepposu/bombparty/internal"
)

func newTestManager(t *testing.T, seed int64) *Manager {
	t.Helper()

	return NewManager(rand.New(rand.NewSource(seed)), map[string]*Scramble{
		"word": New("word", fixedAnswer("elephant"), Opts{}),
		"big":  New("big phrase", fixedAnswer("big cat"), Opts{Multiplier: 2}),
	})
}

func TestManagerStart(t *testing.T) {
	t.Run("start hands back a shuffle of the answer", func(t *testing.T) {
		m := newTestManager(t, 1)

		shuffled, err := m.Start("word", "chan")
		utils.AssertNoError(t, err)

		utils.AssertEqual(t, len(shuffled), len("elephant"))
		assert.ElementsMatch(t, []rune(shuffled), []rune("elephant"))
		utils.AssertTrue(t, m.InProgress("word"))
		utils.AssertTrue(t, m.HintsLeft("word"))
	})

	t.Run("identifiers are independent", func(t *testing.T) {
		m := newTestManager(t, 1)
		_, err := m.Start("word", "chan")
		utils.AssertNoError(t, err)

		assert.False(t, m.InProgress("big"))
	})

	t.Run("unknown identifiers are refused", func(t *testing.T) {
		m := newTestManager(t, 1)
		_, err := m.Start("trivia", "chan")
		utils.AssertEqual(t, err, ErrUnknownScramble)
		assert.False(t, m.InProgress("trivia"))
	})
}

func TestManagerAccessors(t *testing.T) {
	m := newTestManager(t, 2)
	_, err := m.Start("big", "chan")
	utils.AssertNoError(t, err)

	name, err := m.Name("big")
	utils.AssertNoError(t, err)
	utils.AssertEqual(t, name, "big phrase")

	answer, err := m.Answer("big")
	utils.AssertNoError(t, err)
	utils.AssertEqual(t, answer, "big cat")

	hint, err := m.Hint("big")
	utils.AssertNoError(t, err)
	utils.AssertEqual(t, hint, "b??????")

	_, err = m.Name("trivia")
	utils.AssertErrored(t, err)
}

func TestManagerCheckAnswer(t *testing.T) {
	t.Run("wrong guesses score nothing", func(t *testing.T) {
		m := newTestManager(t, 3)
		_, err := m.Start("word", "chan")
		utils.AssertNoError(t, err)

		points, correct, err := m.CheckAnswer("word", "rhinoceros")
		utils.AssertNoError(t, err)
		assert.False(t, correct)
		utils.AssertEqual(t, points, 0)
	})

	t.Run("guesses with no round running score nothing", func(t *testing.T) {
		m := newTestManager(t, 3)

		_, correct, err := m.CheckAnswer("word", "elephant")
		utils.AssertNoError(t, err)
		assert.False(t, correct)
	})

	t.Run("a correct guess with every letter hidden scores full points", func(t *testing.T) {
		m := newTestManager(t, 3)
		_, err := m.Start("word", "chan")
		utils.AssertNoError(t, err)

		points, correct, err := m.CheckAnswer("word", "ELEPHANT")
		utils.AssertNoError(t, err)
		utils.AssertTrue(t, correct)
		// 5..10 x 8 letters x 1.0 hidden x 1.0 multiplier
		utils.AssertTrue(t, points >= 40)
		utils.AssertTrue(t, points <= 80)
	})

	t.Run("spent hints shrink the score", func(t *testing.T) {
		m := newTestManager(t, 4)
		_, err := m.Start("word", "chan")
		utils.AssertNoError(t, err)

		for i := 0; i < 4; i++ {
			_, err := m.Hint("word")
			utils.AssertNoError(t, err)
		}

		points, correct, err := m.CheckAnswer("word", "elephant")
		utils.AssertNoError(t, err)
		utils.AssertTrue(t, correct)
		// half the letters are showing
		utils.AssertTrue(t, points >= 20)
		utils.AssertTrue(t, points <= 40)
	})

	t.Run("a fully revealed answer scores zero", func(t *testing.T) {
		m := newTestManager(t, 4)
		_, err := m.Start("word", "chan")
		utils.AssertNoError(t, err)

		for i := 0; i < len("elephant"); i++ {
			_, err := m.Hint("word")
			utils.AssertNoError(t, err)
		}
		assert.False(t, m.HintsLeft("word"))

		points, correct, err := m.CheckAnswer("word", "elephant")
		utils.AssertNoError(t, err)
		utils.AssertTrue(t, correct)
		utils.AssertEqual(t, points, 0)
	})

	t.Run("multipliers and spaces both count", func(t *testing.T) {
		m := newTestManager(t, 5)
		_, err := m.Start("big", "chan")
		utils.AssertNoError(t, err)

		points, correct, err := m.CheckAnswer("big", "big cat")
		utils.AssertNoError(t, err)
		utils.AssertTrue(t, correct)
		// 5..10 x 6 letters (space ignored) x 1.0 hidden x 2.0
		utils.AssertTrue(t, points >= 60)
		utils.AssertTrue(t, points <= 120)
	})

	t.Run("unknown identifiers are refused", func(t *testing.T) {
		m := newTestManager(t, 5)
		_, _, err := m.CheckAnswer("trivia", "anything")
		utils.AssertEqual(t, err, ErrUnknownScramble)
	})
}

func TestManagerReset(t *testing.T) {
	m := newTestManager(t, 6)
	_, err := m.Start("word", "chan")
	utils.AssertNoError(t, err)

	stopped := false
	m.Arm("word", func() { stopped = true })
	m.Reset("word")

	assert.False(t, m.InProgress("word"))
	utils.AssertTrue(t, stopped)

	// resetting something unknown is harmless
	m.Reset("trivia")
	m.Arm("trivia", func() {})
}
