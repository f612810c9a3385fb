package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	utils "github.com/Sheepposu/bombparty/internal"
	"github.com/Sheepposu/bombparty/letters"
)

// testLetterPool has a couple of fragments in every tier so seeded
// games stay predictable.
func testLetterPool(t *testing.T) *letters.Pool {
	t.Helper()

	two := map[string]int{
		"an": 12000,
		"er": 15000,
		"ok": 7000,
		"vy": 2000,
		"xu": 800,
		"qz": 30,
	}
	three := map[string]int{
		"ing": 11000,
		"ote": 5500,
		"ism": 1500,
		"wry": 600,
		"zzz": 12,
	}

	pool, err := letters.NewPool(two, three)
	utils.AssertNoError(t, err)
	return pool
}

// onlyFragmentPool has exactly one fragment per tier, for tests that
// need to know the fragment in advance.
func onlyFragmentPool(t *testing.T) *letters.Pool {
	t.Helper()

	pool, err := letters.NewPool(map[string]int{
		"an": 20000,
		"ok": 7000,
		"vy": 2000,
		"xu": 700,
		"qz": 30,
	}, nil)
	utils.AssertNoError(t, err)
	return pool
}

func newTestGame(t *testing.T, seed int64, users ...string) (*Game, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	g, err := New(Opts{
		Pool:  testLetterPool(t),
		RNG:   rand.New(rand.NewSource(seed)),
		Clock: clock,
	})
	utils.AssertNoError(t, err)

	for _, u := range users {
		g.AddPlayer(u)
	}
	return g, clock
}

func TestNewGame(t *testing.T) {
	t.Run("zero options fall back to real defaults", func(t *testing.T) {
		g, err := New(Opts{})
		utils.AssertNoError(t, err)

		utils.AssertEqual(t, g.Phase(), "idle")
		assert.False(t, g.InProgress())
		assert.False(t, g.Started())
		utils.AssertEqual(t, g.Settings().Timer, 30)
		utils.AssertNotEmptyString(t, g.DrawFragment())
	})

	t.Run("too few players cannot start", func(t *testing.T) {
		g, _ := newTestGame(t, 1, "ana")
		assert.False(t, g.CanStart())

		g.AddPlayer("bob")
		utils.AssertTrue(t, g.CanStart())
	})
}

func TestGameJoining(t *testing.T) {
	t.Run("joiners get the configured number of lives", func(t *testing.T) {
		g, _ := newTestGame(t, 1)
		g.SetSetting("lives", "5")

		utils.AssertTrue(t, g.AddPlayer("ana"))

		ps := g.PlayerList()
		utils.AssertEqual(t, len(ps), 1)
		utils.AssertEqual(t, ps[0].Lives, 5)
	})

	t.Run("joining twice changes nothing", func(t *testing.T) {
		g, _ := newTestGame(t, 1, "ana")
		assert.False(t, g.AddPlayer("ana"))
		utils.AssertEqual(t, len(g.PlayerList()), 1)
	})

	t.Run("leaving before the start removes the player", func(t *testing.T) {
		g, _ := newTestGame(t, 1, "ana", "bob")
		g.RemovePlayer("ana")

		utils.AssertEqual(t, len(g.PlayerList()), 1)
		host, ok := g.Host()
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, host, "bob")
	})

	t.Run("leaving a started game eliminates in place", func(t *testing.T) {
		g, _ := newTestGame(t, 1, "ana", "bob", "cat")
		g.OnInProgress()
		g.OnStart()

		g.RemovePlayer("bob")

		utils.AssertEqual(t, len(g.PlayerList()), 3)
		utils.AssertEqual(t, len(g.TurnOrder()), 3)
		bob, ok := g.party.Get("bob")
		utils.AssertTrue(t, ok)
		utils.AssertTrue(t, bob.Dead())
	})

	t.Run("removing a stranger is a no-op", func(t *testing.T) {
		g, _ := newTestGame(t, 1, "ana")
		g.RemovePlayer("nobody")
		utils.AssertEqual(t, len(g.PlayerList()), 1)
	})
}

func TestGameLifecycle(t *testing.T) {
	t.Run("opening the lobby", func(t *testing.T) {
		g, _ := newTestGame(t, 2, "ana", "bob")
		g.OnInProgress()

		utils.AssertTrue(t, g.InProgress())
		assert.False(t, g.Started())
		utils.AssertEqual(t, g.Phase(), "lobby")
	})

	t.Run("starting freezes a shuffled turn order and arms the fuse", func(t *testing.T) {
		g, _ := newTestGame(t, 2, "ana", "bob", "cat")
		g.OnInProgress()
		g.OnStart()

		utils.AssertTrue(t, g.Started())
		utils.AssertEqual(t, g.Phase(), "active")
		assert.ElementsMatch(t, g.TurnOrder(), []string{"ana", "bob", "cat"})
		utils.AssertNotNil(t, g.CurrentPlayer())
		utils.AssertEqual(t, g.CurrentPlayer().User, g.TurnOrder()[0])
		utils.AssertTrue(t, g.countdown.Armed())
		utils.AssertEqual(t, g.SecondsLeft(), 35*time.Second)
	})

	t.Run("closing resets everything including settings", func(t *testing.T) {
		g, clock := newTestGame(t, 2, "ana", "bob")
		g.SetSetting("timer", "60")
		g.SetSetting("lives", "1")
		g.OnInProgress()
		g.OnStart()
		g.DrawFragment()
		clock.Advance(8 * time.Second)
		utils.AssertNoError(t, g.AcceptWord(g.Fragment()+"s"))

		g.OnClose()

		utils.AssertEqual(t, g.Phase(), "idle")
		assert.False(t, g.InProgress())
		assert.False(t, g.Started())
		utils.AssertEqual(t, len(g.PlayerList()), 0)
		utils.AssertEqual(t, len(g.TurnOrder()), 0)
		utils.AssertEmptyString(t, g.Fragment())
		utils.AssertEqual(t, g.Settings().Timer, 30)
		utils.AssertEqual(t, g.Settings().Lives, 3)
		utils.AssertEqual(t, g.SecondsLeft(), 35*time.Second)
		utils.AssertEqual(t, len(g.usedWords), 0)

		// a fresh lobby works immediately
		g.AddPlayer("dan")
		utils.AssertEqual(t, g.PlayerList()[0].Lives, 3)
	})
}

func TestGameFragments(t *testing.T) {
	t.Run("fragments come from the configured difficulty", func(t *testing.T) {
		pool := testLetterPool(t)
		g, err := New(Opts{Pool: pool, RNG: rand.New(rand.NewSource(9))})
		utils.AssertNoError(t, err)

		for _, tier := range letters.Tiers() {
			g.SetSetting("difficulty", tier.String())
			for i := 0; i < 10; i++ {
				assert.Contains(t, pool.Fragments(tier), g.DrawFragment())
			}
		}
	})

	t.Run("drawing replaces the current fragment", func(t *testing.T) {
		g, _ := newTestGame(t, 3)
		first := g.DrawFragment()
		utils.AssertEqual(t, g.Fragment(), first)
	})
}

func TestGameCheckMessage(t *testing.T) {
	newKnownFragmentGame := func(t *testing.T) *Game {
		t.Helper()
		g, err := New(Opts{Pool: onlyFragmentPool(t), RNG: rand.New(rand.NewSource(4))})
		utils.AssertNoError(t, err)
		g.SetSetting("difficulty", "easy")
		utils.AssertEqual(t, g.DrawFragment(), "an")
		return g
	}

	t.Run("an unused word containing the fragment passes", func(t *testing.T) {
		g := newKnownFragmentGame(t)
		utils.AssertEmptyString(t, g.CheckMessage("banana"))
		utils.AssertEmptyString(t, g.CheckMessage("BANANA"))
	})

	t.Run("used words are rejected however they are cased", func(t *testing.T) {
		g := newKnownFragmentGame(t)
		g.usedWords["banana"] = struct{}{}

		utils.AssertEqual(t, g.CheckMessage("BaNaNa"), "That word has already been used.")
		utils.AssertEqual(t, g.CheckMessage("banana"), "That word has already been used.")
	})

	t.Run("words missing the fragment name the fragment", func(t *testing.T) {
		g := newKnownFragmentGame(t)
		utils.AssertEqual(t, g.CheckMessage("oops"),
			"That word does not contain your string of letters: an")
	})

	t.Run("answering with the fragment itself is rejected", func(t *testing.T) {
		g := newKnownFragmentGame(t)
		utils.AssertEqual(t, g.CheckMessage("an"),
			"You cannot answer with the string of letters itself.")
		utils.AssertEqual(t, g.CheckMessage("AN"),
			"You cannot answer with the string of letters itself.")
	})
}
