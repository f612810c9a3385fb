package store

import (
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/Sheepposu/bombparty/game"
	utils "github.com/Sheepposu/bombparty/internal"
)

func TestInMemorySessionStore(t *testing.T) {
	t.Run("constructor prevents nil struct members", func(t *testing.T) {
		str := NewInMemorySessionStore(nil)
		if str.sessions == nil {
			t.Error("sessions was nil")
		}
		utils.AssertEqual(t, str.Len(), 0)
	})

	t.Run("created sessions can be found again", func(t *testing.T) {
		str := NewInMemorySessionStore(clockwork.NewFakeClock())

		sess, err := str.Create("somechannel", game.Opts{})
		utils.AssertNoError(t, err)
		utils.AssertNotNil(t, sess)
		defer sess.Shutdown()

		found, ok := str.Find("somechannel")
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, found, sess)
		utils.AssertEqual(t, found.Channel(), "somechannel")
		utils.AssertNotEmptyString(t, found.ID())
	})

	t.Run("a channel gets at most one session", func(t *testing.T) {
		str := NewInMemorySessionStore(clockwork.NewFakeClock())

		sess, err := str.Create("somechannel", game.Opts{})
		utils.AssertNoError(t, err)
		defer sess.Shutdown()

		_, err = str.Create("somechannel", game.Opts{})
		utils.AssertErrored(t, err)
		utils.AssertContains(t, err.Error(), "somechannel")
		utils.AssertEqual(t, str.Len(), 1)
	})

	t.Run("sessions get distinct ids", func(t *testing.T) {
		str := NewInMemorySessionStore(clockwork.NewFakeClock())

		one, err := str.Create("one", game.Opts{})
		utils.AssertNoError(t, err)
		defer one.Shutdown()
		two, err := str.Create("two", game.Opts{})
		utils.AssertNoError(t, err)
		defer two.Shutdown()

		assert.NotEqual(t, one.ID(), two.ID())
	})

	t.Run("ending a session forgets the channel", func(t *testing.T) {
		str := NewInMemorySessionStore(clockwork.NewFakeClock())
		_, err := str.Create("somechannel", game.Opts{})
		utils.AssertNoError(t, err)

		utils.AssertNoError(t, str.End("somechannel"))

		_, ok := str.Find("somechannel")
		assert.False(t, ok)
		utils.AssertEqual(t, str.Len(), 0)

		// the channel is free for a new session
		sess, err := str.Create("somechannel", game.Opts{})
		utils.AssertNoError(t, err)
		sess.Shutdown()
	})

	t.Run("ending an unknown channel fails", func(t *testing.T) {
		str := NewInMemorySessionStore(nil)
		utils.AssertEqual(t, str.End("nowhere"), ErrUnknownChannel)
	})

	t.Run("channels are listed sorted", func(t *testing.T) {
		str := NewInMemorySessionStore(clockwork.NewFakeClock())
		for _, c := range []string{"zed", "alpha", "mid"} {
			sess, err := str.Create(c, game.Opts{})
			utils.AssertNoError(t, err)
			defer sess.Shutdown()
		}

		utils.AssertDeepEqual(t, str.Channels(), []string{"alpha", "mid", "zed"})
	})

	t.Run("concurrent creates race for one slot", func(t *testing.T) {
		str := NewInMemorySessionStore(clockwork.NewFakeClock())

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := 0; i < len(errs); i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = str.Create("contested", game.Opts{})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			}
		}
		utils.AssertEqual(t, succeeded, 1)
		utils.AssertEqual(t, str.Len(), 1)
		utils.AssertNoError(t, str.End("contested"))
	})
}
