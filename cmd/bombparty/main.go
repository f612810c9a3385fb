package main

import (
	"bufio"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sheepposu/bombparty/config"
	"github.com/Sheepposu/bombparty/engine"
	"github.com/Sheepposu/bombparty/game"
	"github.com/Sheepposu/bombparty/protocol"
	"github.com/Sheepposu/bombparty/scramble"
	"github.com/Sheepposu/bombparty/store"
)

// Answers for the scramble side games.
var (
	scrambleWords = []string{
		"banana", "elephant", "keyboard", "lantern", "monsoon",
		"oxygen", "penguin", "quartz", "rhubarb", "saxophone",
		"tundra", "umbrella", "velvet", "walrus", "zeppelin",
	}
	scrambleEmotes = []string{
		"Kappa", "PogChamp", "KEKW", "monkaS", "LUL", "FeelsBadMan",
	}
)

var scrambleIDs = []string{"word", "emote"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("unknown log level")
	}
	zerolog.SetGlobalLevel(level)

	pool, err := cfg.LetterPool()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build the letter pool")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var presets map[string]config.Preset
	if cfg.PresetsPath != "" {
		if presets, err = config.LoadPresets(cfg.PresetsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load presets")
		}
		log.Info().Int("count", len(presets)).Str("path", cfg.PresetsPath).Msg("loaded presets")
	}

	sessions := store.NewInMemorySessionStore(nil)
	sess, err := sessions.Create(cfg.Channel, game.Opts{
		Pool: pool,
		RNG:  rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		log.Fatal().Err(err).Str("channel", cfg.Channel).Msg("failed to open a session")
	}

	// The session actor owns its rand. The scrambles run right here on
	// the main goroutine, so they get a separate one.
	scrambleRNG := rand.New(rand.NewSource(seed + 1))
	h := &host{
		sess:    sess,
		channel: cfg.Channel,
		presets: presets,
		scrambles: scramble.NewManager(scrambleRNG, map[string]*scramble.Scramble{
			"word": scramble.New("word", pickFrom(scrambleRNG, scrambleWords), scramble.Opts{}),
			"emote": scramble.New("emote", pickFrom(scrambleRNG, scrambleEmotes), scramble.Opts{
				Multiplier:    1.5,
				Style:         scramble.EveryOther,
				CaseSensitive: true,
			}),
		}),
	}

	go func() {
		for ev := range sess.Events() {
			log.Debug().Str("event", ev.Event.String()).Str("user", ev.User).Msg("session event")
			if ev.Message != "" {
				fmt.Println(ev.Message)
			}
			if ev.Event == protocol.GameStarted && len(ev.Players) > 0 {
				fmt.Printf("Turn order: %s\n", strings.Join(ev.Players, ", "))
			}
		}
	}()

	fmt.Printf("Hosting #%s. Type \"<user> <text>\", e.g. \"ana !open\".\n", cfg.Channel)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		user, text, ok := splitLine(scanner.Text())
		if !ok {
			continue
		}
		h.handleLine(user, text)
	}
	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("stdin closed with an error")
	}

	if err := sessions.End(cfg.Channel); err != nil {
		log.Error().Err(err).Msg("failed to end the session")
	}
}

// host glues lines typed on stdin to the session and the scramble
// side games, the same shape a chat bot front end would have.
type host struct {
	sess      *engine.Session
	scrambles *scramble.Manager
	presets   map[string]config.Preset
	channel   string
}

func (h *host) handleLine(user, text string) {
	if !strings.HasPrefix(text, "!") {
		h.forwardGuess(user, text)
		return
	}

	fields := strings.Fields(text)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "!open":
		h.send(user, protocol.Open)
	case "!join":
		h.send(user, protocol.Join)
	case "!leave":
		h.send(user, protocol.Leave)
	case "!start":
		h.send(user, protocol.Start)
	case "!close":
		h.send(user, protocol.Close)
	case "!set":
		if len(args) < 2 {
			fmt.Println("Usage: !set <setting> <value>")
			return
		}
		h.sess.Send(protocol.InboundMessage{
			User:    user,
			Command: protocol.Setting,
			Setting: args[0],
			Value:   strings.Join(args[1:], " "),
		})
	case "!preset":
		h.applyPreset(user, args)
	case "!scramble":
		h.startScramble(scrambleID(args))
	case "!hint":
		h.showHint(scrambleID(args))
	default:
		fmt.Println("Commands: !open !join !start !set !preset !leave !close !scramble !hint")
	}
}

func (h *host) send(user string, cmd protocol.Cmd) {
	h.sess.Send(protocol.InboundMessage{User: user, Command: cmd})
}

// applyPreset replays the preset as ordinary setting commands, so the
// session applies its usual host checks.
func (h *host) applyPreset(user string, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: !preset <name>")
		return
	}
	p, ok := h.presets[args[0]]
	if !ok {
		fmt.Printf("No preset called %q.\n", args[0])
		return
	}
	for _, f := range p.Fields() {
		h.sess.Send(protocol.InboundMessage{
			User:    user,
			Command: protocol.Setting,
			Setting: f.Name,
			Value:   f.Value,
		})
	}
}

func (h *host) startScramble(id string) {
	if h.scrambles.InProgress(id) {
		fmt.Println("That scramble is still waiting on an answer.")
		return
	}
	shuffled, err := h.scrambles.Start(id, h.channel)
	if errors.Is(err, scramble.ErrUnknownScramble) {
		fmt.Printf("No scramble called %q.\n", id)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("scramble", id).Msg("could not start a round")
		return
	}
	fmt.Printf("Unscramble this: %s\n", shuffled)
}

func (h *host) showHint(id string) {
	if !h.scrambles.InProgress(id) {
		fmt.Println("Nothing to hint at.")
		return
	}
	hint, err := h.scrambles.Hint(id)
	if err != nil {
		return
	}
	fmt.Printf("Hint: %s\n", hint)
}

// forwardGuess offers the text to any running scramble first, then to
// the bomb game. Chat words are answers everywhere at once.
func (h *host) forwardGuess(user, text string) {
	for _, id := range scrambleIDs {
		if !h.scrambles.InProgress(id) {
			continue
		}
		score, won, err := h.scrambles.CheckAnswer(id, text)
		if err != nil || !won {
			continue
		}
		answer, _ := h.scrambles.Answer(id)
		fmt.Printf("@%s got it! The answer was %q, worth %d points.\n", user, answer, score)
		h.scrambles.Reset(id)
		return
	}

	h.sess.Send(protocol.InboundMessage{User: user, Command: protocol.Word, Word: text})
}

// scrambleID picks which scramble a command targets. A bare !scramble
// or !hint acts on the first registered one.
func scrambleID(args []string) string {
	if len(args) == 0 {
		return scrambleIDs[0]
	}
	return args[0]
}

// splitLine parses "<user> <text...>"; bare lines are skipped.
func splitLine(line string) (user, text string, ok bool) {
	trimmed := strings.TrimSpace(line)
	i := strings.IndexByte(trimmed, ' ')
	if i < 0 {
		return "", "", false
	}
	return trimmed[:i], strings.TrimSpace(trimmed[i+1:]), true
}

func pickFrom(rng *rand.Rand, words []string) scramble.AnswerFunc {
	return func(string) (string, error) {
		return words[rng.Intn(len(words))], nil
	}
}
