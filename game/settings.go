package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Sheepposu/bombparty/letters"
)

// Bounds for the numeric settings. Timer and minimum_time are in
// seconds.
const (
	MinTimer = 5
	MaxTimer = 60

	MinGrace = 0
	MaxGrace = 10

	MinLives = 1
	MaxLives = 5
)

const (
	DefaultDifficulty = letters.Medium
	DefaultTimer      = 30
	DefaultGrace      = 5
	DefaultLives      = 3
)

// settingNames is the order settings are listed in when a player asks
// for them, or mistypes one.
var settingNames = []string{"difficulty", "timer", "minimum_time", "lives"}

// Settings holds the host-tunable game configuration. All fields stay
// within their documented bounds; the only way to change them from
// untrusted input is Set.
type Settings struct {
	Difficulty letters.Tier
	Timer      int
	Grace      int
	Lives      int

	onLives func(lives int)
}

// NewSettings returns settings at their defaults. onLives is invoked
// whenever the lives setting is committed, so the party can be
// re-dealt lives; it may be nil.
func NewSettings(onLives func(lives int)) *Settings {
	s := &Settings{onLives: onLives}
	s.Reset()
	return s
}

// Reset restores every setting to its default without firing hooks.
func (s *Settings) Reset() {
	s.Difficulty = DefaultDifficulty
	s.Timer = DefaultTimer
	s.Grace = DefaultGrace
	s.Lives = DefaultLives
}

// Set updates one setting from raw player input. It always returns a
// message for the host to display, whether the change was committed
// or refused. Unknown names, values of the wrong type and values
// outside the setting's range each get their own wording.
func (s *Settings) Set(name, raw string) string {
	switch name {
	case "difficulty":
		tier, ok := letters.ParseTier(raw)
		if !ok {
			return msgSettingOutOfRange
		}
		s.Difficulty = tier
		return settingChangedMessage(name, tier)
	case "timer":
		v, msg := parseBounded(raw, MinTimer, MaxTimer)
		if msg != "" {
			return msg
		}
		s.Timer = v
		return settingChangedMessage(name, v)
	case "minimum_time":
		v, msg := parseBounded(raw, MinGrace, MaxGrace)
		if msg != "" {
			return msg
		}
		s.Grace = v
		return settingChangedMessage(name, v)
	case "lives":
		v, msg := parseBounded(raw, MinLives, MaxLives)
		if msg != "" {
			return msg
		}
		s.Lives = v
		if s.onLives != nil {
			s.onLives(v)
		}
		return settingChangedMessage(name, v)
	default:
		return fmt.Sprintf(msgUnknownSetting, strings.Join(settingNames, ", "))
	}
}

func parseBounded(raw string, min, max int) (int, string) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, msgBadSettingValue
	}
	if v < min || v > max {
		return 0, msgSettingOutOfRange
	}
	return v, ""
}

// ValidSettingsString lists the recognised setting names for display.
func (s *Settings) ValidSettingsString() string {
	return strings.Join(settingNames, ", ")
}
