package game

import (
	"fmt"
	"strings"
)

// Every string below is shown to players verbatim, so the wording is
// part of the contract with the host. Rule failures are ordinary
// values here, not errors.
const (
	msgUnknownSetting    = "That's not a valid setting. Valid settings: %s"
	msgBadSettingValue   = "There was a problem processing the value you gave for the specific setting."
	msgSettingOutOfRange = "That's not a valid value for this setting."
	msgSettingChanged    = "The %s setting has been changed to %v"

	msgWordAlreadyUsed     = "That word has already been used."
	msgWordMissingFragment = "That word does not contain your string of letters: %s"
	msgWordIsFragment      = "You cannot answer with the string of letters itself."
)

func settingChangedMessage(name string, value interface{}) string {
	return fmt.Sprintf(msgSettingChanged, name, value)
}

func missingFragmentMessage(fragment string) string {
	return fmt.Sprintf(msgWordMissingFragment, fragment)
}

func explosionMessage(p *Player) string {
	if p.Dead() {
		return fmt.Sprintf("@%s You ran out of time and lost all your lives! YouDied", p.User)
	}
	return fmt.Sprintf("@%s You ran out of time and now have %d %s heart(s) left",
		p.User, p.Lives, strings.Repeat("♥", p.Lives))
}
