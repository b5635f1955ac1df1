// Package status resolves status actions (brb, lunch, custom, clear and
// user-defined presets) into the request broadcast to every account.
package status

import (
	"errors"
	"time"
)

// Built-in action names.
const (
	ActionBRB    = "brb"
	ActionLunch  = "lunch"
	ActionCustom = "custom"
	ActionClear  = "clear"
)

// Fixed values for the built-in presets.
const (
	BRBText  = "I'll Be Right Back!"
	BRBEmoji = ":brb:"
	BRBTime  = 15 * time.Minute

	LunchText = "Lunch Time"
	LunchTime = 60 * time.Minute

	// DefaultCustomEmoji is used by the custom action when --emoji is not given.
	DefaultCustomEmoji = ":speech_balloon:"
)

// FoodEmojis is the set the lunch action draws its emoji from.
var FoodEmojis = []string{
	":pizza:",
	":hamburger:",
	":bento:",
	":sushi:",
	":taco:",
	":burrito:",
	":ramen:",
	":spaghetti:",
	":sandwich:",
	":fries:",
}

// Resolution errors.
var (
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownAction   = errors.New("unknown action")
	ErrInvalidPreset   = errors.New("invalid preset")
)

// Request is the status to apply to every account.
// The zero value is the clear request.
type Request struct {
	Text             string `json:"text"`
	Emoji            string `json:"emoji"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

// Clear resets status text, emoji and expiration.
var Clear = Request{}

// IsClear reports whether r is the clear request.
func (r Request) IsClear() bool {
	return r == Clear
}

// Expiration returns the request's lifetime as a time.Duration.
func (r Request) Expiration() time.Duration {
	return time.Duration(r.ExpiresInSeconds) * time.Second
}

// Options carries the optional command-line overrides.
type Options struct {
	Message string
	Emoji   string
	Minutes int
}

// Preset is a fixed status defined in the config file.
type Preset struct {
	Text    string `yaml:"text" json:"text"`
	Emoji   string `yaml:"emoji,omitempty" json:"emoji,omitempty"`
	Minutes int    `yaml:"minutes" json:"minutes"`
}
