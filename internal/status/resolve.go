package status

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

// builtinActions lists the built-in actions in display order.
var builtinActions = []string{ActionBRB, ActionLunch, ActionCustom, ActionClear}

// Resolver maps an action name and overrides to a Request.
type Resolver struct {
	presets map[string]Preset
	pick    func(n int) int
}

// NewResolver creates a Resolver that also knows the given user presets.
// Preset names must not shadow a built-in action.
func NewResolver(presets map[string]Preset) (*Resolver, error) {
	r := &Resolver{
		presets: make(map[string]Preset, len(presets)),
		pick:    rand.IntN,
	}
	for name, p := range presets {
		if err := validatePreset(name, p); err != nil {
			return nil, err
		}
		r.presets[name] = p
	}
	return r, nil
}

func validatePreset(name string, p Preset) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: preset name is empty", ErrInvalidPreset)
	}
	if isBuiltin(name) {
		return fmt.Errorf("%w: %q is a built-in action and cannot be redefined", ErrInvalidPreset, name)
	}
	if p.Text == "" {
		return fmt.Errorf("%w: preset %q has no text", ErrInvalidPreset, name)
	}
	if p.Minutes <= 0 {
		return fmt.Errorf("%w: preset %q must have positive minutes, got %d", ErrInvalidPreset, name, p.Minutes)
	}
	return nil
}

func isBuiltin(name string) bool {
	for _, a := range builtinActions {
		if a == name {
			return true
		}
	}
	return false
}

// Resolve resolves an action using only the built-in presets.
func Resolve(action string, opts Options) (Request, error) {
	r, _ := NewResolver(nil)
	return r.Resolve(action, opts)
}

// Resolve turns action and opts into a Request.
// The clear action returns Clear regardless of opts.
func (r *Resolver) Resolve(action string, opts Options) (Request, error) {
	switch action {
	case ActionBRB:
		return Request{
			Text:             BRBText,
			Emoji:            BRBEmoji,
			ExpiresInSeconds: int(BRBTime.Seconds()),
		}, nil

	case ActionLunch:
		return Request{
			Text:             LunchText,
			Emoji:            FoodEmojis[r.pick(len(FoodEmojis))],
			ExpiresInSeconds: int(LunchTime.Seconds()),
		}, nil

	case ActionCustom:
		return resolveCustom(opts)

	case ActionClear:
		return Clear, nil
	}

	if p, ok := r.presets[action]; ok {
		return Request{
			Text:             p.Text,
			Emoji:            p.Emoji,
			ExpiresInSeconds: p.Minutes * 60,
		}, nil
	}

	return Request{}, fmt.Errorf("%w: %q (valid actions: %s)", ErrUnknownAction, action, strings.Join(r.Actions(), ", "))
}

func resolveCustom(opts Options) (Request, error) {
	if opts.Minutes < 0 {
		return Request{}, fmt.Errorf("%w: --time must be positive, got %d", ErrInvalidArgument, opts.Minutes)
	}
	if opts.Message == "" || opts.Minutes == 0 {
		return Request{}, fmt.Errorf("%w: custom status requires --message and --time", ErrMissingArgument)
	}

	emoji := DefaultCustomEmoji
	if opts.Emoji != "" {
		emoji = opts.Emoji
	}

	return Request{
		Text:             opts.Message,
		Emoji:            emoji,
		ExpiresInSeconds: opts.Minutes * 60,
	}, nil
}

// Actions returns all recognized action names: built-ins first, then user
// presets in sorted order.
func (r *Resolver) Actions() []string {
	names := make([]string, 0, len(builtinActions)+len(r.presets))
	names = append(names, builtinActions...)

	var custom []string
	for name := range r.presets {
		custom = append(custom, name)
	}
	sort.Strings(custom)
	return append(names, custom...)
}

// ActionInfo describes an action for listing.
type ActionInfo struct {
	Name    string `json:"name"`
	Text    string `json:"text,omitempty"`
	Emoji   string `json:"emoji,omitempty"`
	Minutes int    `json:"minutes,omitempty"`
	Builtin bool   `json:"builtin"`
	Note    string `json:"note,omitempty"`
}

// Describe returns an ActionInfo for every recognized action, in Actions order.
func (r *Resolver) Describe() []ActionInfo {
	infos := []ActionInfo{
		{Name: ActionBRB, Text: BRBText, Emoji: BRBEmoji, Minutes: int(BRBTime.Minutes()), Builtin: true},
		{Name: ActionLunch, Text: LunchText, Minutes: int(LunchTime.Minutes()), Builtin: true,
			Note: "emoji drawn at random from " + strings.Join(FoodEmojis, " ")},
		{Name: ActionCustom, Emoji: DefaultCustomEmoji, Builtin: true,
			Note: "requires --message and --time; --emoji overrides the emoji"},
		{Name: ActionClear, Builtin: true, Note: "clears text, emoji and expiration"},
	}

	for _, name := range r.Actions()[len(builtinActions):] {
		p := r.presets[name]
		infos = append(infos, ActionInfo{Name: name, Text: p.Text, Emoji: p.Emoji, Minutes: p.Minutes})
	}
	return infos
}
