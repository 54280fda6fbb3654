package crypto

import (
	"fmt"
	"strings"
)

// Style adds a cosmetic word to generated passwords.
//
// Casual prepends and Funny appends a fragment from a short curated list.
// The fragment is guessable, so a styled password carries less entropy than
// a Plain one of the same length.
type Style int

const (
	Plain Style = iota
	Casual
	Funny
)

var (
	casualFragments = []string{"coffee", "Sunny", "chill", "Relax", "cozy", "Weekend", "hello", "Breeze"}
	funnyFragments  = []string{"Banana", "NoodleNinja", "Potato42", "Llama!", "Wombat", "Pickle", "Taco#Tuesday", "Penguin"}
)

// ParseStyle accepts "plain", "casual" or "funny" in any case. The empty string is Plain.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return Plain, nil
	case "casual":
		return Casual, nil
	case "funny":
		return Funny, nil
	default:
		return Plain, fmt.Errorf("%w %q", ErrUnknownStyle, s)
	}
}

func (s Style) String() string {
	switch s {
	case Plain:
		return "plain"
	case Casual:
		return "casual"
	case Funny:
		return "funny"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

func (s Style) valid() bool {
	return s >= Plain && s <= Funny
}

// EntropyNote describes the strength trade-off of the style.
func (s Style) EntropyNote() string {
	switch s {
	case Casual, Funny:
		return "Styled passwords contain a dictionary word and are weaker than plain passwords of the same length."
	default:
		return ""
	}
}

func (s Style) fragments() []string {
	switch s {
	case Casual:
		return casualFragments
	case Funny:
		return funnyFragments
	default:
		return nil
	}
}

// fragment picks a fragment whose characters all belong to alphabet. It
// returns "" for Plain or when no fragment fits.
func (g *Generator) fragment(s Style, alphabet string) (string, error) {
	var usable []string
	for _, f := range s.fragments() {
		if containsOnly(f, alphabet) {
			usable = append(usable, f)
		}
	}
	if len(usable) == 0 {
		return "", nil
	}
	i, err := g.randInt(len(usable))
	if err != nil {
		return "", err
	}
	return usable[i], nil
}

func containsOnly(s, alphabet string) bool {
	for _, r := range s {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
