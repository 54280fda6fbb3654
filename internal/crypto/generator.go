package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	// The 32 printable ASCII punctuation characters.
	symbolChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	MinLength = 1
	MaxLength = 128
	MaxCount  = 100
)

var (
	ErrInvalidPolicy = errors.New("invalid generation policy")

	ErrLengthTooShort     = fmt.Errorf("%w: password length must be at least %d", ErrInvalidPolicy, MinLength)
	ErrLengthTooLong      = fmt.Errorf("%w: password length must be at most %d", ErrInvalidPolicy, MaxLength)
	ErrNoCharacterTypes   = fmt.Errorf("%w: at least one character type must be selected", ErrInvalidPolicy)
	ErrLengthInsufficient = fmt.Errorf("%w: password length must be at least equal to the number of selected character types", ErrInvalidPolicy)
	ErrCountTooSmall      = fmt.Errorf("%w: count must be at least 1", ErrInvalidPolicy)
	ErrCountTooLarge      = fmt.Errorf("%w: count must be at most %d", ErrInvalidPolicy, MaxCount)
	ErrUnknownStyle       = fmt.Errorf("%w: unknown style", ErrInvalidPolicy)
)

// Policy configures password generation.
//
// Characters are drawn uniformly at random from the union of the enabled
// classes, so a given password may miss one of them. Set RequireEachClass to
// place at least one character of every enabled class.
type Policy struct {
	Length           int
	Lower            bool
	Upper            bool
	Digit            bool
	Symbol           bool
	Style            Style
	Count            int
	RequireEachClass bool
}

// DefaultPolicy returns one plain 16 character password with all classes enabled.
func DefaultPolicy() Policy {
	return Policy{
		Length: 16,
		Lower:  true,
		Upper:  true,
		Digit:  true,
		Symbol: true,
		Style:  Plain,
		Count:  1,
	}
}

// classSets returns the character sets of the enabled classes in a fixed order.
func (p Policy) classSets() []string {
	var sets []string
	if p.Lower {
		sets = append(sets, lowercaseChars)
	}
	if p.Upper {
		sets = append(sets, uppercaseChars)
	}
	if p.Digit {
		sets = append(sets, digitChars)
	}
	if p.Symbol {
		sets = append(sets, symbolChars)
	}
	return sets
}

// Alphabet returns the characters a password under p may contain.
func (p Policy) Alphabet() string {
	return strings.Join(p.classSets(), "")
}

// Validate reports the first policy violation, if any.
func (p Policy) Validate() error {
	if p.Length < MinLength {
		return ErrLengthTooShort
	}
	if p.Length > MaxLength {
		return ErrLengthTooLong
	}
	if p.Count < 1 {
		return ErrCountTooSmall
	}
	if p.Count > MaxCount {
		return ErrCountTooLarge
	}
	if !p.Style.valid() {
		return ErrUnknownStyle
	}
	sets := p.classSets()
	if len(sets) == 0 {
		return ErrNoCharacterTypes
	}
	if p.RequireEachClass && p.Length < len(sets) {
		return ErrLengthInsufficient
	}
	return nil
}

// Generator draws passwords from a random source.
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a Generator backed by r. A nil r selects crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

var defaultGenerator = NewGenerator(nil)

// Generate creates p.Count passwords using crypto/rand.
func Generate(p Policy) ([]string, error) {
	return defaultGenerator.Generate(p)
}

// Generate creates p.Count passwords of exactly p.Length characters. On error
// no passwords are returned.
func (g *Generator) Generate(p Policy) ([]string, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make([]string, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		pw, err := g.one(p)
		if err != nil {
			return nil, err
		}
		out = append(out, pw)
	}
	return out, nil
}

func (g *Generator) one(p Policy) (string, error) {
	alphabet := p.Alphabet()
	result := make([]byte, 0, p.Length)

	fragment, err := g.fragment(p.Style, alphabet)
	if err != nil {
		return "", err
	}
	room := p.Length
	if p.RequireEachClass {
		room -= len(p.classSets())
	}
	if len(fragment) > room {
		fragment = fragment[:room]
	}

	fill := make([]byte, p.Length-len(fragment))
	start := 0
	if p.RequireEachClass {
		// Guarantee at least one character from each selected type.
		for _, charset := range p.classSets() {
			ch, err := g.randChar(charset)
			if err != nil {
				return "", err
			}
			fill[start] = ch
			start++
		}
	}

	// Fill the remaining positions from the full pool.
	for i := start; i < len(fill); i++ {
		ch, err := g.randChar(alphabet)
		if err != nil {
			return "", err
		}
		fill[i] = ch
	}

	if p.RequireEachClass {
		if err := g.secureShuffle(fill); err != nil {
			return "", err
		}
	}

	switch p.Style {
	case Funny:
		result = append(append(result, fill...), fragment...)
	default:
		result = append(append(result, fragment...), fill...)
	}
	return string(result), nil
}

// randChar picks a random character from charset.
func (g *Generator) randChar(charset string) (byte, error) {
	n, err := g.randInt(len(charset))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

func (g *Generator) randInt(n int) (int, error) {
	v, err := rand.Int(g.rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}

// secureShuffle performs a Fisher-Yates shuffle.
func (g *Generator) secureShuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := g.randInt(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
