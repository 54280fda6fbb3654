package strength

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"
)

// Character class sizes used for charset sizing. SymbolSetSize matches the
// 32 printable ASCII punctuation characters the generator draws from.
const (
	LowerSetSize  = 26
	UpperSetSize  = 26
	DigitSetSize  = 10
	SymbolSetSize = 32

	// DefaultGuessesPerSecond approximates a single consumer GPU against a fast hash.
	DefaultGuessesPerSecond = 1e8

	// UncrackableYears is the point beyond which estimates are reported
	// qualitatively instead of as a number.
	UncrackableYears = 1e12

	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerYear   = 31536000
)

var ErrInvalidGuessRate = errors.New("guesses per second must be a positive finite number")

// Unit is the display unit of a crack time estimate.
type Unit string

const (
	Seconds Unit = "seconds"
	Minutes Unit = "minutes"
	Hours   Unit = "hours"
	Days    Unit = "days"
	Years   Unit = "years"
)

// CrackTime is a brute-force estimate under the model
// attempts = charset^length, seconds = attempts / guessesPerSecond.
type CrackTime struct {
	CharsetSize      int
	Length           int
	GuessesPerSecond float64

	// Log10Seconds is always finite; Seconds overflows to +Inf for very long passwords.
	Log10Seconds float64
	Seconds      float64

	Unit        Unit
	Value       float64
	Uncrackable bool
}

// String renders the estimate, e.g. "~3.52 hours" or "effectively uncrackable".
func (c CrackTime) String() string {
	if c.Uncrackable {
		return "effectively uncrackable"
	}
	return fmt.Sprintf("~%.2f %s", c.Value, c.Unit)
}

// CharsetSize sums the set sizes of the classes present.
func CharsetSize(f ClassFlags) int {
	n := 0
	if f.Lower {
		n += LowerSetSize
	}
	if f.Upper {
		n += UpperSetSize
	}
	if f.Digit {
		n += DigitSetSize
	}
	if f.Symbol {
		n += SymbolSetSize
	}
	return n
}

// EstimateCrackTime estimates exhaustive search time for password. Only the
// classes present and the rune count matter, not the actual characters.
func EstimateCrackTime(password string, guessesPerSecond float64) (CrackTime, error) {
	if password == "" {
		return CrackTime{}, ErrEmptyInput
	}
	if guessesPerSecond <= 0 || math.IsNaN(guessesPerSecond) || math.IsInf(guessesPerSecond, 0) {
		return CrackTime{}, ErrInvalidGuessRate
	}
	return estimate(CharsetSize(Classes(password)), utf8.RuneCountInString(password), guessesPerSecond), nil
}

func estimate(charset, length int, guessesPerSecond float64) CrackTime {
	log10s := float64(length)*math.Log10(float64(charset)) - math.Log10(guessesPerSecond)
	ct := CrackTime{
		CharsetSize:      charset,
		Length:           length,
		GuessesPerSecond: guessesPerSecond,
		Log10Seconds:     log10s,
		Seconds:          math.Pow(10, log10s),
	}

	if log10s > math.Log10(UncrackableYears*secondsPerYear) {
		ct.Unit = Years
		ct.Uncrackable = true
		return ct
	}

	s := ct.Seconds
	switch {
	case s < secondsPerMinute:
		ct.Unit, ct.Value = Seconds, s
	case s < secondsPerHour:
		ct.Unit, ct.Value = Minutes, s/secondsPerMinute
	case s < secondsPerDay:
		ct.Unit, ct.Value = Hours, s/secondsPerHour
	case s < secondsPerYear:
		ct.Unit, ct.Value = Days, s/secondsPerDay
	default:
		ct.Unit, ct.Value = Years, s/secondsPerYear
	}
	return ct
}
