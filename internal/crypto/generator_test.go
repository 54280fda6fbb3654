package crypto

import (
	"errors"
	"strings"
	"testing"
)

func allClasses(length, count int) Policy {
	return Policy{Length: length, Lower: true, Upper: true, Digit: true, Symbol: true, Count: count}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr error
	}{
		{
			name:   "default policy",
			policy: DefaultPolicy(),
		},
		{
			name:   "all classes three passwords",
			policy: allClasses(12, 3),
		},
		{
			name:   "lowercase only",
			policy: Policy{Length: 16, Lower: true, Count: 1},
		},
		{
			name:   "single character",
			policy: Policy{Length: MinLength, Digit: true, Count: 1},
		},
		{
			name:   "maximum length and count",
			policy: allClasses(MaxLength, MaxCount),
		},
		{
			name:    "zero length",
			policy:  allClasses(0, 1),
			wantErr: ErrLengthTooShort,
		},
		{
			name:    "negative length",
			policy:  allClasses(-4, 1),
			wantErr: ErrLengthTooShort,
		},
		{
			name:    "length too long",
			policy:  allClasses(MaxLength+1, 1),
			wantErr: ErrLengthTooLong,
		},
		{
			name:    "zero count",
			policy:  allClasses(12, 0),
			wantErr: ErrCountTooSmall,
		},
		{
			name:    "count too large",
			policy:  allClasses(12, MaxCount+1),
			wantErr: ErrCountTooLarge,
		},
		{
			name:    "no character types selected",
			policy:  Policy{Length: 16, Count: 1},
			wantErr: ErrNoCharacterTypes,
		},
		{
			name:    "unknown style",
			policy:  Policy{Length: 16, Lower: true, Count: 1, Style: Style(9)},
			wantErr: ErrUnknownStyle,
		},
		{
			name:    "required classes exceed length",
			policy:  Policy{Length: 3, Lower: true, Upper: true, Digit: true, Symbol: true, Count: 1, RequireEachClass: true},
			wantErr: ErrLengthInsufficient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Generate(tt.policy)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrInvalidPolicy) {
					t.Errorf("Generate() error = %v, want it to wrap %v", err, ErrInvalidPolicy)
				}
				if result != nil {
					t.Error("Generate() should return no passwords on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if len(result) != tt.policy.Count {
				t.Fatalf("Generate() returned %d passwords, want %d", len(result), tt.policy.Count)
			}
			for _, pw := range result {
				if len(pw) != tt.policy.Length {
					t.Errorf("Generate() length = %d, want %d", len(pw), tt.policy.Length)
				}
			}
		})
	}
}

func TestGenerateUsesOnlyAlphabet(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		charset string
	}{
		{"uppercase only", Policy{Length: 32, Upper: true, Count: 5}, uppercaseChars},
		{"lowercase only", Policy{Length: 32, Lower: true, Count: 5}, lowercaseChars},
		{"digits only", Policy{Length: 32, Digit: true, Count: 5}, digitChars},
		{"symbols only", Policy{Length: 32, Symbol: true, Count: 5}, symbolChars},
		{"letters casual", Policy{Length: 20, Lower: true, Upper: true, Style: Casual, Count: 5}, lowercaseChars + uppercaseChars},
		{"lowercase casual", Policy{Length: 20, Lower: true, Style: Casual, Count: 5}, lowercaseChars},
		{"digits funny", Policy{Length: 20, Digit: true, Style: Funny, Count: 5}, digitChars},
		{"all funny", Policy{Length: 20, Lower: true, Upper: true, Digit: true, Symbol: true, Style: Funny, Count: 5}, lowercaseChars + uppercaseChars + digitChars + symbolChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passwords, err := Generate(tt.policy)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			for _, pw := range passwords {
				for _, ch := range pw {
					if !strings.ContainsRune(tt.charset, ch) {
						t.Errorf("password %q contains unexpected character %q", pw, string(ch))
					}
				}
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	all := allClasses(12, 1).Alphabet()
	if len(all) != 94 {
		t.Errorf("Alphabet() has %d characters, want 94", len(all))
	}
	if len(symbolChars) != 32 {
		t.Errorf("symbol set has %d characters, want 32", len(symbolChars))
	}
	seen := make(map[rune]bool)
	for _, r := range all {
		if seen[r] {
			t.Errorf("Alphabet() repeats %q", r)
		}
		seen[r] = true
	}
}

func TestGenerateRequireEachClass(t *testing.T) {
	policy := allClasses(4, 1)
	policy.RequireEachClass = true

	// Length 4 with four classes leaves no slack, so every class must appear.
	for i := 0; i < 50; i++ {
		passwords, err := Generate(policy)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		password := passwords[0]

		if !strings.ContainsAny(password, uppercaseChars) {
			t.Errorf("password %q missing uppercase character", password)
		}
		if !strings.ContainsAny(password, lowercaseChars) {
			t.Errorf("password %q missing lowercase character", password)
		}
		if !strings.ContainsAny(password, digitChars) {
			t.Errorf("password %q missing digit character", password)
		}
		if !strings.ContainsAny(password, symbolChars) {
			t.Errorf("password %q missing symbol character", password)
		}
	}
}

func TestGenerateRequireEachClassWithStyle(t *testing.T) {
	policy := Policy{Length: 8, Lower: true, Upper: true, Digit: true, Style: Funny, Count: 20, RequireEachClass: true}

	passwords, err := Generate(policy)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	for _, pw := range passwords {
		if len(pw) != 8 {
			t.Errorf("password %q length = %d, want 8", pw, len(pw))
		}
		if !strings.ContainsAny(pw, digitChars) || !strings.ContainsAny(pw, lowercaseChars) || !strings.ContainsAny(pw, uppercaseChars) {
			t.Errorf("password %q misses a required class", pw)
		}
	}
}

func TestGenerateStylePlacement(t *testing.T) {
	casual := Policy{Length: 30, Lower: true, Upper: true, Style: Casual, Count: 10}
	passwords, err := Generate(casual)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	for _, pw := range passwords {
		if !hasAnyPrefix(pw, casualFragments) {
			t.Errorf("casual password %q does not start with a casual fragment", pw)
		}
	}

	funny := Policy{Length: 30, Lower: true, Upper: true, Style: Funny, Count: 10}
	passwords, err = Generate(funny)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	for _, pw := range passwords {
		if !hasAnySuffix(pw, funnyFragments) {
			t.Errorf("funny password %q does not end with a funny fragment", pw)
		}
	}
}

func TestGenerateStyleTruncatesFragment(t *testing.T) {
	policy := Policy{Length: 3, Lower: true, Upper: true, Style: Casual, Count: 10}
	passwords, err := Generate(policy)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	for _, pw := range passwords {
		if len(pw) != 3 {
			t.Errorf("password %q length = %d, want 3", pw, len(pw))
		}
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	passwords, err := Generate(allClasses(16, MaxCount))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	seen := make(map[string]bool)
	for _, password := range passwords {
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateRandomSourceFailure(t *testing.T) {
	g := NewGenerator(failingReader{})
	passwords, err := g.Generate(DefaultPolicy())
	if err == nil {
		t.Fatal("Generate() expected error from failing random source")
	}
	if errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("random source failure reported as policy error: %v", err)
	}
	if passwords != nil {
		t.Error("Generate() should return no passwords on error")
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"", Plain, false},
		{"plain", Plain, false},
		{"Casual", Casual, false},
		{" FUNNY ", Funny, false},
		{"silly", Plain, true},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidPolicy) {
			t.Errorf("ParseStyle(%q) error = %v, want it to wrap %v", tt.in, err, ErrInvalidPolicy)
		}
		if got != tt.want {
			t.Errorf("ParseStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStyleEntropyNote(t *testing.T) {
	if Plain.EntropyNote() != "" {
		t.Error("Plain should carry no entropy note")
	}
	if Casual.EntropyNote() == "" || Funny.EntropyNote() == "" {
		t.Error("styled passwords must document their entropy trade-off")
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, p := range suffixes {
		if strings.HasSuffix(s, p) {
			return true
		}
	}
	return false
}
