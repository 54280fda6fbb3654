package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vaultpass/passcheck-go/internal/history"
	"github.com/vaultpass/passcheck-go/internal/model"
	"github.com/vaultpass/passcheck-go/internal/strength"
)

var categoryColors = map[strength.Category]lipgloss.Color{
	strength.Weak:       lipgloss.Color("9"),
	strength.Medium:     lipgloss.Color("11"),
	strength.Strong:     lipgloss.Color("10"),
	strength.VeryStrong: lipgloss.Color("14"),
}

type printer struct {
	w     io.Writer
	r     *lipgloss.Renderer
	plain bool
}

func (c *CLI) newPrinter(w io.Writer) *printer {
	return &printer{w: w, r: lipgloss.NewRenderer(w), plain: c.noColor}
}

func (p *printer) style() lipgloss.Style {
	return p.r.NewStyle()
}

func (p *printer) category(c strength.Category) string {
	if p.plain {
		return c.String()
	}
	s := p.style().Foreground(categoryColors[c])
	if c == strength.VeryStrong {
		s = s.Bold(true)
	}
	return s.Render(c.String())
}

func (p *printer) dim(s string) string {
	if p.plain {
		return s
	}
	return p.style().Faint(true).Render(s)
}

func (p *printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) check(resp model.CheckResponse) {
	p.printf("\nStrength: %s (Score: %d/%d)\n", p.category(resp.Category), resp.Score, resp.MaxScore)
	for _, f := range resp.Feedback {
		p.printf("- %s\n", f)
	}
	p.printf("Estimated brute-force crack time: %s%s\n", resp.CrackTime.Label, crackHint(resp.CrackTime))
	if resp.Advisory != nil {
		p.printf("%s\n", p.dim(fmt.Sprintf("zxcvbn pattern score: %d/4", resp.Advisory.Score)))
	}
	p.warnings(resp.Warnings)
}

func (p *printer) generated(resp model.GenerateResponse) {
	for _, g := range resp.Passwords {
		cat := categoryOf(g.Strength)
		p.printf("\nGenerated Password: %s\n", g.Password)
		p.printf("Strength: %s (Score: %d/%d)\n", p.category(cat), g.Score, strength.DefaultPolicy().MaxScore())
	}
	if resp.Tip != "" {
		p.printf("%s\n", p.dim("Tip: "+resp.Tip))
	}
	p.warnings(resp.Warnings)
}

func (p *printer) history(entries []model.HistoryEntryResponse) {
	if len(entries) == 0 {
		p.printf("No history yet.\n")
		return
	}
	p.printf("\nPassword History:\n")
	for _, e := range entries {
		line, err := history.FormatEntry(model.HistoryEntry{
			Time:     e.Time,
			Action:   e.Action,
			Password: e.Password,
			Strength: e.Strength,
		})
		if err != nil {
			continue
		}
		p.printf("%s\n", line)
	}
}

func (p *printer) warnings(ws []string) {
	for _, w := range ws {
		msg := "Warning: " + w
		if !p.plain {
			msg = p.style().Foreground(lipgloss.Color("11")).Render(msg)
		}
		p.printf("%s\n", msg)
	}
}

// crackHint adds the short remark shown after fast crack times.
func crackHint(c model.CrackTimeResponse) string {
	switch {
	case c.Uncrackable:
		return ""
	case c.Unit == string(strength.Seconds):
		return " (Very fast to crack!)"
	case c.Unit == string(strength.Days):
		return " (still crackable, and far faster with a dictionary if the password is common)"
	default:
		return ""
	}
}

func categoryOf(label string) strength.Category {
	for _, c := range []strength.Category{strength.Weak, strength.Medium, strength.Strong, strength.VeryStrong} {
		if c.String() == label {
			return c
		}
	}
	return strength.Weak
}
