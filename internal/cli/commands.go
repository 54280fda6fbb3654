package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/vaultpass/passcheck-go/internal/crypto"
	"github.com/vaultpass/passcheck-go/internal/history"
	"github.com/vaultpass/passcheck-go/internal/model"
	"github.com/vaultpass/passcheck-go/internal/service"
	"github.com/vaultpass/passcheck-go/internal/strength"
)

// clipboardWrite is a test seam for the system clipboard.
var clipboardWrite = clipboard.WriteAll

func (c *CLI) newCheckCmd() *cobra.Command {
	var gps float64

	cmd := &cobra.Command{
		Use:   "check [password]",
		Short: "Score a password and estimate its brute-force crack time",
		Long: `Score a password and estimate its brute-force crack time.

Without an argument the password is read from a hidden prompt, which keeps it
out of the shell history.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				var err error
				password, err = newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).secret("Enter password to check: ")
				if err != nil {
					return err
				}
			}
			return c.check(cmd, password, gps)
		},
	}

	cmd.Flags().Float64Var(&gps, "guesses-per-second", 0, "attacker speed for the crack-time estimate (default $GUESSES_PER_SECOND or 1e8)")
	return cmd
}

func (c *CLI) check(cmd *cobra.Command, password string, gps float64) error {
	a, err := c.services(cmd.Context())
	if err != nil {
		return err
	}
	resp, err := a.Check.Check(cmd.Context(), model.CheckRequest{Password: password, GuessesPerSecond: gps})
	if err != nil {
		return err
	}
	c.newPrinter(cmd.OutOrStdout()).check(resp)
	return nil
}

type generateFlags struct {
	length      int
	count       int
	style       string
	noLower     bool
	noUpper     bool
	noDigits    bool
	noSymbols   bool
	requireEach bool
	copy        bool
}

func (f generateFlags) request() model.GenerateRequest {
	enabled := func(off bool) *bool {
		on := !off
		return &on
	}
	return model.GenerateRequest{
		Length:           f.length,
		Count:            f.count,
		Style:            f.style,
		Lowercase:        enabled(f.noLower),
		Uppercase:        enabled(f.noUpper),
		Numbers:          enabled(f.noDigits),
		Symbols:          enabled(f.noSymbols),
		RequireEachClass: f.requireEach,
	}
}

func (c *CLI) newGenerateCmd() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random passwords",
		Long: `Generate random passwords from the selected character classes.

The casual and funny styles add a word to the password. They are easier to
remember but weaker than a plain password of the same length.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.generate(cmd, f.request())
			if err != nil {
				return err
			}
			if f.copy {
				c.copyPasswords(cmd, resp)
			}
			return nil
		},
	}

	d := crypto.DefaultPolicy()
	cmd.Flags().IntVarP(&f.length, "length", "l", d.Length, fmt.Sprintf("password length (%d-%d)", crypto.MinLength, crypto.MaxLength))
	cmd.Flags().IntVarP(&f.count, "count", "n", d.Count, fmt.Sprintf("number of passwords (1-%d)", crypto.MaxCount))
	cmd.Flags().StringVarP(&f.style, "style", "s", crypto.Plain.String(), `style: "plain", "casual" or "funny"`)
	cmd.Flags().BoolVar(&f.noLower, "no-lower", false, "exclude lowercase letters")
	cmd.Flags().BoolVar(&f.noUpper, "no-upper", false, "exclude uppercase letters")
	cmd.Flags().BoolVar(&f.noDigits, "no-digits", false, "exclude digits")
	cmd.Flags().BoolVar(&f.noSymbols, "no-symbols", false, "exclude symbols")
	cmd.Flags().BoolVar(&f.requireEach, "require-each", false, "include at least one character of every enabled class")
	cmd.Flags().BoolVarP(&f.copy, "copy", "c", false, "copy the generated passwords to the clipboard")
	return cmd
}

func (c *CLI) generate(cmd *cobra.Command, req model.GenerateRequest) (model.GenerateResponse, error) {
	a, err := c.services(cmd.Context())
	if err != nil {
		return model.GenerateResponse{}, err
	}
	resp, err := a.Generator.Generate(cmd.Context(), req)
	if err != nil {
		return model.GenerateResponse{}, err
	}
	c.newPrinter(cmd.OutOrStdout()).generated(resp)
	return resp, nil
}

// copyPasswords puts the generated passwords on the clipboard, one per line.
// A missing clipboard is a warning only.
func (c *CLI) copyPasswords(cmd *cobra.Command, resp model.GenerateResponse) {
	pws := make([]string, 0, len(resp.Passwords))
	for _, g := range resp.Passwords {
		pws = append(pws, g.Password)
	}
	p := c.newPrinter(cmd.OutOrStdout())
	if err := clipboardWrite(strings.Join(pws, "\n")); err != nil {
		p.warnings([]string{"could not copy to clipboard: " + err.Error()})
		return
	}
	p.printf("Copied to clipboard!\n")
}

func (c *CLI) newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show checked and generated passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.showHistory(cmd, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show only the newest N entries (0 shows all)")
	return cmd
}

func (c *CLI) showHistory(cmd *cobra.Command, limit int) error {
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}
	a, err := c.services(cmd.Context())
	if err != nil {
		return err
	}
	resp, err := a.History.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	c.newPrinter(cmd.OutOrStdout()).history(resp.Entries)
	return nil
}

func (c *CLI) newExportCmd() *cobra.Command {
	var timestamp bool

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Copy the history to another file",
		Long: fmt.Sprintf(`Copy the history to another file.

The file defaults to %s, or to a timestamped name with --timestamp.`, history.DefaultExportName),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := model.ExportRequest{Timestamp: timestamp}
			if len(args) == 1 {
				req.File = args[0]
			}
			return c.export(cmd, req)
		},
	}

	cmd.Flags().BoolVarP(&timestamp, "timestamp", "t", false, "name the export password_history_<timestamp>.txt")
	return cmd
}

func (c *CLI) export(cmd *cobra.Command, req model.ExportRequest) error {
	a, err := c.services(cmd.Context())
	if err != nil {
		return err
	}
	resp, err := a.History.Export(cmd.Context(), req)
	if errors.Is(err, history.ErrNothingToExport) {
		fmt.Fprintln(cmd.OutOrStdout(), "No history to export.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "History exported to %s\n", resp.File)
	return nil
}

func (c *CLI) newHashPassphraseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-passphrase",
		Short: "Hash an admin passphrase for ADMIN_PASSPHRASE_HASH",
		Long: `Hash an admin passphrase with Argon2id.

Set the printed value as ADMIN_PASSPHRASE_HASH to enable token access to the
history endpoints of the API server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			first, err := p.secret("Passphrase: ")
			if err != nil {
				return err
			}
			second, err := p.secret("Repeat passphrase: ")
			if err != nil {
				return err
			}
			if first != second {
				return errors.New("passphrases do not match")
			}
			hash, err := crypto.HashPassphrase(first)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

// ExitCode maps a command error to the process exit status: 2 for invalid
// input, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, strength.ErrEmptyInput),
		errors.Is(err, strength.ErrInvalidGuessRate),
		errors.Is(err, crypto.ErrInvalidPolicy),
		errors.Is(err, service.ErrInvalidExportPath):
		return 2
	default:
		return 1
	}
}
