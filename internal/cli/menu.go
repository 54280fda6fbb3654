package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passcheck-go/internal/crypto"
	"github.com/vaultpass/passcheck-go/internal/model"
)

const banner = `=== Password Strength Checker ===
How passwords get cracked:
- Brute force tries every combination, which is slow for long passwords.
- Dictionary attacks try common words first, which is fast for weak passwords.
- Rainbow tables look up precomputed hashes, which is fast for unsalted hashes.
Use this tool to build strong passwords, not to attack anyone else's.
`

const menuText = `
1. Check Password Strength
2. Generate Strong Password
3. View History
4. Export History
5. Exit
`

// runMenu is the interactive loop started when no subcommand is given. It
// ends on "5" or at end of input. Errors from a single action are printed
// and the loop continues.
func (c *CLI) runMenu(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	p := newPrompter(cmd.InOrStdin(), out)

	fmt.Fprint(out, banner)
	fmt.Fprintf(out, "History file: %s\n", c.historyLocation())

	for {
		fmt.Fprint(out, menuText)
		choice, err := p.line("Enter choice: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.menuCheck(cmd, p)
		case "2":
			err = c.menuGenerate(cmd, p)
		case "3":
			err = c.showHistory(cmd, 0)
		case "4":
			err = c.export(cmd, model.ExportRequest{})
		case "5":
			fmt.Fprintln(out, "Bye!")
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice!")
			continue
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func (c *CLI) menuCheck(cmd *cobra.Command, p *prompter) error {
	password, err := p.secret("Enter password to check: ")
	if err != nil {
		return err
	}
	if password == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No password entered!")
		return nil
	}
	return c.check(cmd, password, 0)
}

func (c *CLI) menuGenerate(cmd *cobra.Command, p *prompter) error {
	d := crypto.DefaultPolicy()

	s, err := p.line(fmt.Sprintf("Enter length (default %d): ", d.Length))
	if err != nil {
		return err
	}
	length := d.Length
	if s != "" {
		length, err = strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("length must be a number: %q", s)
		}
	}

	style, err := p.line("Style (plain/casual/funny, default plain): ")
	if err != nil {
		return err
	}

	resp, err := c.generate(cmd, model.GenerateRequest{Length: length, Style: style})
	if err != nil {
		return err
	}

	ok, err := p.confirm("Copy to clipboard?")
	if err != nil {
		return err
	}
	if ok {
		c.copyPasswords(cmd, resp)
	}
	return nil
}
