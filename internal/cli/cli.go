// Package cli implements the passcheck command-line client.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vaultpass/passcheck-go/internal/app"
	"github.com/vaultpass/passcheck-go/internal/config"
)

// CLI holds the state shared by all commands of one invocation.
type CLI struct {
	cfg            config.Config
	historyFile    string
	historyBackend string
	noColor        bool

	app *app.App
}

// New creates a CLI over cfg. Flags may override cfg per invocation.
func New(cfg config.Config) *CLI {
	return &CLI{cfg: cfg}
}

// NewRootCmd builds the passcheck command tree. Running it without a
// subcommand starts the interactive menu.
func (c *CLI) NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passcheck",
		Short: "Check password strength, estimate crack time and generate passwords.",
		Long: `passcheck scores passwords with a transparent point system, estimates how
long a brute-force attack would take, and generates random passwords.
Checked and generated passwords are kept in a local history file.

Running without a subcommand starts the interactive menu.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMenu(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
	}

	cmd.PersistentFlags().StringVar(&c.historyFile, "history-file", "", "history file (default $HISTORY_FILE or ./password_history.txt)")
	cmd.PersistentFlags().StringVar(&c.historyBackend, "history-backend", "", `history backend: "file", "mysql" or "none"`)
	cmd.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		c.newCheckCmd(),
		c.newGenerateCmd(),
		c.newHistoryCmd(),
		c.newExportCmd(),
		c.newHashPassphraseCmd(),
	)
	return cmd
}

// services builds the application on first use so that commands which do
// not touch the history never open it.
func (c *CLI) services(ctx context.Context) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg := c.cfg
	if c.historyFile != "" {
		cfg.HistoryFile = c.historyFile
	}
	if c.historyBackend != "" {
		switch c.historyBackend {
		case config.BackendFile, config.BackendMySQL, config.BackendNone:
			cfg.HistoryBackend = c.historyBackend
		default:
			return nil, fmt.Errorf("unknown history backend %q", c.historyBackend)
		}
	}
	// Exports from the console go wherever the user asks.
	cfg.ExportDir = ""

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *CLI) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func (c *CLI) historyLocation() string {
	if c.historyFile != "" {
		return c.historyFile
	}
	return filepath.Clean(c.cfg.HistoryFile)
}
