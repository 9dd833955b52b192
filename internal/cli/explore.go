package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cloudscope/cloudscope/pkg/session"
)

// exploreCommand opens the terminal explorer over an inventory graph.
func (c *CLI) exploreCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [inventory.json...]",
		Short: "Browse the inventory graph in the terminal",
		Long: `Browse the inventory graph in the terminal.

With file arguments, the given inventories are loaded into a throwaway
session. Without arguments, the persisted source list from the configured
store is loaded instead.

Keys: arrows move, / searches, enter opens details, esc goes back, q quits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.withSession(cmd.Context(), *configPath, func(sess *session.Session) error {
					return c.runExplore(cmd.Context(), sess, *configPath)
				})
			}

			sess := session.New()
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				if _, err := sess.AddSource(cmd.Context(), filepath.Base(path), data); err != nil {
					return err
				}
			}
			return c.runExplore(cmd.Context(), sess, *configPath)
		},
	}
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, sess *session.Session, configPath string) error {
	cfg, _ := loadConfig(configPath)
	model := newExplorerModel(sess, cfg.debounce())
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
