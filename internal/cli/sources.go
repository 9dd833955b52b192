package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloudscope/cloudscope/pkg/session"
)

// sourcesCommand manages the persisted source list.
func (c *CLI) sourcesCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage persisted inventory sources",
	}

	cmd.AddCommand(c.sourcesListCommand(configPath))
	cmd.AddCommand(c.sourcesAddCommand(configPath))
	cmd.AddCommand(c.sourcesRemoveCommand(configPath))
	cmd.AddCommand(c.sourcesClearCommand(configPath))
	return cmd
}

// withSession loads the persisted session and hands it to fn.
func (c *CLI) withSession(ctx context.Context, configPath string, fn func(*session.Session) error) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	sess := session.New(session.WithStore(st))
	skipped, err := sess.Load(ctx)
	if err != nil {
		return err
	}
	logger := loggerFromContext(ctx)
	for _, skipErr := range skipped {
		logger.Warn("skipped persisted source", "err", skipErr)
	}
	return fn(sess)
}

func (c *CLI) sourcesListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), *configPath, func(sess *session.Session) error {
				sources := sess.Sources()
				if len(sources) == 0 {
					fmt.Println("no sources")
					return nil
				}
				for i, src := range sources {
					fmt.Printf("%3d  %-30s  %s  %s\n", i, src.Name,
						src.AddedAt.Format("2006-01-02 15:04"), src.ID)
				}
				report := sess.Report()
				fmt.Printf("\n%d nodes, %d edges\n", report.Nodes, report.Edges)
				return nil
			})
		},
	}
}

func (c *CLI) sourcesAddCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add [inventory.json...]",
		Short: "Add inventory files to the persisted source list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), *configPath, func(sess *session.Session) error {
				for _, path := range args {
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("read %s: %w", path, err)
					}
					res, err := sess.AddSource(cmd.Context(), filepath.Base(path), data)
					if err != nil {
						return err
					}
					loggerFromContext(cmd.Context()).Info("added source",
						"name", res.Name, "nodes", res.TotalNodes, "edges", res.TotalEdges)
				}
				return nil
			})
		},
	}
}

func (c *CLI) sourcesRemoveCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [index]",
		Short: "Remove a source by its list position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var index int
			if _, err := fmt.Sscanf(args[0], "%d", &index); err != nil {
				return fmt.Errorf("index must be a number: %q", args[0])
			}
			return c.withSession(cmd.Context(), *configPath, func(sess *session.Session) error {
				res, err := sess.RemoveSource(cmd.Context(), index)
				if err != nil {
					return err
				}
				loggerFromContext(cmd.Context()).Info("removed source",
					"name", res.Removed, "nodes", res.TotalNodes)
				return nil
			})
		},
	}
}

func (c *CLI) sourcesClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all persisted sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), *configPath, func(sess *session.Session) error {
				return sess.Clear(cmd.Context())
			})
		},
	}
}
