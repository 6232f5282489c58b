package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/robustify/gmplot/pkg/config"
	"github.com/robustify/gmplot/pkg/store"
)

// mapsCommand creates the maps command for browsing the archive.
func (c *CLI) mapsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "maps",
		Short: "Browse archived maps",
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	cmd.AddCommand(c.mapsListCommand(&configPath))
	cmd.AddCommand(c.mapsGetCommand(&configPath))
	cmd.AddCommand(c.mapsPickCommand(&configPath))

	return cmd
}

// openArchive opens the configured archive backend.
func openArchive(ctx context.Context, configPath string) (store.Store, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	st, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("archive backend is disabled in the config")
	}
	return st, nil
}

// mapsListCommand creates the "maps list" subcommand.
func (c *CLI) mapsListCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived maps, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openArchive(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			docs, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No archived maps")
				return nil
			}
			for _, doc := range docs {
				printKeyValue(formatRelativeTime(doc.CreatedAt),
					fmt.Sprintf("%s  %s (%d points)", doc.ID, doc.Name, doc.Points))
			}
			return nil
		},
	}
}

// mapsGetCommand creates the "maps get" subcommand.
func (c *CLI) mapsGetCommand(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Fetch an archived map page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openArchive(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			return fetchMap(ctx, st, args[0], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <id>.html)")
	return cmd
}

// mapsPickCommand creates the "maps pick" subcommand with an interactive
// list.
func (c *CLI) mapsPickCommand(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick an archived map interactively and fetch it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := openArchive(ctx, *configPath)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())

			docs, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No archived maps")
				return nil
			}

			model := NewMapListModel(docs)
			final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			picked := final.(MapListModel).Selected
			if picked == nil {
				printInfo("Nothing selected")
				return nil
			}
			return fetchMap(ctx, st, picked.ID, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <id>.html)")
	return cmd
}

// fetchMap writes the archived page for id to the output path.
func fetchMap(ctx context.Context, st store.Store, id, output string) error {
	doc, err := st.Get(ctx, id)
	if err != nil {
		return err
	}
	if output == "" {
		output = doc.ID + ".html"
	}
	if err := os.WriteFile(output, doc.HTML, 0644); err != nil {
		return err
	}
	printSuccess("Fetched %s", doc.Name)
	printFile(output)
	return nil
}
