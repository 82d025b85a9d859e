package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/shelf/cli"
	"github.com/grovetools/shelf/tui/theme"
	"github.com/grovetools/shelf/util/sanitize"
)

// NewCollectionsCmd creates the `collections` command group.
func NewCollectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "Manage the collections in a library",
	}

	cmd.AddCommand(newCollectionsListCmd())
	cmd.AddCommand(newCollectionsAddCmd())
	cmd.AddCommand(newCollectionsRenameCmd())
	cmd.AddCommand(newCollectionsRmCmd())

	return cmd
}

func newCollectionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collections in the current scope",
		Long: `Lists all collections in the scope, indented by hierarchy.

Examples:
  # List collections with item counts
  shelf collections list --counts

  # Machine-readable output
  shelf collections list --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			scope := resolveScope(cmd, cfg)
			withCounts, _ := cmd.Flags().GetBool("counts")

			records, err := store.Collections(cmd.Context(), scope)
			if withCounts {
				records, err = store.CollectionsWithCounts(cmd.Context(), scope)
			}
			if err != nil {
				return err
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				data, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			// Indent children under their parents, in record order.
			depths := make(map[string]int)
			for _, r := range records {
				if r.ParentKey != "" {
					depths[r.Key] = depths[r.ParentKey] + 1
				}
			}
			for _, r := range records {
				indent := strings.Repeat("  ", depths[r.Key])
				line := fmt.Sprintf("%s%s %s", indent, theme.IconCollection, r.Name)
				if withCounts {
					line += " " + theme.DefaultTheme.Muted.Render(fmt.Sprintf("(%d)", r.ItemCount))
				}
				line += " " + theme.DefaultTheme.Muted.Render(r.Key)
				fmt.Println(line)
			}
			return nil
		},
	}

	addLibraryFlags(cmd)
	cmd.Flags().Bool("counts", false, "Include item counts")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func newCollectionsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> [key]",
		Short: "Create a collection",
		Long: `Creates a collection. When no key is given, one is derived from the name.

Examples:
  # Key derived from the name ("quarterly-reports")
  shelf collections add "Quarterly Reports"

  # Explicit key, nested under another collection
  shelf collections add "Reports" reports --parent work
`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			name := args[0]
			key := sanitize.ForKey(name)
			if len(args) == 2 {
				key = args[1]
			}

			parent, _ := cmd.Flags().GetString("parent")
			scope := resolveScope(cmd, cfg)
			if err := store.CreateCollection(cmd.Context(), scope, key, name, parent); err != nil {
				return handler.Handle(err)
			}

			fmt.Printf("%s Created collection %s\n", theme.IconSuccess, key)
			return nil
		},
	}

	addLibraryFlags(cmd)
	cmd.Flags().String("parent", "", "Key of the parent collection")
	return cmd
}

func newCollectionsRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <key> <name>",
		Short: "Rename a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			scope := resolveScope(cmd, cfg)
			if err := store.RenameCollection(cmd.Context(), scope, args[0], args[1]); err != nil {
				return handler.Handle(err)
			}

			fmt.Printf("%s Renamed collection %s\n", theme.IconSuccess, args[0])
			return nil
		},
	}

	addLibraryFlags(cmd)
	return cmd
}

func newCollectionsRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <key>",
		Short: "Delete a collection and its descendants",
		Long: `Deletes a collection. Child collections are deleted with it; items filed
in the deleted subtree become unsorted rather than being removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			scope := resolveScope(cmd, cfg)
			if err := store.DeleteCollection(cmd.Context(), scope, args[0]); err != nil {
				return handler.Handle(err)
			}

			fmt.Printf("%s Deleted collection %s\n", theme.IconSuccess, args[0])
			return nil
		},
	}

	addLibraryFlags(cmd)
	return cmd
}
