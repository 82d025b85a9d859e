package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/shelf/cli"
	"github.com/grovetools/shelf/pkg/picker"
	"github.com/grovetools/shelf/state"
	"github.com/grovetools/shelf/tui/theme"
)

// NewItemsCmd creates the `items` command group.
func NewItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage the items in a library",
	}

	cmd.AddCommand(newItemsListCmd())
	cmd.AddCommand(newItemsAddCmd())
	cmd.AddCommand(newItemsMoveCmd())

	return cmd
}

func newItemsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items in the current scope",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.Items(cmd.Context(), resolveScope(cmd, cfg))
			if err != nil {
				return err
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				data, err := json.MarshalIndent(items, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			for _, item := range items {
				where := item.CollectionKey
				if where == "" {
					where = "unsorted"
				}
				fmt.Printf("%s %s %s\n", theme.IconItem, item.Title,
					theme.DefaultTheme.Muted.Render(fmt.Sprintf("[%s] %s", where, item.ID)))
			}
			return nil
		},
	}

	addLibraryFlags(cmd)
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func newItemsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <id> <title>",
		Short: "Add an item to the library",
		Long:  `Adds an item. New items start unsorted; use 'shelf items move' to file them.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			if err := store.AddItem(cmd.Context(), resolveScope(cmd, cfg), args[0], args[1]); err != nil {
				return handler.Handle(err)
			}

			fmt.Printf("%s Added item %s\n", theme.IconSuccess, args[0])
			return nil
		},
	}

	addLibraryFlags(cmd)
	return cmd
}

func newItemsMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "File an item under a collection",
		Long: `Moves an item into a collection. Without --to, an interactive picker opens
to choose the target; picking All Items unfiles the item. Passing '-' as
the target repeats the previous move's target.

Examples:
  # Choose the target interactively
  shelf items move 4f1c

  # Non-interactive move
  shelf items move 4f1c --to work

  # Same target as the last move
  shelf items move 9a2e --to -
`,
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

			target, _ := cmd.Flags().GetString("to")
			if target == "-" {
				last, err := state.GetString(state.KeyLastMoveTarget)
				if err != nil {
					return err
				}
				if last == "" {
					return fmt.Errorf("no previous move target recorded")
				}
				target = last
			}
			if target == "" {
				result, err := runPicker(cmd, store, cfg, picker.Single(cfg.MoveTitle()), nil)
				if err != nil {
					return err
				}
				if result.Canceled || result.Node == nil {
					return nil
				}
				target = result.Node.ID.Key // empty for All Items, which unfiles
			}

			if err := store.MoveItem(cmd.Context(), scope, args[0], target); err != nil {
				return handler.Handle(err)
			}

			if target == "" {
				fmt.Printf("%s Unfiled item %s\n", theme.IconSuccess, args[0])
			} else {
				if err := state.Set(state.KeyLastMoveTarget, target); err != nil {
					cli.GetLogger(cmd).WithError(err).Warn("Could not record move target")
				}
				fmt.Printf("%s Moved item %s %s %s\n", theme.IconSuccess, args[0], theme.IconArrow, target)
			}
			return nil
		},
	}

	addLibraryFlags(cmd)
	cmd.Flags().String("to", "", "Target collection key (skips the picker)")
	cmd.Flags().StringSlice("exclude", nil, "Collection keys to hide in the picker")
	cmd.Flags().Bool("watch", false, "Watch the library file for external writes while picking")
	return cmd
}
