package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/shelf/pkg/picker"
)

// NewPickCmd creates the `pick` command.
func NewPickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Interactively select collections",
		Long: `Opens a multi-select picker over the collection tree and prints the
confirmed keys, one per line. The tree stays live while the picker is
open; external edits to the library appear without restarting.

Examples:
  # Pick collections and pipe the keys
  shelf pick | xargs -n1 echo chose

  # Start with some keys already selected
  shelf pick --preselect work --preselect inbox

  # Pick while another process edits the library
  shelf pick --watch
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cfg, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			preselected, _ := cmd.Flags().GetStringSlice("preselect")

			result, err := runPicker(cmd, store, cfg, picker.Multiple(), preselected)
			if err != nil {
				return err
			}
			if result.Canceled {
				return nil
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				data, err := json.MarshalIndent(result.Keys, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			for _, key := range result.Keys {
				fmt.Println(key)
			}
			return nil
		},
	}

	addLibraryFlags(cmd)
	cmd.Flags().StringSlice("preselect", nil, "Collection keys selected when the picker opens")
	cmd.Flags().StringSlice("exclude", nil, "Collection keys to hide in the picker")
	cmd.Flags().Bool("watch", false, "Watch the library file for external writes while picking")
	cmd.Flags().Bool("json", false, "Output the confirmed keys as a JSON array")
	return cmd
}
