// Package cmd contains the shelf CLI subcommands.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grovetools/shelf/cli"
	"github.com/grovetools/shelf/config"
	"github.com/grovetools/shelf/pkg/library"
	"github.com/grovetools/shelf/util/pathutil"
)

const defaultLibraryPath = ".shelf/library.db"

// resolveLibraryPath picks the database location: --library flag, then
// shelf.yml, then the default under the working directory.
func resolveLibraryPath(cmd *cobra.Command, cfg *config.Config) string {
	if path, _ := cmd.Flags().GetString("library"); path != "" {
		return path
	}
	if cfg != nil && cfg.Library.Path != "" {
		return cfg.Library.Path
	}
	return defaultLibraryPath
}

// resolveScope picks the library scope: --scope flag, then shelf.yml, then
// the built-in default.
func resolveScope(cmd *cobra.Command, cfg *config.Config) library.Scope {
	if scope, _ := cmd.Flags().GetString("scope"); scope != "" {
		return library.Scope(scope)
	}
	return library.Scope(cfg.DefaultScope())
}

// openStore loads config and opens the library database. The caller owns the
// returned store and must Close it.
func openStore(cmd *cobra.Command) (*library.Store, *config.Config, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	path, err := pathutil.Expand(resolveLibraryPath(cmd, cfg))
	if err != nil {
		return nil, nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, err
		}
	}

	store, err := library.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

// addLibraryFlags registers the flags shared by commands that touch the
// library database.
func addLibraryFlags(cmd *cobra.Command) {
	cmd.Flags().String("library", "", "Path to the library database (overrides shelf.yml)")
	cmd.Flags().String("scope", "", "Library scope to operate on (overrides shelf.yml)")
}
