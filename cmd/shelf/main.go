package main

import (
	"os"

	"github.com/grovetools/shelf/cli"
	"github.com/grovetools/shelf/cmd"
	"github.com/grovetools/shelf/pkg/profiling"
	"github.com/grovetools/shelf/version"
)

func main() {
	info := version.GetInfo()

	root := cli.NewStandardCommand("shelf", "Organize items into collections")
	root.Long = `Shelf keeps a library of items filed under a tree of collections and
offers a live picker for choosing where things belong. The picker stays
in sync with the library while it is open, so collections created or
renamed by other processes appear without restarting.`
	root.Version = info.Version
	cli.SetVersionTemplate(root, cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: info.Platform,
	})

	profiler := profiling.NewCobraProfiler()
	profiler.AddFlags(root)
	root.PersistentPreRunE = profiler.PreRun
	root.PersistentPostRun = profiler.PostRun

	root.AddCommand(cmd.NewCollectionsCmd())
	root.AddCommand(cmd.NewItemsCmd())
	root.AddCommand(cmd.NewPickCmd())
	root.AddCommand(cmd.NewLogsCmd())
	root.AddCommand(cmd.NewConfigCmd())
	root.AddCommand(cmd.NewVersionCmd())

	cli.ApplyStyledHelpRecursive(root)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
