package main

import (
	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/cmd"
	"github.com/zerofs-dev/zerofs/view"
)

func rmMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errUsage(command)
	}
	fs, _, err := openFileSystem()
	if err != nil {
		return err
	}
	defer fs.Close()

	p, err := resolvePath(fs, arguments[0])
	if err != nil {
		return err
	}

	mode := view.DeleteAny
	if rmConfiguration.dirOnly {
		mode = view.DeleteDirectoryOnly
	}
	return fs.View.DeleteFile(p, mode)
}

var rmCommand = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file or empty directory",
	Run:   cmd.Mainify(rmMain),
}

var rmConfiguration struct {
	dirOnly bool
}

func init() {
	flags := rmCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&rmConfiguration.dirOnly, "dir", "d", false, "Only remove if the target is a directory")
	flags.BoolP("help", "h", false, "Show help information")
}
