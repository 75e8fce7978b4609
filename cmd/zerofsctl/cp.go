package main

import (
	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/cmd"
	"github.com/zerofs-dev/zerofs/view"
)

func cpMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 2 {
		return errUsage(command)
	}
	fs, _, err := openFileSystem()
	if err != nil {
		return err
	}
	defer fs.Close()

	src, err := resolvePath(fs, arguments[0])
	if err != nil {
		return err
	}
	dst, err := resolvePath(fs, arguments[1])
	if err != nil {
		return err
	}

	opts := view.CopyOptions{ReplaceExisting: cpConfiguration.force}
	return fs.View.Copy(src, fs.View, dst, opts, false)
}

var cpCommand = &cobra.Command{
	Use:   "cp <src> <dst>",
	Short: "Copy a file",
	Run:   cmd.Mainify(cpMain),
}

var cpConfiguration struct {
	force bool
}

func init() {
	flags := cpCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&cpConfiguration.force, "force", "f", false, "Replace an existing destination")
	flags.BoolP("help", "h", false, "Show help information")
}
