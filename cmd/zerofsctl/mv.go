package main

import (
	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/cmd"
	"github.com/zerofs-dev/zerofs/view"
)

func mvMain(command *cobra.Command, arguments []string) error {
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

	opts := view.CopyOptions{ReplaceExisting: mvConfiguration.force}
	return fs.View.Copy(src, fs.View, dst, opts, true)
}

var mvCommand = &cobra.Command{
	Use:   "mv <src> <dst>",
	Short: "Move or rename a file",
	Run:   cmd.Mainify(mvMain),
}

var mvConfiguration struct {
	force bool
}

func init() {
	flags := mvCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&mvConfiguration.force, "force", "f", false, "Replace an existing destination")
	flags.BoolP("help", "h", false, "Show help information")
}
