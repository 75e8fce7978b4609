package main

import (
	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/cmd"
)

func mkdirMain(command *cobra.Command, arguments []string) error {
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
	return fs.View.CreateDirectory(p)
}

var mkdirCommand = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a directory",
	Run:   cmd.Mainify(mkdirMain),
}

func init() {
	flags := mkdirCommand.Flags()
	flags.SortFlags = false
	flags.BoolP("help", "h", false, "Show help information")
}
