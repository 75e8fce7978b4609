package main

import (
	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/cmd"
)

func lnMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 2 {
		return errUsage(command)
	}
	fs, _, err := openFileSystem()
	if err != nil {
		return err
	}
	defer fs.Close()

	target, err := resolvePath(fs, arguments[0])
	if err != nil {
		return err
	}
	linkPath, err := resolvePath(fs, arguments[1])
	if err != nil {
		return err
	}

	if lnConfiguration.symbolic {
		return fs.View.CreateSymbolicLink(linkPath, target)
	}
	return fs.View.Link(linkPath, target)
}

var lnCommand = &cobra.Command{
	Use:   "ln <target> <link>",
	Short: "Create a hard or symbolic link",
	Run:   cmd.Mainify(lnMain),
}

var lnConfiguration struct {
	symbolic bool
}

func init() {
	flags := lnCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&lnConfiguration.symbolic, "symbolic", "s", false, "Create a symbolic link instead of a hard link")
	flags.BoolP("help", "h", false, "Show help information")
}
