package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/channel"
	"github.com/zerofs-dev/zerofs/cmd"
	"github.com/zerofs-dev/zerofs/view"
)

func catMain(command *cobra.Command, arguments []string) error {
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

	file, err := fs.View.GetOrCreateRegularFile(p, view.OpenOptions{Read: true})
	if err != nil {
		return err
	}

	stream := channel.NewInputStream(file, nil)
	defer stream.Close()

	if _, err := io.Copy(os.Stdout, stream); err != nil {
		return fmt.Errorf("unable to read file: %w", err)
	}
	return nil
}

var catCommand = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print a regular file's contents to standard output",
	Run:   cmd.Mainify(catMain),
}

func init() {
	flags := catCommand.Flags()
	flags.SortFlags = false
	flags.BoolP("help", "h", false, "Show help information")
}
