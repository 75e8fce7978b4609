package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/channel"
	"github.com/zerofs-dev/zerofs/cmd"
	"github.com/zerofs-dev/zerofs/view"
)

func writeMain(command *cobra.Command, arguments []string) error {
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

	opts := view.OpenOptions{Write: true, Create: true}
	if writeConfiguration.appendMode {
		opts = view.OpenOptions{Append: true, Create: true}
	}
	file, err := fs.View.GetOrCreateRegularFile(p, opts)
	if err != nil {
		return err
	}

	stream := channel.NewOutputStream(file, writeConfiguration.appendMode, !writeConfiguration.appendMode, nil)
	defer stream.Close()

	_, err = io.Copy(stream, os.Stdin)
	return err
}

var writeCommand = &cobra.Command{
	Use:   "write <path>",
	Short: "Write standard input to a regular file",
	Run:   cmd.Mainify(writeMain),
}

var writeConfiguration struct {
	appendMode bool
}

func init() {
	flags := writeCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&writeConfiguration.appendMode, "append", "a", false, "Append instead of truncating")
	flags.BoolP("help", "h", false, "Show help information")
}
