package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/cmd"
)

func rootMain(command *cobra.Command, arguments []string) {
	if rootConfiguration.version {
		fmt.Println(versionString)
		return
	}
	command.Help()
}

const versionString = "0.1.0"

var rootCommand = &cobra.Command{
	Use:   "zerofsctl",
	Short: "zerofsctl drives an in-memory zerofs instance from the command line.",
	Run:   rootMain,
}

var rootConfiguration struct {
	help    bool
	version bool
	config  string
}

func init() {
	flags := rootCommand.Flags()
	flags.SortFlags = false
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "v", false, "Show version information")

	persistent := rootCommand.PersistentFlags()
	persistent.StringVarP(&rootConfiguration.config, "config", "c", "", "Path to a zerofs YAML configuration file")

	rootCommand.AddCommand(
		mkdirCommand,
		writeCommand,
		catCommand,
		lsCommand,
		lnCommand,
		mvCommand,
		cpCommand,
		rmCommand,
		watchCommand,
		dfCommand,
	)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		cmd.Fatal(err)
	}
}
