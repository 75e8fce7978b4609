package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/cmd"
	"github.com/zerofs-dev/zerofs/core"
)

func kindLabel(k core.Kind) string {
	switch k {
	case core.KindDirectory:
		return "d"
	case core.KindSymbolicLink:
		return "l"
	default:
		return "-"
	}
}

func lsMain(command *cobra.Command, arguments []string) error {
	target := "."
	if len(arguments) == 1 {
		target = arguments[0]
	} else if len(arguments) > 1 {
		return errUsage(command)
	}

	fs, _, err := openFileSystem()
	if err != nil {
		return err
	}
	defer fs.Close()

	p, err := resolvePath(fs, target)
	if err != nil {
		return err
	}

	stream, err := fs.View.NewDirectoryStream(p, nil)
	if err != nil {
		return err
	}
	for _, e := range stream.Entries() {
		kind := "-"
		var size int64
		if e.File != nil {
			kind = kindLabel(e.File.Kind())
			if e.File.Kind() == core.KindRegularFile {
				size = e.File.Size()
			}
		}
		fmt.Printf("%s %10d %s\n", kind, size, e.Name.Display())
	}
	return nil
}

var lsCommand = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a directory's entries",
	Run:   cmd.Mainify(lsMain),
}

func init() {
	flags := lsCommand.Flags()
	flags.SortFlags = false
	flags.BoolP("help", "h", false, "Show help information")
}
