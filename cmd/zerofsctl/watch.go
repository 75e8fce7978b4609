package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/cmd"
	"github.com/zerofs-dev/zerofs/watch"
)

func eventKindLabel(k watch.EventKind) string {
	switch k {
	case watch.EntryCreate:
		return "create"
	case watch.EntryDelete:
		return "delete"
	case watch.EntryModify:
		return "modify"
	case watch.Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

func watchMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 1 {
		return errUsage(command)
	}
	fs, cfg, err := openFileSystem()
	if err != nil {
		return err
	}
	defer fs.Close()

	p, err := resolvePath(fs, arguments[0])
	if err != nil {
		return err
	}

	svc := fs.Watch(cfg)
	key, err := fs.View.Register(svc, p, watch.EntryCreate, watch.EntryDelete, watch.EntryModify)
	if err != nil {
		return err
	}

	signalTermination := make(chan os.Signal, 1)
	signal.Notify(signalTermination, cmd.TerminationSignals...)

	printer := &cmd.StatusLinePrinter{}
	printer.Print(color.YellowString("waiting for changes..."))

	results := make(chan error, 1)
	go func() {
		for {
			signalled, err := svc.Take()
			if err != nil {
				results <- err
				return
			}
			for _, evt := range signalled.PollEvents() {
				printer.Clear()
				fmt.Printf("%s %s\n", color.CyanString(eventKindLabel(evt.Kind)), evt.Name)
				printer.Print(color.YellowString("waiting for changes..."))
			}
			if !signalled.Reset() {
				printer.Clear()
				results <- nil
				return
			}
		}
	}()

	select {
	case <-signalTermination:
		key.Cancel()
		printer.Clear()
		return nil
	case err := <-results:
		return err
	}
}

var watchCommand = &cobra.Command{
	Use:   "watch <path>",
	Short: "Watch a directory for changes",
	Run:   cmd.Mainify(watchMain),
}

func init() {
	flags := watchCommand.Flags()
	flags.SortFlags = false
	flags.BoolP("help", "h", false, "Show help information")
}
