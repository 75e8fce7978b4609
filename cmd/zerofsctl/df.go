package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/zerofs-dev/zerofs/cmd"
)

func dfMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 0 {
		return errUsage(command)
	}
	fs, _, err := openFileSystem()
	if err != nil {
		return err
	}
	defer fs.Close()

	d := fs.Store.Disk()
	blockSize := d.BlockSize()
	allocated := d.AllocatedBlockCount()
	cached := d.CachedBlockCount()

	fmt.Printf("Block size:       %s\n", humanize.Bytes(uint64(blockSize)))
	fmt.Printf("Allocated blocks: %d (%s)\n", allocated, humanize.Bytes(uint64(allocated*blockSize)))
	fmt.Printf("Cached blocks:    %d (%s)\n", cached, humanize.Bytes(uint64(cached*blockSize)))
	fmt.Printf("Instance:         %s\n", fs.URI(""))
	return nil
}

var dfCommand = &cobra.Command{
	Use:   "df",
	Short: "Show block-pool usage statistics",
	Run:   cmd.Mainify(dfMain),
}

func init() {
	flags := dfCommand.Flags()
	flags.SortFlags = false
	flags.BoolP("help", "h", false, "Show help information")
}
