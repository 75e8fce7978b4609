package cmd

import (
	"io/ioutil"
	"log"
)

// init silences the standard library's default logger; commands report
// failures through Error/Fatal instead, and incidental log.Print calls from
// imported packages shouldn't reach the terminal.
func init() {
	log.SetOutput(ioutil.Discard)
}
