// Command xyzen-inhibit keeps the desktop from idling while a command runs.
package main

import (
	"os"

	"github.com/scienceol/xyzen/inhibit/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
