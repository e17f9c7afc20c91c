// Command do bundles the local development tasks: hot-reload, migrations
// and a look at the effective configuration.
package main

import (
	"os"

	"github.com/templui/goalnote/cmd/do/cmd"
)

func main() {
	if err := cmd.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
