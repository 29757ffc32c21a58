package main

import (
	"os"

	"github.com/funvibe/plc/pkg/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
