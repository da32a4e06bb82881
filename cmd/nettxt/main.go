// File: cmd/nettxt/main.go (complete file)

package main

import (
	"os"

	"github.com/baptistax/nettxt/internal/cli"
)

func main() {
	code := cli.Run(os.Args[1:])
	os.Exit(code)
}
