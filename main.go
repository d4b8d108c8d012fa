// main is the entry point for the insights CLI.
package main

import (
	"os"

	"github.com/huangsam/codeinsights/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
