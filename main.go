package main

import (
	"os"

	"github.com/philiaspace/kotoba/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
