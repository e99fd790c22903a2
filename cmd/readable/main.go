package main

import (
	"os"

	"github.com/readable-research/readable/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
