package main

import (
	"os"

	"github.com/robertguss/vibe-academy-go/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
