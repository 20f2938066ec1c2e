package main

import (
	"os"

	"github.com/shahbajlive/lexforge/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
