package main

import (
	"github.com/jterhune/watchvault/internal/cli"
)

func main() {
	cli.Execute()
}
