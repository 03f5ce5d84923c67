package main

import (
	"github.com/faircommit/factiondraft/internal/cli"
)

func main() {
	cli.Execute()
}
