package main

import (
	"github.com/mchmarny/churnpulse/pkg/cli"
)

func main() {
	cli.Execute()
}
