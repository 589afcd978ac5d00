package main

import (
	"os"

	"github.com/telekom/exmailer/pkg/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := cmd.DefaultConfig()
	cfg.Args = args
	return cmd.Execute(cfg)
}
