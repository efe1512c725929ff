package main

import (
	"context"
	"os"

	"github.com/malusev998/cryptocurrency-tracker/cli/cmd"
)

func main() {
	os.Exit(cmd.Execute(&cmd.Config{
		Ctx:    context.Background(),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, os.Args[1:]))
}
