package main

import (
	"context"
	"os"

	"github.com/agbru/threadcalc/internal/app"
	"github.com/agbru/threadcalc/internal/config"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout, config.ProgramPi.String())
		return
	}

	application, err := app.New(config.ProgramPi, os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
