package main

import (
	"duckscope/analyze"
	"duckscope/config"
	"os"

	"github.com/pingcap/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {

	defaults, err := config.Load()
	if err != nil {
		log.Error("load config failed", zap.Error(err))
		os.Exit(1)
	}

	app := &cli.App{
		Name:   "🦆 duckscope",
		Usage:  "analyze large csv datasets with duckdb",
		Flags:  analyze.Flags(defaults),
		Action: analyze.Action,
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Error(analyze.Describe(err), zap.Error(err))
		os.Exit(1)
	}
}
