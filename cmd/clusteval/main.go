/*
Clusteval computes quality measures of clusterings.

Usage:

	clusteval [global options] command [command options] [arguments...]

Run "clusteval help" for a list of commands and options.
*/
package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/photoprism/clusteval/internal/commands"
	"github.com/photoprism/clusteval/internal/config"
	"github.com/photoprism/clusteval/internal/event"
)

var version = "development"
var log = event.Log

func main() {
	app := cli.NewApp()
	app.Name = "clusteval"
	app.Usage = "Clustering Quality Evaluation"
	app.Version = version
	app.EnableBashCompletion = true
	app.Flags = config.GlobalFlags
	app.Commands = commands.Commands

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
