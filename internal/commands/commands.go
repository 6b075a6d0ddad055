/*
Package commands provides the command-line interface of clusteval.

Every command creates its own configuration from the global flags, see
config.GlobalFlags, and writes its output to the writer of the app.
*/
package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli"

	"github.com/photoprism/clusteval/internal/config"
)

// Commands lists the available subcommands.
var Commands = []cli.Command{
	EvalCommand,
	MeasuresCommand,
	ResultsCommand,
}

// initConfig creates and initializes the configuration of a command.
func initConfig(ctx *cli.Context, withDb bool) (*config.Config, error) {
	conf := config.NewConfig(ctx)

	if err := conf.Init(); err != nil {
		return conf, err
	}

	if !withDb {
		return conf, nil
	}

	if err := conf.InitDb(); err != nil {
		return conf, err
	}

	return conf, nil
}

// table writes aligned columns.
type table struct {
	w *tabwriter.Writer
}

func newTable(out io.Writer, cols ...interface{}) *table {
	t := &table{w: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)}
	t.Row(cols...)
	return t
}

// Row adds a row.
func (t *table) Row(cols ...interface{}) {
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(t.w, "\t")
		}

		fmt.Fprint(t.w, c)
	}

	fmt.Fprintln(t.w)
}

// Flush writes the table.
func (t *table) Flush() error {
	return t.w.Flush()
}
