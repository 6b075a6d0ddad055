package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/urfave/cli"

	"github.com/photoprism/clusteval/internal/entity"
)

// ResultsCommand registers the results cli command.
var ResultsCommand = cli.Command{
	Name:  "results",
	Usage: "Shows stored evaluation results",
	Subcommands: []cli.Command{
		{
			Name:  "ls",
			Usage: "lists recent evaluation runs",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "n",
					Usage: "maximum `NUMBER` of runs",
					Value: 20,
				},
			},
			Action: resultsListAction,
		},
		{
			Name:      "show",
			Usage:     "shows the values of an evaluation run",
			ArgsUsage: "[run uid]",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "json",
					Usage: "print the values as json",
				},
			},
			Action: resultsShowAction,
		},
		{
			Name:      "best",
			Usage:     "shows the best stored value per measure",
			ArgsUsage: "[measure]",
			Action:    resultsBestAction,
		},
		{
			Name:      "rm",
			Usage:     "removes the values of an evaluation run",
			ArgsUsage: "[run uid]",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "yes, y",
					Usage: "remove without confirmation",
				},
			},
			Action: resultsRemoveAction,
		},
	},
}

// resultsListAction lists recent runs.
func resultsListAction(ctx *cli.Context) error {
	conf, err := initConfig(ctx, true)

	if err != nil {
		return err
	}

	defer conf.Shutdown()

	runs, err := entity.Runs(ctx.Int("n"))

	if err != nil {
		return err
	}

	t := newTable(ctx.App.Writer, "RUN", "JOB", "MEASURES")

	for _, r := range runs {
		t.Row(r.RunUID, r.JobName, r.Measures)
	}

	return t.Flush()
}

// resultsShowAction shows the values of a run.
func resultsShowAction(ctx *cli.Context) error {
	runUID := ctx.Args().First()

	if runUID == "" {
		return cli.ShowSubcommandHelp(ctx)
	}

	conf, err := initConfig(ctx, true)

	if err != nil {
		return err
	}

	defer conf.Shutdown()

	rows, err := entity.FindQualities(runUID)

	if err != nil {
		return err
	} else if len(rows) == 0 {
		return fmt.Errorf("run %s not found", runUID)
	}

	if ctx.Bool("json") {
		list := make([]*entity.Quality, len(rows))

		for i := range rows {
			list[i] = &rows[i]
		}

		enc := json.NewEncoder(ctx.App.Writer)
		enc.SetIndent("", "  ")

		return enc.Encode(list)
	}

	t := newTable(ctx.App.Writer, "MEASURE", "VALUE", "FALLBACK", "PARAMS", "CREATED")

	for _, q := range rows {
		t.Row(q.MeasureName, q.QualityValue, q.Fallback, q.ParamsJSON, q.CreatedAt.Format(time.RFC3339))
	}

	return t.Flush()
}

// resultsBestAction shows the best values of one or all measures.
func resultsBestAction(ctx *cli.Context) error {
	conf, err := initConfig(ctx, true)

	if err != nil {
		return err
	}

	defer conf.Shutdown()

	var rows entity.Qualities

	if name := ctx.Args().First(); name != "" {
		q, err := entity.BestQuality(name)

		if err != nil {
			return fmt.Errorf("%s (best %s)", err, name)
		}

		rows = append(rows, *q)
	} else if rows, err = entity.BestQualities(); err != nil {
		return err
	}

	t := newTable(ctx.App.Writer, "MEASURE", "VALUE", "JOB", "RUN")

	for _, q := range rows {
		t.Row(q.MeasureName, q.QualityValue, q.JobName, q.RunUID)
	}

	return t.Flush()
}

// resultsRemoveAction deletes the values of a run.
func resultsRemoveAction(ctx *cli.Context) error {
	runUID := ctx.Args().First()

	if runUID == "" {
		return cli.ShowSubcommandHelp(ctx)
	}

	if !ctx.Bool("yes") {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Remove all values of run %s?", runUID),
			IsConfirm: true,
		}

		if _, err := prompt.Run(); err != nil {
			log.Infof("results: run %s not removed", runUID)
			return nil
		}
	}

	conf, err := initConfig(ctx, true)

	if err != nil {
		return err
	}

	defer conf.Shutdown()

	n, err := entity.DeleteRun(runUID)

	if err != nil {
		return err
	}

	log.Infof("results: removed %d values of run %s", n, runUID)

	return nil
}
