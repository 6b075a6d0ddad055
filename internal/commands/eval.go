package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/urfave/cli"

	"github.com/photoprism/clusteval/internal/clusteval"
	"github.com/photoprism/clusteval/internal/quality"
)

// EvalCommand registers the eval cli command.
var EvalCommand = cli.Command{
	Name:      "eval",
	Usage:     "Evaluates the clusterings of job files or directories",
	ArgsUsage: "[path...]",
	Flags: []cli.Flag{
		cli.Float64Flag{
			Name:  "threshold, t",
			Usage: "remove fuzzy memberships with a coefficient below `VALUE`",
		},
		cli.BoolFlag{
			Name:  "hard",
			Usage: "evaluate the primary memberships of fuzzy clusterings only",
		},
		cli.BoolFlag{
			Name:  "save, s",
			Usage: "store the values in the results database",
		},
		cli.StringFlag{
			Name:  "params, p",
			Usage: "measure parameters as `JSON` object, e.g. {\"beta\": 2}",
		},
		cli.StringSliceFlag{
			Name:  "measure, m",
			Usage: "evaluate `NAME` instead of the measures listed in the job",
		},
		cli.BoolFlag{
			Name:  "json",
			Usage: "print the values as json",
		},
	},
	Action: evalAction,
}

// evalAction evaluates the given jobs and reports the values.
func evalAction(ctx *cli.Context) error {
	start := time.Now()

	if !ctx.Args().Present() {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}

	params, err := quality.ParseParameters(ctx.String("params"))

	if err != nil {
		return err
	}

	opt := clusteval.EvaluateOptions{
		Threshold: ctx.Float64("threshold"),
		Hard:      ctx.Bool("hard"),
		Save:      ctx.Bool("save"),
		Params:    params,
		Measures:  ctx.StringSlice("measure"),
	}

	conf, err := initConfig(ctx, opt.Save)

	if err != nil {
		return err
	}

	defer conf.Shutdown()

	files, err := clusteval.FindJobs(ctx.Args()...)

	if err != nil {
		return err
	}

	cctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	go func() {
		select {
		case <-sig:
			log.Warnf("eval: interrupted, canceling")
			cancel()
		case <-cctx.Done():
		}
	}()

	w := clusteval.NewEvaluator(conf)

	var results []clusteval.EvaluateResult

	for _, fileName := range files {
		job, err := clusteval.LoadJob(fileName)

		if err != nil {
			log.Errorf("eval: %s", err)
			continue
		}

		result, err := w.Start(cctx, job, opt)

		if err != nil {
			return err
		}

		results = append(results, result)
	}

	out := ctx.App.Writer

	if ctx.Bool("json") {
		return writeJSON(out, results)
	}

	for _, r := range results {
		fmt.Fprintf(out, "%s (%s, %s)\n", r.Job, english.Plural(r.Clusters, "cluster", "clusters"), english.Plural(r.Items, "item", "items"))

		t := newTable(out, "MEASURE", "VALUE", "FALLBACK", "PARAMS", "ERROR")

		for _, v := range r.Values {
			errText := ""

			if v.Err != nil {
				errText = v.Err.Error()
			}

			t.Row(v.Measure, v.Value, v.Value.Fallback, formatParams(v.Params), errText)
		}

		if err := t.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(out)
	}

	if len(results) > 1 {
		if err := writeBest(out, results); err != nil {
			return err
		}
	}

	log.Infof("evaluated %s in %s", english.Plural(len(results), "job", "jobs"), time.Since(start))

	return nil
}

// writeBest writes the best job per measure.
func writeBest(out io.Writer, results []clusteval.EvaluateResult) error {
	t := newTable(out, "MEASURE", "BEST JOB", "VALUE")

	for _, name := range quality.Names() {
		i, err := clusteval.Best(name, results)

		if err != nil {
			continue
		}

		v, _ := results[i].Value(name)
		t.Row(name, results[i].Job, v)
	}

	return t.Flush()
}

func formatParams(p quality.Parameters) string {
	if len(p) == 0 {
		return ""
	}

	j, _ := json.Marshal(p)

	return string(j)
}

type jsonValue struct {
	Measure  string
	Value    string
	Fallback bool               `json:",omitempty"`
	Params   quality.Parameters `json:",omitempty"`
	Error    string             `json:",omitempty"`
}

type jsonResult struct {
	RunUID string
	Job    string
	Values []jsonValue
}

func writeJSON(out io.Writer, results []clusteval.EvaluateResult) error {
	list := make([]jsonResult, 0, len(results))

	for _, r := range results {
		jr := jsonResult{RunUID: r.RunUID, Job: r.Job}

		for _, v := range r.Values {
			jv := jsonValue{Measure: v.Measure, Value: v.Value.String(), Fallback: v.Value.Fallback, Params: v.Params}

			if v.Err != nil {
				jv.Error = v.Err.Error()
			}

			jr.Values = append(jr.Values, jv)
		}

		list = append(list, jr)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(list)
}
