package commands

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/photoprism/clusteval/internal/quality"
)

// MeasuresCommand registers the measures cli command.
var MeasuresCommand = cli.Command{
	Name:   "measures",
	Usage:  "Lists the available quality measures",
	Action: measuresAction,
}

// measuresAction lists the measures of the registry.
func measuresAction(ctx *cli.Context) error {
	t := newTable(ctx.App.Writer, "NAME", "ALIAS", "RANGE", "BETTER", "GOLD STANDARD", "DATA", "FUZZY")

	for _, m := range quality.Measures() {
		t.Row(m.Name(), m.Alias(), fmt.Sprintf("[%g, %g]", m.Minimum(), m.Maximum()), better(m), yesNo(m.RequiresGoldStandard()), yesNo(m.RequiresData()), yesNo(m.SupportsFuzzy()))
	}

	return t.Flush()
}

func better(m quality.Measure) string {
	if m.IsBetterThan(quality.NewValue(0), quality.NewValue(1)) {
		return "lower"
	}

	return "higher"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
