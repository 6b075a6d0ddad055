package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/photoprism/clusteval/internal/config"
)

const lineJob = "../clusteval/testdata/line.yml"
const absoluteJob = "../clusteval/testdata/absolute.yml"

// run executes the app with the given arguments and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer

	app := cli.NewApp()
	app.Name = "clusteval"
	app.Flags = config.GlobalFlags
	app.Commands = Commands
	app.Writer = &out

	err := app.Run(append([]string{"clusteval", "--log-level", "error"}, args...))

	return out.String(), err
}

func TestMeasuresCommand(t *testing.T) {
	out, err := run(t, "measures")

	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Len(t, lines, 19)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, out, "TransClust F1")
	assert.Regexp(t, `DaviesBouldinIndexR\s+Davies-Bouldin Index \(R\)\s+\[-Inf, \+Inf\]\s+lower`, out)
	assert.Regexp(t, `RandIndex\s+Rand Index\s+\[0, 1\]\s+higher\s+yes\s+no\s+no`, out)
}

func TestEvalCommand(t *testing.T) {
	t.Run("Table", func(t *testing.T) {
		out, err := run(t, "eval", lineJob)

		require.NoError(t, err)
		assert.Contains(t, out, "line (2 clusters, 4 items)")
		assert.Regexp(t, `DunnIndexR\s+10\s+false`, out)
		assert.Contains(t, out, `{"beta":"2"}`)
		assert.NotContains(t, out, "BEST JOB")
	})
	t.Run("Best", func(t *testing.T) {
		out, err := run(t, "--convert-absolute", "eval", "--measure", "DunnIndexR", lineJob, absoluteJob)

		require.NoError(t, err)
		assert.Contains(t, out, "BEST JOB")
		assert.Regexp(t, `DunnIndexR\s+line\s+10`, out)
	})
	t.Run("JSON", func(t *testing.T) {
		out, err := run(t, "eval", "--json", "--params", `{"beta": 0.5}`, "--measure", "F-Beta", lineJob)

		require.NoError(t, err)

		var result []map[string]interface{}

		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.Len(t, result, 1)
		assert.Equal(t, "line", result[0]["Job"])

		values := result[0]["Values"].([]interface{})
		require.Len(t, values, 1)

		v := values[0].(map[string]interface{})
		assert.Equal(t, "FBeta", v["Measure"])
		assert.Equal(t, "1", v["Value"])
		assert.Equal(t, map[string]interface{}{"beta": "0.5"}, v["Params"])
	})
	t.Run("InvalidParams", func(t *testing.T) {
		_, err := run(t, "eval", "--params", "{", lineJob)
		assert.Error(t, err)
	})
	t.Run("NotFound", func(t *testing.T) {
		_, err := run(t, "eval", "missing.yml")
		assert.Error(t, err)
	})
}

func TestResultsCommand(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "results.db")

	out, err := run(t, "--database-dsn", dsn, "eval", "--save", "--json", lineJob)
	require.NoError(t, err)

	var saved []struct{ RunUID string }

	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.Len(t, saved, 1)

	runUID := saved[0].RunUID

	t.Run("List", func(t *testing.T) {
		out, err := run(t, "--database-dsn", dsn, "results", "ls")

		require.NoError(t, err)
		assert.Regexp(t, runUID+`\s+line\s+5`, out)
	})
	t.Run("Show", func(t *testing.T) {
		out, err := run(t, "--database-dsn", dsn, "results", "show", runUID)

		require.NoError(t, err)
		assert.Regexp(t, `RandIndex\s+1\s+false`, out)

		out, err = run(t, "--database-dsn", dsn, "results", "show", "--json", runUID)

		require.NoError(t, err)

		var rows []map[string]interface{}

		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		assert.Len(t, rows, 5)
		assert.Equal(t, runUID, rows[0]["RunUID"])

		_, err = run(t, "--database-dsn", dsn, "results", "show", "unknown")
		assert.Error(t, err)
	})
	t.Run("Best", func(t *testing.T) {
		out, err := run(t, "--database-dsn", dsn, "results", "best", "Dunn Index (R)")

		require.NoError(t, err)
		assert.Regexp(t, `DunnIndexR\s+10\s+line`, out)

		out, err = run(t, "--database-dsn", dsn, "results", "best")

		require.NoError(t, err)
		assert.Contains(t, out, "Silhouette")
		assert.Contains(t, out, "FBeta")
	})
	t.Run("Remove", func(t *testing.T) {
		_, err := run(t, "--database-dsn", dsn, "results", "rm", "--yes", runUID)
		require.NoError(t, err)

		_, err = run(t, "--database-dsn", dsn, "results", "show", runUID)
		assert.Error(t, err)
	})
}
