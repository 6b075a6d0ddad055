package config

import (
	"github.com/urfave/cli"
)

// GlobalFlags describes the global command-line parameters and flags.
var GlobalFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "config-file, c",
		Usage:  "load config options from `FILENAME`",
		EnvVar: "CLUSTEVAL_CONFIG_FILE",
	},
	cli.BoolFlag{
		Name:   "debug",
		Usage:  "enable debug mode, show additional log messages",
		EnvVar: "CLUSTEVAL_DEBUG",
	},
	cli.StringFlag{
		Name:   "log-level, l",
		Usage:  "log message verbosity `LEVEL` (trace, debug, info, warning, error, fatal, panic)",
		Value:  "info",
		EnvVar: "CLUSTEVAL_LOG_LEVEL",
	},
	cli.IntFlag{
		Name:   "workers, w",
		Usage:  "maximum `NUMBER` of measures evaluated in parallel (0 for auto)",
		EnvVar: "CLUSTEVAL_WORKERS",
	},
	cli.BoolFlag{
		Name:   "convert-absolute",
		Usage:  "convert absolute datasets to pairwise similarities for measures that require them",
		EnvVar: "CLUSTEVAL_CONVERT_ABSOLUTE",
	},
	cli.StringFlag{
		Name:   "distance",
		Usage:  "distance `METRIC` used to convert absolute datasets (euclidean, manhattan, squared)",
		Value:  DistanceEuclidean,
		EnvVar: "CLUSTEVAL_DISTANCE",
	},
	cli.IntFlag{
		Name:   "cache-ttl",
		Usage:  "number of `SECONDS` converted datasets are kept in memory",
		Value:  DefaultCacheTTL,
		EnvVar: "CLUSTEVAL_CACHE_TTL",
	},
	cli.StringFlag{
		Name:   "database-driver",
		Usage:  "database `DRIVER` for storing results (sqlite)",
		Value:  SQLite3,
		EnvVar: "CLUSTEVAL_DATABASE_DRIVER",
	},
	cli.StringFlag{
		Name:   "database-dsn",
		Usage:  "database connection `DSN` (sqlite filename)",
		Value:  "clusteval.db",
		EnvVar: "CLUSTEVAL_DATABASE_DSN",
	},
}
