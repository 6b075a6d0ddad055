/*
Package config provides the runtime configuration of the evaluation tools:
logging, evaluation workers, dataset conversion and the results database.

Options are read from an optional YAML file and overridden by command-line
flags and CLUSTEVAL_* environment variables, see GlobalFlags.
*/
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/klauspost/cpuid/v2"
	"github.com/pbnjay/memory"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	// SQLite3 is the only supported results database driver.
	SQLite3 = "sqlite3"
	// DefaultCacheTTL is the default number of seconds converted datasets are cached.
	DefaultCacheTTL = 300
	// MaxSQLiteWorkers limits concurrent writers on SQLite.
	MaxSQLiteWorkers = 4
)

// Megabyte in bytes.
const Megabyte = 1000 * 1000

// RecommendedMem is the minimum amount of memory for parallel evaluations.
const RecommendedMem = 1024 * Megabyte

// TotalMem is the total amount of system memory in bytes.
var TotalMem uint64

func init() {
	TotalMem = memory.TotalMemory()
}

// Config holds the runtime configuration.
type Config struct {
	db      *gorm.DB
	options *Options
}

// NewConfig initialises a new configuration from the command-line context.
func NewConfig(ctx *cli.Context) *Config {
	return &Config{
		options: NewOptions(ctx),
	}
}

// NewConfigWithOptions returns a configuration based on existing options.
func NewConfigWithOptions(opt *Options) *Config {
	if opt == nil {
		opt = &Options{}
	}

	return &Config{options: opt}
}

// Options returns the raw config options.
func (c *Config) Options() *Options {
	return c.options
}

// Init checks the options and applies the log level.
func (c *Config) Init() error {
	if _, err := ParseDistance(c.Distance()); err != nil {
		return err
	}

	log.SetLevel(c.LogLevel())

	if c.options.ConfigFile != "" {
		log.Debugf("config: loaded options from %s", c.options.ConfigFile)
	}

	if TotalMem > 0 && TotalMem < RecommendedMem {
		log.Warnf("config: less than %d MB of memory detected, evaluating measures one by one", RecommendedMem/Megabyte)
	}

	return nil
}

// Debug tests if debug mode is enabled.
func (c *Config) Debug() bool {
	return c.options.Debug
}

// LogLevel returns the logrus log level.
func (c *Config) LogLevel() logrus.Level {
	if c.Debug() {
		return logrus.DebugLevel
	}

	if level, err := logrus.ParseLevel(c.options.LogLevel); err == nil {
		return level
	}

	return logrus.InfoLevel
}

// Workers returns the number of measures that may be evaluated in parallel.
func (c *Config) Workers() int {
	// Use one worker on systems with less than the recommended amount of memory.
	if TotalMem > 0 && TotalMem < RecommendedMem {
		return 1
	}

	// NumCPU returns the number of logical CPU cores.
	cores := runtime.NumCPU()

	// Limit to physical cores to avoid high load on HT capable CPUs.
	if physical := cpuid.CPU.PhysicalCores; physical > 0 && cores > physical {
		cores = physical
	}

	if cores < 1 {
		cores = 1
	}

	workers := c.options.Workers

	if workers <= 0 || workers > cores {
		workers = cores
	}

	// Limit number of workers when using SQLite3 to avoid database locking issues.
	if c.DatabaseDriver() == SQLite3 && workers > MaxSQLiteWorkers {
		return MaxSQLiteWorkers
	}

	return workers
}

// ConvertAbsolute tests if absolute datasets should be converted to similarities.
func (c *Config) ConvertAbsolute() bool {
	return c.options.ConvertAbsolute
}

// CacheTTL returns how long converted datasets are cached.
func (c *Config) CacheTTL() time.Duration {
	if c.options.CacheTTL <= 0 {
		return DefaultCacheTTL * time.Second
	}

	return time.Duration(c.options.CacheTTL) * time.Second
}

// DatabaseDriver returns the database driver name.
func (c *Config) DatabaseDriver() string {
	if c.options.DatabaseDriver == "" {
		return SQLite3
	}

	return c.options.DatabaseDriver
}

// DatabaseDsn returns the database data source name.
func (c *Config) DatabaseDsn() string {
	if c.options.DatabaseDsn == "" {
		return "clusteval.db"
	}

	return c.options.DatabaseDsn
}

// Shutdown closes open database connections.
func (c *Config) Shutdown() {
	if err := c.CloseDb(); err != nil {
		log.Errorf("could not close database connection: %s", err)
	} else {
		log.Debug("closed database connection")
	}
}

// String returns a short summary for log messages.
func (c *Config) String() string {
	return fmt.Sprintf("workers=%d distance=%s convert=%t", c.Workers(), c.Distance(), c.ConvertAbsolute())
}
