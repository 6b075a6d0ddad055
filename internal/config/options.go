package config

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"gopkg.in/yaml.v2"

	"github.com/photoprism/clusteval/pkg/fs"
)

// Options holds the configuration values. Values read from a config file
// are overridden by command-line flags and environment variables.
type Options struct {
	ConfigFile      string `yaml:"-"`
	Debug           bool   `yaml:"Debug" json:"Debug"`
	LogLevel        string `yaml:"LogLevel" json:"-"`
	Workers         int    `yaml:"Workers" json:"Workers"`
	ConvertAbsolute bool   `yaml:"ConvertAbsolute" json:"ConvertAbsolute"`
	Distance        string `yaml:"Distance" json:"Distance"`
	CacheTTL        int    `yaml:"CacheTTL" json:"CacheTTL"`
	DatabaseDriver  string `yaml:"DatabaseDriver" json:"-"`
	DatabaseDsn     string `yaml:"DatabaseDsn" json:"-"`
}

// NewOptions creates a new configuration entity by using two methods:
//
// 1. Load: This will initialize options from a yaml config file.
//
// 2. SetContext: Which comes after Load and overrides
// any previous options giving an option two override file configs through the CLI.
func NewOptions(ctx *cli.Context) *Options {
	c := &Options{}

	if ctx == nil {
		return c
	}

	c.ConfigFile = ctx.GlobalString("config-file")

	if err := c.Load(c.ConfigFile); err != nil {
		log.Debugf("config: %s", err)
	}

	c.SetContext(ctx)

	return c
}

// Load uses a yaml config file to initiate the configuration entity.
func (c *Options) Load(fileName string) error {
	if fileName == "" {
		return nil
	}

	if !fs.FileExists(fileName) {
		return fmt.Errorf("%s not found", fileName)
	}

	yamlConfig, err := os.ReadFile(fileName)

	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(yamlConfig, c); err != nil {
		return fmt.Errorf("%s in %s", err, fileName)
	}

	return nil
}

// SetContext uses options from the CLI to setup configuration overrides
// for the entity. Flags that were not set explicitly only fill in values
// the config file left empty.
func (c *Options) SetContext(ctx *cli.Context) {
	if ctx == nil {
		return
	}

	override := func(name string, empty bool) bool {
		return ctx.GlobalIsSet(name) || empty
	}

	if override("debug", !c.Debug) {
		c.Debug = ctx.GlobalBool("debug")
	}

	if override("log-level", c.LogLevel == "") {
		c.LogLevel = ctx.GlobalString("log-level")
	}

	if override("workers", c.Workers == 0) {
		c.Workers = ctx.GlobalInt("workers")
	}

	if override("convert-absolute", !c.ConvertAbsolute) {
		c.ConvertAbsolute = ctx.GlobalBool("convert-absolute")
	}

	if override("distance", c.Distance == "") {
		c.Distance = ctx.GlobalString("distance")
	}

	if override("cache-ttl", c.CacheTTL == 0) {
		c.CacheTTL = ctx.GlobalInt("cache-ttl")
	}

	if override("database-driver", c.DatabaseDriver == "") {
		c.DatabaseDriver = ctx.GlobalString("database-driver")
	}

	if override("database-dsn", c.DatabaseDsn == "") {
		c.DatabaseDsn = ctx.GlobalString("database-dsn")
	}
}
