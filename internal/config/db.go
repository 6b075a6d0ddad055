package config

import (
	"fmt"
	"sync"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/photoprism/clusteval/internal/entity"
)

var dbMutex sync.Mutex

// Db returns the db connection, nil if the database has not been initialized.
func (c *Config) Db() *gorm.DB {
	return c.db
}

// InitDb connects to the results database and migrates the schema.
func (c *Config) InitDb() error {
	if err := c.connectDb(); err != nil {
		return err
	}

	entity.SetDbProvider(c)

	return entity.MigrateDb(c.Db())
}

// CloseDb closes the db connection (if any).
func (c *Config) CloseDb() error {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil

	return err
}

// connectDb establishes a database connection.
func (c *Config) connectDb() error {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	if c.db != nil {
		return nil
	}

	dbDriver := c.DatabaseDriver()
	dbDsn := c.DatabaseDsn()

	if dbDriver != SQLite3 {
		return fmt.Errorf("config: unsupported database driver %s", dbDriver)
	}

	db, err := gorm.Open(dbDriver, dbDsn)

	if err != nil || db == nil {
		return fmt.Errorf("config: %s (connect to database)", err)
	}

	db.LogMode(false)
	db.SetLogger(log)

	// SQLite does not support concurrent writes, and in-memory
	// databases are private to a single connection.
	db.DB().SetMaxOpenConns(1)

	c.db = db

	log.Debugf("config: connected to %s database", dbDriver)

	return nil
}
