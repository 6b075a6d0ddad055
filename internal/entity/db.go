/*
Package entity contains the models for storing evaluation results in the
results database, along with queries for ranking them.

The database connection is provided by the configuration, see
SetDbProvider.
*/
package entity

import (
	"errors"
	"sync"

	"github.com/jinzhu/gorm"
)

// ErrNoDb is returned when no database connection is available.
var ErrNoDb = errors.New("entity: database not connected")

// DbProvider provides a database connection.
type DbProvider interface {
	Db() *gorm.DB
}

var (
	dbProvider DbProvider
	dbMutex    sync.RWMutex
)

// SetDbProvider sets the provider to get a gorm db connection.
func SetDbProvider(provider DbProvider) {
	dbMutex.Lock()
	defer dbMutex.Unlock()

	dbProvider = provider
}

// HasDbProvider returns true if a db provider exists.
func HasDbProvider() bool {
	dbMutex.RLock()
	defer dbMutex.RUnlock()

	return dbProvider != nil
}

// Db returns a database connection instance, nil if none is available.
func Db() *gorm.DB {
	dbMutex.RLock()
	defer dbMutex.RUnlock()

	if dbProvider == nil {
		return nil
	}

	return dbProvider.Db()
}

// Entities lists the models of the results database.
var Entities = []interface{}{
	&Quality{},
}

// MigrateDb creates or updates the tables of all entities.
func MigrateDb(db *gorm.DB) error {
	if db == nil {
		return ErrNoDb
	}

	for _, e := range Entities {
		if err := db.AutoMigrate(e).Error; err != nil {
			log.Errorf("entity: %s (migrate)", err)
			return err
		}
	}

	return nil
}
