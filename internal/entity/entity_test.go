package entity

import (
	"os"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/sirupsen/logrus"
)

type testDb struct {
	db *gorm.DB
}

func (t *testDb) Db() *gorm.DB {
	return t.db
}

func TestMain(m *testing.M) {
	log.SetLevel(logrus.ErrorLevel)

	db, err := gorm.Open("sqlite3", ":memory:")

	if err != nil {
		panic(err)
	}

	db.DB().SetMaxOpenConns(1)

	SetDbProvider(&testDb{db: db})

	if err := MigrateDb(db); err != nil {
		panic(err)
	}

	code := m.Run()

	_ = db.Close()

	os.Exit(code)
}
