package configsqlite

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Struct struct {
	File string `json:"file"`
}

// OpenDB opens (creating if necessary) the sqlite database at the
// configured path and applies `schema` to it.
func (config Struct) OpenDB(schema string) (*sql.DB, error) {
	if config.File == "" {
		return nil, fmt.Errorf("a database path was not specified")
	}

	_, statErr := os.Stat(config.File)
	isNewDb := os.IsNotExist(statErr)
	if isNewDb {
		f, err := os.Create(config.File)
		if err != nil {
			return nil, err
		}
		f.Close()
	}

	db, err := sql.Open("sqlite", config.File)
	if err != nil {
		return nil, err
	}
	// sqlite only supports a single concurrent writer, letting
	// database/sql open more connections just trades "database is
	// locked" errors for queueing.
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}

	return db, nil
}
