package configlibsql

import (
	"database/sql"
	"net/url"

	devenv "reviewtopics/dev/env"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Struct describes where a database lives. With neither field set the
// database is in memory, File is a local sqlite file (may use
// <dev_state>), Url is a remote libsql server.
type Struct struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (config Struct) OpenDB() (*sql.DB, error) {
	if config.Url != "" {
		values := url.Values{}
		if config.AuthToken != "" {
			values.Add("authToken", config.AuthToken)
		}
		dsn := config.Url
		if len(values) > 0 {
			dsn += "?" + values.Encode()
		}
		return sql.Open("libsql", dsn)
	}

	dbpath := ":memory:"
	if config.File != "" && config.File != ":memory:" {
		var err error
		dbpath, err = devenv.ResolvePath(config.File)
		if err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", dbpath)
	if err != nil {
		return nil, err
	}
	// every new connection to :memory: would be a separate, empty database
	db.SetMaxOpenConns(1)
	return db, nil
}
