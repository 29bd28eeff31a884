//go:build !cgo_sqlite

package db

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	sqliteDriverName = "sqlite"
	sqliteDriverType = "purego"
)

func init() {
	sqlx.BindDriver(sqliteDriverName, sqlx.QUESTION)
}
