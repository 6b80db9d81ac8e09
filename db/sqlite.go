package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS noms_compostos (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        nom TEXT NOT NULL UNIQUE
    )`,
	`CREATE TABLE IF NOT EXISTS particules_cognom (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        particula TEXT NOT NULL UNIQUE
    )`,
	`CREATE TABLE IF NOT EXISTS noms_separats (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        nom_complet TEXT NOT NULL,
        nom TEXT NOT NULL,
        cognom1 TEXT NOT NULL,
        cognom2 TEXT NOT NULL,
        origen TEXT,
        created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    )`,
}

type SQLite struct {
	Path string
	sqlStore
}

func (d *SQLite) Connect() error {
	path := d.Path
	if path == "" {
		path = "./separanoms.db"
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("error obrint SQLite: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("error connectant a SQLite: %w", err)
	}
	d.sqlStore = newSQLStore(conn, "sqlite", sqliteSchema)
	logInfof("Connectat a SQLite (%s)", path)
	return nil
}
