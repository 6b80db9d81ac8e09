package db

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS noms_compostos (
        id INT AUTO_INCREMENT PRIMARY KEY,
        nom VARCHAR(255) NOT NULL UNIQUE
    ) DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS particules_cognom (
        id INT AUTO_INCREMENT PRIMARY KEY,
        particula VARCHAR(64) NOT NULL UNIQUE
    ) DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS noms_separats (
        id INT AUTO_INCREMENT PRIMARY KEY,
        nom_complet TEXT NOT NULL,
        nom TEXT NOT NULL,
        cognom1 TEXT NOT NULL,
        cognom2 TEXT NOT NULL,
        origen TEXT,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    ) DEFAULT CHARSET=utf8mb4`,
}

type MySQL struct {
	Host   string
	Port   string
	User   string
	Pass   string
	DBName string
	sqlStore
}

func (d *MySQL) Connect() error {
	port := d.Port
	if port == "" {
		port = "3306"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4", d.User, d.Pass, d.Host, port, d.DBName)
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("error connectant a MySQL: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("error connectant a MySQL: %w", err)
	}
	d.sqlStore = newSQLStore(conn, "mysql", mysqlSchema)
	logInfof("Conectat a MySQL")
	return nil
}
