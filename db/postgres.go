package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS noms_compostos (
        id SERIAL PRIMARY KEY,
        nom TEXT NOT NULL UNIQUE
    )`,
	`CREATE TABLE IF NOT EXISTS particules_cognom (
        id SERIAL PRIMARY KEY,
        particula TEXT NOT NULL UNIQUE
    )`,
	`CREATE TABLE IF NOT EXISTS noms_separats (
        id SERIAL PRIMARY KEY,
        nom_complet TEXT NOT NULL,
        nom TEXT NOT NULL,
        cognom1 TEXT NOT NULL,
        cognom2 TEXT NOT NULL,
        origen TEXT,
        created_at TIMESTAMP DEFAULT NOW()
    )`,
}

type PostgreSQL struct {
	Host   string
	Port   string
	User   string
	Pass   string
	DBName string
	sqlStore
}

func (p *PostgreSQL) Connect() error {
	port := p.Port
	if port == "" {
		port = "5432"
	}
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		p.Host, port, p.User, p.Pass, p.DBName)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("error connectant a PostgreSQL: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("error connectant a PostgreSQL: %w", err)
	}
	p.sqlStore = newSQLStore(conn, "postgres", postgresSchema)
	logInfof("Connectat a PostgreSQL")
	return nil
}
