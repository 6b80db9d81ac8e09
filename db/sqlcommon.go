package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// formatPlaceholders converteix '?' a placeholders de l'estil PostgreSQL ($1, $2...) si cal.
func formatPlaceholders(style, query string) string {
	if strings.ToLower(style) != "postgres" {
		return query
	}
	var b strings.Builder
	idx := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			b.WriteString(fmt.Sprintf("$%d", idx))
			idx++
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}

type sqlHelper struct {
	db    *sql.DB
	style string
}

func newSQLHelper(db *sql.DB, style string) sqlHelper {
	return sqlHelper{db: db, style: strings.ToLower(style)}
}

func (h sqlHelper) ensureSchema(stmts []string) error {
	for _, stmt := range stmts {
		if _, err := h.db.Exec(stmt); err != nil {
			logErrorf("creant taula: %v", err)
			return err
		}
	}
	logInfof("Esquema comprovat (%s, %d sentències)", h.style, len(stmts))
	return nil
}

func (h sqlHelper) listStrings(query string) ([]string, error) {
	rows, err := h.db.Query(formatPlaceholders(h.style, query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// insertIgnore afegeix value a table si encara no hi és.
func (h sqlHelper) insertIgnore(table, column, value string) error {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return fmt.Errorf("valor buit per a %s.%s", table, column)
	}
	var stmt string
	switch h.style {
	case "mysql":
		stmt = fmt.Sprintf("INSERT IGNORE INTO %s (%s) VALUES (?)", table, column)
	case "postgres":
		stmt = fmt.Sprintf("INSERT INTO %s (%s) VALUES (?) ON CONFLICT (%s) DO NOTHING", table, column, column)
	default:
		stmt = fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (?)", table, column)
	}
	_, err := h.db.Exec(formatPlaceholders(h.style, stmt), value)
	return err
}

func (h sqlHelper) saveParsedName(r *NomSeparat) (int, error) {
	stmt := `INSERT INTO noms_separats (nom_complet, nom, cognom1, cognom2, origen) VALUES (?, ?, ?, ?, ?)`
	args := []interface{}{r.NomComplet, r.Nom, r.Cognom1, r.Cognom2, r.Origen}
	if h.style == "postgres" {
		var id int
		if err := h.db.QueryRow(formatPlaceholders(h.style, stmt+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		r.ID = id
		return id, nil
	}
	res, err := h.db.Exec(stmt, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	r.ID = int(id)
	return r.ID, nil
}

func (h sqlHelper) listParsedNames(limit int) ([]NomSeparat, error) {
	query := `SELECT id, nom_complet, nom, cognom1, cognom2, COALESCE(origen, '') FROM noms_separats ORDER BY id`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := h.db.Query(formatPlaceholders(h.style, query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NomSeparat
	for rows.Next() {
		var r NomSeparat
		if err := rows.Scan(&r.ID, &r.NomComplet, &r.Nom, &r.Cognom1, &r.Cognom2, &r.Origen); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
