package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrUnknownEngine es retorna quan DB_ENGINE no és sqlite, postgres ni mysql.
var ErrUnknownEngine = errors.New("motor de BD desconegut")

// DB és l'emmagatzematge del diccionari i dels noms separats.
type DB interface {
	Connect() error
	Close()
	Init() error
	ListCompoundGivenNames() ([]string, error)
	ListSurnameMarkers() ([]string, error)
	AddCompoundGivenName(nom string) error
	AddSurnameMarker(particula string) error
	SaveParsedName(r *NomSeparat) (int, error)
	ListParsedNames(limit int) ([]NomSeparat, error)
}

// NomSeparat és una fila de noms_separats.
type NomSeparat struct {
	ID         int    `json:"id"`
	NomComplet string `json:"nom_complet"`
	Nom        string `json:"nom"`
	Cognom1    string `json:"cognom1"`
	Cognom2    string `json:"cognom2"`
	Origen     string `json:"origen,omitempty"`
}

// Funció principal per obtenir una connexió amb les taules creades
func NewDB(config map[string]string) (DB, error) {
	var dbInstance DB
	engine := config["DB_ENGINE"]

	switch engine {
	case "sqlite", "":
		dbInstance = &SQLite{Path: config["DB_PATH"]}
	case "postgres":
		dbInstance = &PostgreSQL{
			Host:   config["DB_HOST"],
			Port:   config["DB_PORT"],
			User:   config["DB_USR"],
			Pass:   config["DB_PASS"],
			DBName: config["DB_NAME"],
		}
	case "mysql":
		dbInstance = &MySQL{
			Host:   config["DB_HOST"],
			Port:   config["DB_PORT"],
			User:   config["DB_USR"],
			Pass:   config["DB_PASS"],
			DBName: config["DB_NAME"],
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, engine)
	}

	if err := dbInstance.Connect(); err != nil {
		return nil, err
	}
	if err := dbInstance.Init(); err != nil {
		dbInstance.Close()
		return nil, fmt.Errorf("error creant les taules (%s): %w", engine, err)
	}
	return dbInstance, nil
}

// sqlStore implementa la part comuna als tres motors.
type sqlStore struct {
	Conn   *sql.DB
	help   sqlHelper
	schema []string
}

func newSQLStore(conn *sql.DB, style string, schema []string) sqlStore {
	return sqlStore{Conn: conn, help: newSQLHelper(conn, style), schema: schema}
}

func (s *sqlStore) Close() {
	if s.Conn != nil {
		s.Conn.Close()
	}
}

func (s *sqlStore) Init() error {
	return s.help.ensureSchema(s.schema)
}

func (s *sqlStore) ListCompoundGivenNames() ([]string, error) {
	return s.help.listStrings(`SELECT nom FROM noms_compostos ORDER BY nom`)
}

// ListSurnameMarkers retorna nil si la taula és buida, perquè el diccionari
// faci servir les partícules per defecte.
func (s *sqlStore) ListSurnameMarkers() ([]string, error) {
	return s.help.listStrings(`SELECT particula FROM particules_cognom ORDER BY particula`)
}

func (s *sqlStore) AddCompoundGivenName(nom string) error {
	return s.help.insertIgnore("noms_compostos", "nom", nom)
}

func (s *sqlStore) AddSurnameMarker(particula string) error {
	return s.help.insertIgnore("particules_cognom", "particula", particula)
}

func (s *sqlStore) SaveParsedName(r *NomSeparat) (int, error) {
	return s.help.saveParsedName(r)
}

func (s *sqlStore) ListParsedNames(limit int) ([]NomSeparat, error) {
	return s.help.listParsedNames(limit)
}
