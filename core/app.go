package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/marcmoiagese/SeparaNoms/cnf"
	"github.com/marcmoiagese/SeparaNoms/core/noms"
	"github.com/marcmoiagese/SeparaNoms/db"
)

type App struct {
	Config   cnf.AppConfig
	Splitter *noms.Splitter
	DB       db.DB
}

// NewApp carrega el diccionari (de fitxer o de la BD) i prepara el separador.
// store pot ser nil; si cal BD i no n'hi ha, s'obre amb la configuració.
func NewApp(cfg cnf.AppConfig, store db.DB) (*App, error) {
	SetLogLevel(cfg.LogLevel)
	db.SetLogLevel(cfg.LogLevel)

	a := &App{Config: cfg, DB: store}

	var dict *noms.Dictionary
	var err error
	switch cfg.DictSource {
	case "db":
		if err = a.OpenDB(); err != nil {
			return nil, err
		}
		dict, err = LoadDictionaryFromDB(a.DB)
	default:
		dict, err = noms.LoadDictionaryFile(cfg.DictPath)
	}
	if err != nil {
		a.Close()
		Errorf("diccionari (%s): %v", cfg.DictSource, err)
		return nil, fmt.Errorf("no s'ha pogut carregar el diccionari: %w", err)
	}

	a.Splitter = noms.NewSplitter(dict, cfg.SplitterOptions())
	Infof("Diccionari carregat: %d noms compostos, %d partícules (origen %s)",
		dict.Len(), len(dict.Markers()), cfg.DictSource)
	return a, nil
}

// OpenDB obre la BD configurada si encara no n'hi ha cap.
func (a *App) OpenDB() error {
	if a.DB != nil {
		return nil
	}
	store, err := db.NewDB(a.Config.DBConfig())
	if err != nil {
		return fmt.Errorf("no s'ha pogut obrir la BD: %w", err)
	}
	a.DB = store
	return nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// LoadDictionaryFromDB construeix el diccionari amb les taules noms_compostos
// i particules_cognom. Una entrada incorrecta fa fallar la càrrega.
func LoadDictionaryFromDB(store db.DB) (*noms.Dictionary, error) {
	given, err := store.ListCompoundGivenNames()
	if err != nil {
		return nil, fmt.Errorf("llegint noms compostos: %w", err)
	}
	markers, err := store.ListSurnameMarkers()
	if err != nil {
		return nil, fmt.Errorf("llegint partícules: %w", err)
	}
	return noms.NewDictionary(given, markers)
}

// ImportDictionary desa a la BD totes les entrades de dict.
func ImportDictionary(store db.DB, dict *noms.Dictionary) (int, error) {
	n := 0
	for _, nom := range dict.GivenNames() {
		if err := store.AddCompoundGivenName(nom); err != nil {
			return n, fmt.Errorf("desant %q: %w", nom, err)
		}
		n++
	}
	for _, p := range dict.Markers() {
		if err := store.AddSurnameMarker(p); err != nil {
			return n, fmt.Errorf("desant partícula %q: %w", p, err)
		}
		n++
	}
	Infof("Diccionari importat a la BD: %d entrades", n)
	return n, nil
}

func (a *App) Split(fullName string) (noms.ParsedName, error) {
	return a.Splitter.Split(fullName)
}

// BatchResult és el resultat d'un nom dins d'un lot.
type BatchResult struct {
	Input string `json:"entrada"`
	noms.ParsedName
	Err   error  `json:"-"`
	Error string `json:"error,omitempty"`
}

// SplitBatch separa names en paral·lel (WORKERS goroutines) i conserva
// l'ordre. Els errors d'un nom es desen al resultat; només la cancel·lació
// del context fa fallar el lot.
func (a *App) SplitBatch(ctx context.Context, names []string) ([]BatchResult, error) {
	results := make([]BatchResult, len(names))
	workers := a.Config.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := a.Splitter.Split(name)
			results[i] = BatchResult{Input: name, ParsedName: p}
			if err != nil {
				results[i].Err = err
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	Debugf("lot de %d noms separat", len(names))
	return results, nil
}

// SaveResults desa a la BD els resultats sense error.
func (a *App) SaveResults(results []BatchResult, origen string) (int, error) {
	if a.DB == nil {
		return 0, fmt.Errorf("no hi ha BD configurada")
	}
	saved := 0
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if _, err := a.DB.SaveParsedName(toRecord(r.ParsedName, origen)); err != nil {
			return saved, err
		}
		saved++
	}
	return saved, nil
}

func toRecord(p noms.ParsedName, origen string) *db.NomSeparat {
	return &db.NomSeparat{
		NomComplet: p.FullName(),
		Nom:        p.GivenName,
		Cognom1:    p.FirstSurname,
		Cognom2:    p.SecondSurname,
		Origen:     origen,
	}
}
