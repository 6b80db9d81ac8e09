package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/marcmoiagese/SeparaNoms/core"
	"github.com/marcmoiagese/SeparaNoms/core/noms"
	"github.com/marcmoiagese/SeparaNoms/db"
)

// Mida màxima del cos d'un POST /api/separa.
const maxBodyBytes = 1 << 20

// Separador és el que necessiten els handlers; *core.App el compleix.
type Separador interface {
	Split(fullName string) (noms.ParsedName, error)
	SplitBatch(ctx context.Context, names []string) ([]core.BatchResult, error)
	SaveResults(results []core.BatchResult, origen string) (int, error)
}

type loteRequest struct {
	Noms []string `json:"noms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// SeparaHandler respon a GET /api/separa?nom=...
func SeparaHandler(s Separador) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		p, err := s.Split(r.URL.Query().Get("nom"))
		if errors.Is(err, noms.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "cal el paràmetre nom")
			return
		}
		if err != nil {
			log.Printf("[HTTP] error separant: %v", err)
			writeError(w, http.StatusInternalServerError, "error intern")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// SeparaLotHandler respon a POST /api/separa amb {"noms": [...]}.
// Amb ?desa=1 els resultats correctes es desen a la BD.
func SeparaLotHandler(s Separador) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req loteRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "JSON invàlid")
			return
		}
		if len(req.Noms) == 0 {
			writeError(w, http.StatusBadRequest, "la llista noms és buida")
			return
		}

		results, err := s.SplitBatch(r.Context(), req.Noms)
		if err != nil {
			log.Printf("[HTTP] lot interromput: %v", err)
			writeError(w, http.StatusServiceUnavailable, "petició cancel·lada")
			return
		}

		if desa, _ := strconv.ParseBool(r.URL.Query().Get("desa")); desa {
			if _, err := s.SaveResults(results, "api"); err != nil {
				log.Printf("[HTTP] error desant el lot: %v", err)
				writeError(w, http.StatusInternalServerError, "no s'han pogut desar els resultats")
				return
			}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

// NomsSeparatsHandler llista els noms desats: GET /api/noms?limit=N
func NomsSeparatsHandler(store db.DB) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if store == nil {
			writeError(w, http.StatusNotFound, "no hi ha BD configurada")
			return
		}
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, http.StatusBadRequest, "limit invàlid")
				return
			}
			limit = n
		}
		rows, err := store.ListParsedNames(limit)
		if err != nil {
			log.Printf("[HTTP] error llistant noms: %v", err)
			writeError(w, http.StatusInternalServerError, "error al carregar els noms")
			return
		}
		if rows == nil {
			rows = []db.NomSeparat{}
		}
		writeJSON(w, http.StatusOK, rows)
	}
}
