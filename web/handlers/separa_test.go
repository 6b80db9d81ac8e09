package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcmoiagese/SeparaNoms/cnf"
	"github.com/marcmoiagese/SeparaNoms/core"
	"github.com/marcmoiagese/SeparaNoms/core/noms"
	"github.com/marcmoiagese/SeparaNoms/db"
)

func newTestApp(t *testing.T, withDB bool) *core.App {
	t.Helper()
	dict, err := noms.NewDictionary([]string{"Jose Maria"}, nil)
	require.NoError(t, err)
	app := &core.App{
		Config:   cnf.AppConfig{Workers: 2},
		Splitter: noms.NewSplitter(dict, noms.Options{}),
	}
	if withDB {
		db.SetLogLevel("silent")
		store, err := db.NewDB(map[string]string{
			"DB_ENGINE": "sqlite",
			"DB_PATH":   filepath.Join(t.TempDir(), "api.db"),
		})
		require.NoError(t, err)
		app.DB = store
		t.Cleanup(store.Close)
	}
	return app
}

func TestSeparaGET(t *testing.T) {
	app := newTestApp(t, false)
	h := Routes(app, app.DB, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/separa?nom="+url.QueryEscape("Jose Maria Hernandez Almodovar"), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.JSONEq(t, `{"nom":"Jose Maria","cognom1":"Hernandez","cognom2":"Almodovar"}`, rec.Body.String())
}

func TestSeparaGETBuit(t *testing.T) {
	app := newTestApp(t, false)
	h := Routes(app, nil, 0)

	for _, target := range []string{"/api/separa", "/api/separa?nom=%20%20"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "error", target)
	}
}

func TestSeparaLotPOST(t *testing.T) {
	app := newTestApp(t, true)
	h := Routes(app, app.DB, 0)

	body := `{"noms":["Juan Perez de la Cruz","","Jose"]}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/separa?desa=1", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Juan Perez de la Cruz", got[0]["entrada"])
	assert.Equal(t, "Perez", got[0]["cognom1"])
	assert.Equal(t, "de la Cruz", got[0]["cognom2"])
	assert.NotEmpty(t, got[1]["error"])
	assert.Equal(t, "Jose", got[2]["nom"])
	assert.Empty(t, got[2]["cognom1"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/noms?limit=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []db.NomSeparat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "api", rows[0].Origen)
	assert.Equal(t, "Jose", rows[1].NomComplet)
}

func TestSeparaLotPOSTInvalid(t *testing.T) {
	app := newTestApp(t, false)
	h := Routes(app, nil, 0)

	cases := map[string]string{
		"json trencat": `{"noms":`,
		"llista buida": `{"noms":[]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/separa", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSeparaLotDesaSenseBD(t *testing.T) {
	app := newTestApp(t, false)
	h := Routes(app, nil, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/separa?desa=true", strings.NewReader(`{"noms":["Jose Hernandez"]}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNomsSenseBD(t *testing.T) {
	app := newTestApp(t, false)
	h := Routes(app, nil, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/noms", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNomsLimitInvalid(t *testing.T) {
	app := newTestApp(t, true)
	h := Routes(app, app.DB, 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/noms?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/noms", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRutaDesconeguda(t *testing.T) {
	app := newTestApp(t, false)
	rec := httptest.NewRecorder()
	Routes(app, nil, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inexistent", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"ruta desconeguda"}`, rec.Body.String())
}

func TestRateLimiter(t *testing.T) {
	app := newTestApp(t, false)
	h := Routes(app, nil, time.Hour)

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/separa?nom=Jose", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:5678"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1234"))
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(time.Second)
	now := time.Now()
	assert.True(t, rl.allow("ip", now))
	assert.False(t, rl.allow("ip", now.Add(500*time.Millisecond)))
	assert.True(t, rl.allow("ip", now.Add(2*time.Second)))
}
