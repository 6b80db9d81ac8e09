package handlers

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/marcmoiagese/SeparaNoms/db"
)

// Routes munta l'API. store pot ser nil; aleshores /api/noms respon 404.
// rateInterval 0 desactiva el límit per IP.
func Routes(s Separador, store db.DB, rateInterval time.Duration) http.Handler {
	router := httprouter.New()
	router.GET("/api/separa", SeparaHandler(s))
	router.POST("/api/separa", SeparaLotHandler(s))
	router.GET("/api/noms", NomsSeparatsHandler(store))
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "ruta desconeguda")
	})

	middlewares := []func(http.Handler) http.Handler{SecureHeaders}
	if rateInterval > 0 {
		middlewares = append(middlewares, NewRateLimiter(rateInterval).Middleware)
	}
	return applyMiddleware(router, middlewares...)
}
