// Package api exposes the ledger over HTTP.
package api

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed static
var staticFiles embed.FS

// NewRouter builds the HTTP routes for the ledger.
func NewRouter(ledger Ledger) http.Handler {
	transactionsHandler := NewTransactionsHandler(ledger)

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Front-end page.
	static, _ := fs.Sub(staticFiles, "static")
	r.Get("/", serveIndex(static))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// Transactions endpoints.
	r.Route("/transacoes", func(r chi.Router) {
		r.Get("/", transactionsHandler.List)
		r.Post("/", transactionsHandler.Create)
		r.Get("/{id}", transactionsHandler.Get)
		r.Put("/{id}", transactionsHandler.Update)
		r.Delete("/{id}", transactionsHandler.Delete)
	})

	r.Get("/saldo", transactionsHandler.Balance)

	// Health check endpoint.
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

func serveIndex(static fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := fs.ReadFile(static, "index.html")
		if err != nil {
			http.Error(w, "page not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(page)
	}
}
