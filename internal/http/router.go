package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authpkg "github.com/rjcosta/brickerp/internal/auth"
	"github.com/rjcosta/brickerp/internal/http/audit"
	"github.com/rjcosta/brickerp/internal/http/auth"
	"github.com/rjcosta/brickerp/internal/http/backup"
	"github.com/rjcosta/brickerp/internal/http/bankimport"
	"github.com/rjcosta/brickerp/internal/http/client"
	"github.com/rjcosta/brickerp/internal/http/contract"
	"github.com/rjcosta/brickerp/internal/http/project"
	"github.com/rjcosta/brickerp/internal/http/reconcile"
	"github.com/rjcosta/brickerp/internal/http/report"
)

func New(
	tokens *authpkg.TokenManager,
	authV1 *auth.Handler,
	clientsV1 *client.Handler,
	projectsV1 *project.Handler,
	contractsV1 *contract.Handler,
	bankEntriesV1 *bankimport.Handler,
	reconcileV1 *reconcile.Handler,
	reportsV1 *report.Handler,
	auditV1 *audit.Handler,
	backupsV1 *backup.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))

			r.Route("/clients", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				clientsV1.Routes(r)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				projectsV1.Routes(r)
			})

			r.Route("/contracts", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				contractsV1.Routes(r)
			})

			// Multipart statement uploads live under /bank-entries/import,
			// so no content-type restriction here.
			r.Route("/bank-entries", bankEntriesV1.Routes)

			r.Route("/reconcile", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				reconcileV1.Routes(r)
			})

			r.Route("/reports", reportsV1.Routes)
			r.Route("/audit", auditV1.Routes)
			r.Route("/backups", backupsV1.Routes)
		})
	})

	return router
}
