/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logging:    Structured request logging (logrus)
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/cases/*          Case management, certificates, payroll, docs
  /api/certificates     COC tracker (latest per case + totals)
  /api/terminations/*   Termination proceedings
  /api/calculator       Standalone compensation computation
  /api/alerts           Dashboard alerts + counts
  /api/activity         Audit log
  /api/documents/types  Document catalogue

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/workcover/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/sga/workcover-engine/store/sqlite"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Logger *logrus.Logger
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{Store: store, Logger: logger}
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(h.LoggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/cases", func(r chi.Router) {
			r.Get("/", h.ListCases)
			r.Post("/", h.CreateCase)
			r.Get("/{id}", h.GetCase)
			r.Put("/{id}", h.UpdateCase)
			r.Get("/{id}/certificates", h.ListCertificates)
			r.Post("/{id}/certificates", h.AddCertificate)
			r.Get("/{id}/payroll", h.ListPayroll)
			r.Post("/{id}/payroll", h.RecordPayroll)
			r.Get("/{id}/rtw-schedule", h.RTWSchedule)
			r.Get("/{id}/checklist", h.GetChecklist)
			r.Put("/{id}/checklist", h.UpdateChecklist)
			r.Post("/{id}/documents/generate", h.GenerateDocuments)
		})

		r.Get("/certificates", h.CertificateTracker)

		r.Route("/terminations", func(r chi.Router) {
			r.Get("/", h.ListTerminations)
			r.Post("/", h.CreateTermination)
			r.Put("/{id}", h.UpdateTermination)
		})

		r.Get("/payroll", h.PayrollHistory)
		r.Post("/calculator", h.Calculator)
		r.Get("/alerts", h.Alerts)
		r.Get("/activity", h.Activity)
		r.Get("/documents/types", h.DocumentTypes)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Workcover Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Workcover Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/cases">/api/cases</a> - List cases</li>
<li><a href="/api/certificates">/api/certificates</a> - COC tracker</li>
<li><a href="/api/alerts">/api/alerts</a> - Dashboard alerts</li>
<li><a href="/api/documents/types">/api/documents/types</a> - Document catalogue</li>
</ul>
</body>
</html>`))
	})

	return r
}
