/*
documents.go - Document generation endpoints

PURPOSE:
  Produces the RTW document pack for a case. A single requested type
  streams back as a PDF; multiple types come back zipped. Every
  generated document is recorded against the case for the audit trail.

SEE ALSO:
  - docgen/: PDF rendering and field provenance
  - handlers.go: The rest of the HTTP surface
*/
package api

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sga/workcover-engine/claims"
	"github.com/sga/workcover-engine/docgen"
)

// DocumentTypes returns the generatable document catalogue.
// GET /api/documents/types
func (h *Handler) DocumentTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, docgen.Catalogue())
}

// GenerateDocuments renders the requested documents for a case.
// POST /api/cases/{id}/documents/generate
func (h *Handler) GenerateDocuments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := claims.CaseID(chi.URLParam(r, "id"))

	var req GenerateDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Types) == 0 {
		writeError(w, http.StatusBadRequest, "At least one document type is required", nil)
		return
	}

	c, err := h.Store.Case(ctx, id)
	if err != nil {
		writeStoreError(w, "Failed to get case", err)
		return
	}

	aux := docgen.Aux{Medical: req.Medical, Doctor: req.Doctor, Incident: req.Incident}
	files, err := docgen.Generate(c, req.Types, aux, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate documents", err)
		return
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No known document types requested", nil)
		return
	}

	for t, f := range files {
		if err := h.Store.RecordDocument(ctx, id, string(t), f.Name); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to record document", err)
			return
		}
	}

	if len(files) == 1 {
		for _, f := range files {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
			w.WriteHeader(http.StatusOK)
			w.Write(f.Content)
			return
		}
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	// Catalogue order keeps the archive stable across requests.
	for _, info := range docgen.Catalogue() {
		f, ok := files[info.Type]
		if !ok {
			continue
		}
		entry, err := zw.Create(f.Name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to build archive", err)
			return
		}
		if _, err := entry.Write(f.Content); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to build archive", err)
			return
		}
	}
	if err := zw.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build archive", err)
		return
	}

	worker := strings.ReplaceAll(c.WorkerName, " ", "_")
	if worker == "" {
		worker = "Worker"
	}
	zipName := fmt.Sprintf("%s_Documents_%s.zip", worker, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", zipName))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
