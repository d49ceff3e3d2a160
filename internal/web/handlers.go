package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/storefront-tools/catalog-sync/internal/importer"
	"github.com/storefront-tools/catalog-sync/internal/logging"
)

// handleImport processes a catalog import upload.
//
// Expects a multipart form with:
//   - file:   the CSV or XLSX file (required)
//   - mode:   create, update, or upsert (required)
//   - dryRun: "true" to validate without committing (optional)
//
// On success it returns the import result as JSON, including per-row errors.
// Structural problems with the file (empty, unreadable, missing required
// columns) are a 400; a concurrent import already holding the slot is a 429.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	mode, err := importer.ParseMode(r.FormValue("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dryRun := r.FormValue("dryRun") == "true"

	if err := s.limiter.Acquire(r.Context()); err != nil {
		if errors.Is(err, importer.ErrBusy) {
			w.Header().Set("Retry-After", "10")
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	defer s.limiter.Release()

	logger := logging.WithFields(r.Context(),
		"file", header.Filename,
		"mode", mode.String(),
		"dry_run", dryRun,
	)
	logger.Info("import started", "size", header.Size)

	result, err := s.engine.Run(r.Context(), file, importer.Options{
		Mode:     mode,
		FileName: header.Filename,
		DryRun:   dryRun,
	})
	if err != nil {
		logger.Error("import failed", "error", err)
		writeError(w, importStatus(err), err.Error())
		return
	}

	writeJSON(w, result)
}

// importStatus maps engine errors to HTTP status codes. Input problems are
// client errors; anything else rolled the transaction back server-side.
func importStatus(err error) int {
	var verr *importer.FileError
	switch {
	case errors.Is(err, importer.ErrEmptyFile),
		errors.Is(err, importer.ErrFileTooLarge),
		errors.As(err, &verr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// handleImportTemplate serves the downloadable CSV template.
func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products_template.csv"`)
	if _, err := w.Write(importer.Template()); err != nil {
		logging.FromContext(r.Context()).Error("template write error", "error", err)
	}
}

// handleListProducts returns a page of products.
// Query parameters: page (1-based, default 1), pageSize (default 50, max 200).
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := queryInt(r, "pageSize", 50)
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	products, total, err := s.catalog.ListProducts(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	writeJSON(w, map[string]any{
		"products": products,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// handleGetProduct returns a single product by SKU.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if sku == "" {
		writeError(w, http.StatusBadRequest, "missing sku")
		return
	}

	product, err := s.catalog.GetProductBySKU(r.Context(), sku)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	writeJSON(w, product)
}

// handleListCategories returns every category.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	writeJSON(w, map[string]any{"categories": categories})
}

// handleHealth reports liveness, including database reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// queryInt parses an integer query parameter, falling back to def.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
