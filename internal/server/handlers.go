package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/songdash/internal/dashboard"
	"github.com/desertthunder/songdash/internal/formatter"
	"github.com/desertthunder/songdash/internal/models"
	"github.com/desertthunder/songdash/internal/services"
	"github.com/desertthunder/songdash/internal/shared"
)

// ExportHandler serves the CSV download and chart datasets.
//
// Each request builds its own [dashboard.Dashboard], so the processed list is
// derived exactly as the terminal dashboard derives it.
type ExportHandler struct {
	svc       services.Service
	listLimit int
	logger    *log.Logger
}

// NewExportHandler creates an ExportHandler over svc.
func NewExportHandler(svc services.Service, listLimit int, logger *log.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, listLimit: listLimit, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *ExportHandler) Routes() []string {
	return []string{"GET /songs.csv", "GET /charts"}
}

// ServeHTTP dispatches on the request path.
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/songs.csv":
		h.serveCSV(w, r)
	case "/charts":
		h.serveCharts(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not Found")
	}
}

func (h *ExportHandler) dashboard() *dashboard.Dashboard {
	return dashboard.New(h.svc, dashboard.Options{ListLimit: h.listLimit, Logger: h.logger})
}

// serveCSV answers GET /songs.csv?sort=<field>&dir=<asc|desc>&title=<query>.
func (h *ExportHandler) serveCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort, err := ParseSort(q.Get("sort"), q.Get("dir"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d := h.dashboard()
	if title := q.Get("title"); strings.TrimSpace(title) != "" {
		err = d.Search(r.Context(), title)
	} else {
		err = d.Load(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, d.Error())
		return
	}
	d.SetSort(sort)

	w.Header().Set("Content-Type", formatter.CSVContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", formatter.CSVFilename))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, d.CSV())
}

// serveCharts answers GET /charts with the datasets built from the full list.
func (h *ExportHandler) serveCharts(w http.ResponseWriter, r *http.Request) {
	d := h.dashboard()
	if err := d.Load(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, d.Error())
		return
	}
	writeJSON(w, http.StatusOK, d.Charts())
}

// Health answers {"status":"ok"}.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ParseSort reads a sort descriptor from query values; empty values give id ascending.
func ParseSort(field, dir string) (models.SortDescriptor, error) {
	f, err := models.ParseSortField(field)
	if err != nil {
		return models.SortDescriptor{}, fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", string(models.Ascending):
		return models.SortDescriptor{Field: f, Direction: models.Ascending}, nil
	case string(models.Descending):
		return models.SortDescriptor{Field: f, Direction: models.Descending}, nil
	default:
		return models.SortDescriptor{}, fmt.Errorf("%w: unknown sort direction %q", shared.ErrInvalidArgument, dir)
	}
}

// NewExportRouter wires the export routes behind recovery and request logging.
func NewExportRouter(svc services.Service, listLimit int, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(Recover(logger), Logging(logger))
	router.Get("/health", Health)
	router.Handler(NewExportHandler(svc, listLimit, logger))
	return router
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"detail":%q}`, err.Error())
	}
}

// writeError answers with a {"detail": ...} body like the backend does.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
