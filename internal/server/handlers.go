package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cloudscope/cloudscope/pkg/errors"
	"github.com/cloudscope/cloudscope/pkg/layout"
	"github.com/cloudscope/cloudscope/pkg/render"
	"github.com/cloudscope/cloudscope/pkg/view"
)

// noneSentinel in a filter parameter means "deselect everything", since an
// absent parameter means "leave the dimension as it is".
const noneSentinel = "_none_"

// maxUploadBytes bounds source document uploads.
const maxUploadBytes = 64 << 20

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	applyFilterParam(s, r, "regions", view.DimensionRegion)
	applyFilterParam(s, r, "services", view.DimensionService)

	v := s.sess.View()
	report := s.sess.Report()
	writeJSON(w, http.StatusOK, map[string]any{
		"nodes": v.Nodes,
		"edges": v.Edges,
		"build_report": map[string]int{
			"duplicate_ids": report.DuplicateIDs,
			"dropped_edges": report.DroppedEdges,
			"error_nodes":   report.ErrorNodes,
		},
	})
}

// applyFilterParam updates one dimension from a comma-separated query
// parameter. Absent parameter: no change. The sentinel "_none_": clear.
func applyFilterParam(s *Server, r *http.Request, param string, d view.Dimension) {
	if !r.URL.Query().Has(param) {
		return
	}
	raw := r.URL.Query().Get(param)
	if raw == noneSentinel {
		s.sess.SetFilter(d, nil)
		return
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	s.sess.SetFilter(d, values)
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"regions": map[string]any{
			"available": s.sess.FilterUniverse(view.DimensionRegion),
			"active":    s.sess.FilterActive(view.DimensionRegion),
		},
		"services": map[string]any{
			"available": s.sess.FilterUniverse(view.DimensionService),
			"active":    s.sess.FilterActive(view.DimensionService),
		},
	})
}

func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Regions  *[]string `json:"regions"`
		Services *[]string `json:"services"`
		Reset    bool      `json:"reset"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidDocument, "invalid filter body"))
		return
	}

	if body.Reset {
		s.sess.ResetFilters()
	}
	if body.Regions != nil {
		s.sess.SetFilter(view.DimensionRegion, *body.Regions)
	}
	if body.Services != nil {
		s.sess.SetFilter(view.DimensionService, *body.Services)
	}
	s.handleFilters(w, r)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Stats())
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sources": s.sess.Sources()})
}

func (s *Server) handleAddSource(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload.json"
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeIngestion, err, "read upload"))
		return
	}

	res, err := s.sess.AddSource(r.Context(), name, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleRemoveSource(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeStateTransition, "source index must be a number"))
		return
	}

	res, err := s.sess.RemoveSource(r.Context(), index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.Clear(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleNodeDetail(w http.ResponseWriter, r *http.Request) {
	d, err := s.sess.Detail(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	res := s.sess.Search(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSetLayout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Mode layout.Mode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidDocument, "invalid layout body"))
		return
	}
	if err := s.sess.SetLayoutMode(body.Mode); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sess.LayoutPlan())
}

func (s *Server) handleLayoutPlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.LayoutPlan())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := render.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = render.FormatSVG
	}

	data, err := s.exporter.Export(r.Context(), s.sess.View(), s.sess.LayoutPlan(), format)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "export"))
		return
	}

	switch format {
	case render.FormatSVG:
		w.Header().Set("Content-Type", "image/svg+xml")
	case render.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the failure taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeIngestion, errors.ErrCodeInvalidDocument:
		status = http.StatusBadRequest
	case errors.ErrCodeStateTransition:
		status = http.StatusConflict
	case errors.ErrCodeNotFound, errors.ErrCodeSourceNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
