package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/piwi3910/RackPlan/internal/engine"
	"github.com/piwi3910/RackPlan/internal/export"
	"github.com/piwi3910/RackPlan/internal/model"
	"github.com/piwi3910/RackPlan/internal/project"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// readBody reads the request body up to the configured limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}
	return data, true
}

// decodeConfig decodes a Configuration body on top of the server base.
// An empty body yields the base configuration.
func (s *Server) decodeConfig(w http.ResponseWriter, r *http.Request) (model.Config, bool) {
	data, ok := s.readBody(w, r)
	if !ok {
		return model.Config{}, false
	}
	cfg, err := project.DecodeConfig(bytes.NewReader(data), project.FormatJSON, s.opts.Base)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return model.Config{}, false
	}
	return cfg, true
}

func (s *Server) compute(cfg model.Config) model.Result {
	res := engine.Compute(cfg)
	s.metrics.observe(res)
	s.log.Debug("computed capacity",
		zap.Int("bays", res.BayCount),
		zap.Float64("totalCBM", res.TotalCBM),
		zap.Int("errors", len(res.Validation.Errors)),
	)
	if res.Validation.HasDegenerate() {
		s.log.Warn("degenerate computation",
			zap.String("summary", res.Validation.Summary),
			zap.String("method", string(res.BayCountDetails.Method)),
		)
	}
	return res
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDefaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Base)
}

func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfig(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.compute(cfg))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfig(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.compute(cfg).Validation)
}

type boqResponse struct {
	BayCount int           `json:"bayCount"`
	Levels   int           `json:"levels"`
	BoQ      model.BoQ     `json:"boq"`
	Items    []boqLineItem `json:"items"`
	Summary  string        `json:"summary"`
}

type boqLineItem struct {
	Key         string `json:"key"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

func (s *Server) handleBoQ(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfig(w, r)
	if !ok {
		return
	}
	res := s.compute(cfg)

	items := make([]boqLineItem, 0, 6)
	for _, item := range res.BoQ.Items() {
		items = append(items, boqLineItem{Key: item.Key, Quantity: item.Quantity, Description: item.Description})
	}
	writeJSON(w, http.StatusOK, boqResponse{
		BayCount: res.BayCount,
		Levels:   cfg.Levels,
		BoQ:      res.BoQ,
		Items:    items,
		Summary:  res.Validation.Summary,
	})
}

type compareRequest struct {
	Scenarios []struct {
		Name   string          `json:"name"`
		Config json.RawMessage `json:"config"`
	} `json:"scenarios"`
}

// handleCompare accepts either {"scenarios": [{name, config}, ...]} or a
// single configuration, in which case the default what-if variants are built
// around it.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readBody(w, r)
	if !ok {
		return
	}

	var req compareRequest
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid compare request: %v", err))
			return
		}
	}

	var scenarios []engine.ComparisonScenario
	if len(req.Scenarios) > 0 {
		for i, sc := range req.Scenarios {
			cfg, err := project.DecodeConfig(bytes.NewReader(sc.Config), project.FormatJSON, s.opts.Base)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("scenario %d: %v", i+1, err))
				return
			}
			name := sc.Name
			if name == "" {
				name = fmt.Sprintf("Scenario %d", i+1)
			}
			scenarios = append(scenarios, engine.ComparisonScenario{Name: name, Config: cfg})
		}
	} else {
		base, err := project.DecodeConfig(bytes.NewReader(data), project.FormatJSON, s.opts.Base)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		scenarios = engine.BuildDefaultScenarios(base)
	}

	results := engine.CompareScenarios(scenarios)
	for _, res := range results {
		s.metrics.observe(res.Result)
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.decodeConfig(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, engine.PlaceBays(cfg))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, known := model.ParseExportFormat(mux.Vars(r)["format"])
	if !known {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown export format %q", mux.Vars(r)["format"]))
		return
	}
	cfg, ok := s.decodeConfig(w, r)
	if !ok {
		return
	}
	res := s.compute(cfg)

	var buf bytes.Buffer
	if err := export.Write(&buf, format, cfg, res, s.now()); err != nil {
		s.log.Error("export failed", zap.String("format", string(format)), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.exports.WithLabelValues(string(format)).Inc()

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="rackplan%s"`, export.Extension(format)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
