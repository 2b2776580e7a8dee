package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/felixgeelhaar/fundplan/internal/catalog"
	fperrors "github.com/felixgeelhaar/fundplan/internal/errors"
	"github.com/felixgeelhaar/fundplan/internal/preset"
	"github.com/felixgeelhaar/fundplan/internal/schedule"
)

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error       string   `json:"error"`
	Code        string   `json:"error_code,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type catalogResponse struct {
	Fingerprint string `json:"fingerprint"`
	*catalog.Catalog
	Warnings []string `json:"warnings,omitempty"`
}

type presetsResponse struct {
	Presets []*preset.Preset `json:"presets"`
}

// scheduleRequest carries the preset name. The remaining fields of the
// body are decoded straight onto a schedule.Config.
type scheduleRequest struct {
	Preset string `json:"preset"`
}

type scheduleResponse struct {
	*schedule.Schedule
	Warnings []string `json:"warnings,omitempty"`
}

type rowsResponse struct {
	ID       string         `json:"id"`
	Rows     []schedule.Row `json:"rows"`
	Warnings []string       `json:"warnings,omitempty"`
}

// handleCatalog serves the loaded catalog with its fingerprint and lint
// warnings.
// GET /v1/catalog
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c := s.computer.Catalog()
	respondJSON(w, http.StatusOK, catalogResponse{
		Fingerprint: c.Fingerprint(),
		Catalog:     c,
		Warnings:    schedule.Lint(c),
	})
}

// GET /v1/presets
func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	if s.presets == nil {
		respondJSON(w, http.StatusOK, presetsResponse{Presets: []*preset.Preset{}})
		return
	}
	presets, err := s.presets.List()
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, presetsResponse{Presets: presets})
}

// GET /v1/presets/{name}
func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.loadPreset(chi.URLParam(r, "name"))
	if err != nil {
		status := statusFor(err)
		if code, _ := fperrors.CodeOf(err); code == fperrors.ErrCodePresetUnknown {
			status = http.StatusNotFound
		}
		s.respondError(w, r, status, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// handleSchedule computes a schedule. The body holds schedule options in
// their snake_case form plus an optional "preset". Options start from the
// defaults, then the preset is applied, then fields present in the body
// win. With ?view=rows the response is the flat export form.
// POST /v1/schedule
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.respondError(w, r, http.StatusRequestEntityTooLarge,
			fperrors.Wrap(fperrors.ErrCodeServerBadRequest, "failed to read request body", err))
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		s.respondError(w, r, http.StatusBadRequest,
			fperrors.New(fperrors.ErrCodeServerBadRequest, "request body is required").
				WithSuggestion(`Send at least {"first_close": "YYYY-MM-DD", "final_close": "YYYY-MM-DD"}`))
		return
	}

	cfg, err := s.decodeConfig(body)
	if err != nil {
		s.respondError(w, r, statusFor(err), err)
		return
	}
	if err := cfg.Validate(); err != nil {
		s.respondError(w, r, statusFor(err), err)
		return
	}

	warnings := cfg.Unrecognized()
	for _, warning := range warnings {
		s.logger.WarnContext(r.Context(), "unrecognized option", "warning", warning)
	}

	sched := s.computer.Compute(cfg)

	if r.URL.Query().Get("view") == "rows" {
		rows := schedule.Rows(sched.Phases)
		if rows == nil {
			rows = []schedule.Row{}
		}
		respondJSON(w, http.StatusOK, rowsResponse{ID: sched.ID.String(), Rows: rows, Warnings: warnings})
		return
	}
	respondJSON(w, http.StatusOK, scheduleResponse{Schedule: sched, Warnings: warnings})
}

func (s *Server) decodeConfig(body []byte) (schedule.Config, error) {
	var req scheduleRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return schedule.Config{}, badRequest(err)
	}

	cfg := schedule.DefaultConfig()
	if req.Preset != "" {
		p, err := s.loadPreset(req.Preset)
		if err != nil {
			return schedule.Config{}, err
		}
		cfg = p.Apply(cfg)
	}

	if err := json.Unmarshal(body, &cfg); err != nil {
		return schedule.Config{}, badRequest(err)
	}
	return cfg, nil
}

func (s *Server) loadPreset(name string) (*preset.Preset, error) {
	if s.presets == nil {
		return nil, fperrors.NewPresetUnknownError(name)
	}
	return s.presets.Load(name)
}

func badRequest(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fperrors.Wrap(fperrors.ErrCodeServerBadRequest, "malformed JSON request body", err)
	}
	return fperrors.Wrap(fperrors.ErrCodeServerBadRequest, "invalid schedule request", err).
		WithSuggestion("Dates use the YYYY-MM-DD format, e.g. 2025-06-01")
}

// statusFor maps an error code category to an HTTP status.
func statusFor(err error) int {
	code, ok := fperrors.CodeOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch code.Category() {
	case "CONFIG", "PRESET", "SERVER":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if s.metrics != nil {
		s.metrics.RecordError(err)
	}
	if status >= http.StatusInternalServerError {
		s.logger.LogErrorContext(r.Context(), err)
	}

	resp := errorResponse{Error: err.Error()}
	var fe *fperrors.FundplanError
	if errors.As(err, &fe) {
		resp.Error = fe.Message
		if fe.Cause != nil {
			resp.Error += ": " + fe.Cause.Error()
		}
		resp.Code = string(fe.Code)
		resp.Suggestions = fe.Suggestions
	}
	respondJSON(w, status, resp)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
