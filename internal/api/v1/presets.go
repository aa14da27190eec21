package v1

import (
	"errors"
	"net/http"

	"github.com/vmunix/renamarr/internal/presets"
)

func (s *Server) listPresets(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Presets.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, presetsResponse{Presets: list})
}

func (s *Server) savePreset(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := s.deps.Presets.Save(r.Context(), req.Name, req.Scheme); err != nil {
		if errors.Is(err, presets.ErrInvalidPreset) {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, presets.Preset{Name: req.Name, Scheme: req.Scheme})
}

func (s *Server) deletePreset(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Presets.Delete(r.Context(), r.PathValue("name"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, presets.ErrBuiltinPreset):
		writeError(w, http.StatusConflict, "BUILTIN_PRESET", err.Error())
	case errors.Is(err, presets.ErrPresetNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
	}
}

func (s *Server) renamePreset(w http.ResponseWriter, r *http.Request) {
	var req renamePresetRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	old := r.PathValue("name")
	err := s.deps.Presets.Rename(r.Context(), old, req.Name)
	switch {
	case err == nil:
		s.log.Info("preset renamed", "from", old, "to", req.Name)
		writeJSON(w, http.StatusOK, map[string]string{"name": req.Name})
	case errors.Is(err, presets.ErrInvalidPreset):
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, presets.ErrBuiltinPreset):
		writeError(w, http.StatusConflict, "BUILTIN_PRESET", err.Error())
	case errors.Is(err, presets.ErrPresetNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
	}
}
