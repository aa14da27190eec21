package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vmunix/renamarr/internal/events"
	"github.com/vmunix/renamarr/internal/importer"
)

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit must be non-negative")
		return
	}

	ctx := r.Context()
	entries, err := s.deps.History.List(ctx, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	canUndo, err := s.deps.History.CanUndo(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	canRedo, err := s.deps.History.CanRedo(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	if entries == nil {
		entries = []*importer.HistoryEntry{}
	}

	writeJSON(w, http.StatusOK, historyResponse{
		Entries: entries,
		Total:   len(entries),
		CanUndo: canUndo,
		CanRedo: canRedo,
	})
}

func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	h, err := s.deps.History.Undo(r.Context())
	if errors.Is(err, importer.ErrNothingToUndo) {
		writeError(w, http.StatusConflict, "NOTHING_TO_UNDO", err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "UNDO_FAILED", err.Error())
		return
	}

	s.log.Info("rename undone", "id", h.ID, "from", h.NewPath, "to", h.OriginalPath)
	s.publishUndone(r, h, h.NewPath, h.OriginalPath, false)
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) redo(w http.ResponseWriter, r *http.Request) {
	h, err := s.deps.History.Redo(r.Context())
	if errors.Is(err, importer.ErrNothingToRedo) {
		writeError(w, http.StatusConflict, "NOTHING_TO_REDO", err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "REDO_FAILED", err.Error())
		return
	}

	s.log.Info("rename redone", "id", h.ID, "from", h.OriginalPath, "to", h.NewPath)
	s.publishUndone(r, h, h.OriginalPath, h.NewPath, true)
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) publishUndone(r *http.Request, h *importer.HistoryEntry, from, to string, redo bool) {
	if s.deps.Bus == nil {
		return
	}
	err := s.deps.Bus.Publish(r.Context(), &events.FileUndone{
		BaseEvent: events.NewBaseEvent(events.EventFileUndone, events.EntityHistory, strconv.FormatInt(h.ID, 10)),
		From:      from,
		To:        to,
		Redo:      redo,
	})
	if err != nil {
		s.log.Warn("publish history event", "error", err)
	}
}
