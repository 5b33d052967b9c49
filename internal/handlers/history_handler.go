// internal/handlers/history_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"go_hsk_flashcard/internal/model"
	"go_hsk_flashcard/internal/service"
	"go_hsk_flashcard/internal/webutil"
)

type HistoryHandler struct {
	app    *service.App
	logger *slog.Logger
}

func NewHistoryHandler(app *service.App, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{app: app, logger: logger}
}

type historyResponse struct {
	Records []*model.SessionRecord `json:"records"`
	Stats   *model.HistoryStats    `json:"stats"`
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			webutil.HandleError(w, model.ErrInvalidInput)
			return
		}
		limit = n
	}

	records, stats, err := h.app.History(r.Context(), limit)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, historyResponse{Records: records, Stats: stats})
}

// RevisionHandler lists what is currently queued for revision.
type RevisionHandler struct {
	app    *service.App
	logger *slog.Logger
}

func NewRevisionHandler(app *service.App, logger *slog.Logger) *RevisionHandler {
	return &RevisionHandler{app: app, logger: logger}
}

func (h *RevisionHandler) List(w http.ResponseWriter, r *http.Request) {
	words, err := h.app.RevisionWords(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, words)
}
