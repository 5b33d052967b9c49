// internal/handlers/deck_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_hsk_flashcard/internal/service"
	"go_hsk_flashcard/internal/webutil"
)

// DeckHandler exposes the patch cursor over HTTP. Pure adapter: every
// decision lives in the services.
type DeckHandler struct {
	app    *service.App
	logger *slog.Logger
}

func NewDeckHandler(app *service.App, logger *slog.Logger) *DeckHandler {
	return &DeckHandler{app: app, logger: logger}
}

func (h *DeckHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.app.Status(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, status)
}

func (h *DeckHandler) GetCurrentPatch(w http.ResponseWriter, r *http.Request) {
	words, err := h.app.Deck().CurrentPatch(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, words)
}

func (h *DeckHandler) GetPreviousPatch(w http.ResponseWriter, r *http.Request) {
	words, err := h.app.Deck().PreviousPatch(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, words)
}

type moveResponse struct {
	Moved        bool `json:"moved"`
	CurrentPatch int  `json:"current_patch"`
	TotalPatches int  `json:"total_patches"`
}

func (h *DeckHandler) Advance(w http.ResponseWriter, r *http.Request) {
	moved, err := h.app.Deck().Advance(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	current, total := h.app.Deck().Position()
	webutil.RespondWithJSON(w, http.StatusOK, moveResponse{Moved: moved, CurrentPatch: current + 1, TotalPatches: total})
}

func (h *DeckHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	moved, err := h.app.Deck().Retreat(r.Context())
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	current, total := h.app.Deck().Position()
	webutil.RespondWithJSON(w, http.StatusOK, moveResponse{Moved: moved, CurrentPatch: current + 1, TotalPatches: total})
}

func (h *DeckHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.app.ResetProgress(r.Context()); err != nil {
		webutil.HandleError(w, err)
		return
	}
	current, total := h.app.Deck().Position()
	webutil.RespondWithJSON(w, http.StatusOK, moveResponse{Moved: true, CurrentPatch: current + 1, TotalPatches: total})
}
