// internal/handlers/config_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_hsk_flashcard/internal/model"
	"go_hsk_flashcard/internal/service"
	"go_hsk_flashcard/internal/webutil"
)

type ConfigHandler struct {
	app    *service.App
	logger *slog.Logger
}

func NewConfigHandler(app *service.App, logger *slog.Logger) *ConfigHandler {
	return &ConfigHandler{app: app, logger: logger}
}

type configResponse struct {
	HSKLevel  int `json:"hsk_level"`
	PatchSize int `json:"words_per_patch"`
}

func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := h.app.Config()
	webutil.RespondWithJSON(w, http.StatusOK, configResponse{
		HSKLevel:  cfg.HSKLevel,
		PatchSize: cfg.PatchSize,
	})
}

// Update changes level and patch size in one call. The level switch runs
// first so a missing vocabulary file leaves both settings untouched.
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateConfigRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, err)
		return
	}

	ctx := r.Context()
	if req.HSKLevel != nil {
		if err := h.app.SetHSKLevel(ctx, *req.HSKLevel); err != nil {
			webutil.HandleError(w, err)
			return
		}
	}
	if req.PatchSize != nil {
		if err := h.app.SetPatchSize(ctx, *req.PatchSize); err != nil {
			webutil.HandleError(w, err)
			return
		}
	}

	cfg := h.app.Config()
	webutil.RespondWithJSON(w, http.StatusOK, configResponse{
		HSKLevel:  cfg.HSKLevel,
		PatchSize: cfg.PatchSize,
	})
}

func (h *ConfigHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	if err := h.app.ResetProgress(r.Context()); err != nil {
		webutil.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
