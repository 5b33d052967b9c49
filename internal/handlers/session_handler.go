// internal/handlers/session_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"go_hsk_flashcard/internal/model"
	"go_hsk_flashcard/internal/service"
	"go_hsk_flashcard/internal/webutil"
)

// SessionHandler owns the single active quiz session of the web shell.
// One session at a time by construction; starting a second one is a 409.
type SessionHandler struct {
	app    *service.App
	logger *slog.Logger

	mu     sync.Mutex
	active *service.Session
}

func NewSessionHandler(app *service.App, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{app: app, logger: logger}
}

type startSessionResponse struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req model.StartSessionRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active != nil {
		webutil.HandleError(w, model.ErrSessionActive)
		return
	}

	ctx := r.Context()
	var (
		session *service.Session
		err     error
	)
	switch service.Mode(req.Mode) {
	case service.ModeLearn:
		session, err = h.app.StartLearnCurrent(ctx)
	case service.ModeTest:
		patches := req.Patches
		if patches == 0 {
			patches = 1
		}
		session, err = h.app.StartTest(ctx, patches)
	case service.ModeRevisionPractice:
		session, err = h.app.StartRevisionPractice(ctx)
	case service.ModeRevisionTest:
		session, err = h.app.StartRevisionTest(ctx)
	default:
		webutil.HandleError(w, model.ErrInvalidInput)
		return
	}
	if err != nil {
		webutil.HandleError(w, err)
		return
	}

	h.active = session
	webutil.RespondWithJSON(w, http.StatusCreated, startSessionResponse{
		SessionID: session.ID.String(),
		Mode:      string(session.Mode),
	})
}

type questionResponse struct {
	Finished bool              `json:"finished"`
	Question *service.Question `json:"question,omitempty"`
}

func (h *SessionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		webutil.HandleError(w, model.ErrNotFound)
		return
	}

	question, err := h.app.Quiz().NextQuestion(r.Context(), h.active)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, questionResponse{
		Finished: question == nil,
		Question: question,
	})
}

func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitAnswerRequest
	if err := webutil.DecodeAndValidate(r, &req); err != nil {
		webutil.HandleError(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		webutil.HandleError(w, model.ErrNotFound)
		return
	}

	answer, err := h.app.Quiz().SubmitAnswer(r.Context(), h.active, *req.Answer)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, answer)
}

// Finish closes the active session (learner done, tab closed, or the finite
// list ran out) and returns the summary. The slot frees for the next round.
func (h *SessionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.active == nil {
		webutil.HandleError(w, model.ErrNotFound)
		return
	}

	summary, err := h.app.Quiz().Finish(r.Context(), h.active)
	if err != nil {
		webutil.HandleError(w, err)
		return
	}
	h.active = nil
	webutil.RespondWithJSON(w, http.StatusOK, summary)
}
