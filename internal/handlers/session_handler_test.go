// internal/handlers/session_handler_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_hsk_flashcard/internal/config"
	"go_hsk_flashcard/internal/repository"
	"go_hsk_flashcard/internal/service"
)

// newTestApp builds a real application over a temp data directory, with no
// history database. The vocabulary is small enough to finish a test quickly.
func newTestApp(t *testing.T) *service.App {
	t.Helper()
	dir := t.TempDir()

	resourceDir := filepath.Join(dir, config.ResourceDirName)
	require.NoError(t, os.Mkdir(resourceDir, 0o755))
	csvData := "chinese,pinyin,meaning\n你好,nǐ hǎo,hello\n谢谢,xiè xie,thanks\n"
	require.NoError(t, os.WriteFile(filepath.Join(resourceDir, "hsk1.csv"), []byte(csvData), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	app, err := service.NewApp(context.Background(), cfg, nil,
		repository.NewFileWordRepository(cfg.ResourceDir()),
		repository.NewFileProgressRepository(cfg.ProgressFile()),
		repository.NewFileRevisionRepository(cfg.RevisionFile()),
		repository.NewGormHistoryRepository(),
		service.NewSeededShuffler(11))
	require.NoError(t, err)
	return app
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	raw, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dst))
}

func TestSessionHandler_Lifecycle(t *testing.T) {
	app := newTestApp(t)
	h := NewSessionHandler(app, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Start a learning session.
	rec := postJSON(t, h.Start, `{"mode":"learn"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var started struct {
		SessionID string `json:"session_id"`
		Mode      string `json:"mode"`
	}
	decodeBody(t, rec, &started)
	assert.NotEmpty(t, started.SessionID)
	assert.Equal(t, "learn", started.Mode)

	// A second session while one is running is a conflict.
	rec = postJSON(t, h.Start, `{"mode":"learn"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Fetch a question.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	h.GetQuestion(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var qResp struct {
		Finished bool `json:"finished"`
		Question *struct {
			Number int    `json:"number"`
			Text   string `json:"text"`
		} `json:"question"`
	}
	decodeBody(t, rec, &qResp)
	assert.False(t, qResp.Finished)
	require.NotNil(t, qResp.Question)
	assert.Equal(t, 1, qResp.Question.Number)

	// Answer it (wrong on purpose; learning mode has no side effects).
	rec = postJSON(t, h.SubmitAnswer, `{"answer":"zzz9"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var aResp struct {
		Correct bool   `json:"correct"`
		Pinyin  string `json:"pinyin"`
	}
	decodeBody(t, rec, &aResp)
	assert.False(t, aResp.Correct)
	assert.NotEmpty(t, aResp.Pinyin)

	// Finish and read the report.
	rec = postJSON(t, h.Finish, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary struct {
		Asked   int     `json:"asked"`
		Correct int     `json:"correct"`
		Score   float64 `json:"score"`
	}
	decodeBody(t, rec, &summary)
	assert.Equal(t, 1, summary.Asked)
	assert.Equal(t, 0, summary.Correct)

	// The slot is free again.
	rec = postJSON(t, h.Start, `{"mode":"learn"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSessionHandler_NoActiveSession(t *testing.T) {
	app := newTestApp(t)
	h := NewSessionHandler(app, slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.GetQuestion(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postJSON(t, h.SubmitAnswer, `{"answer":"hao3"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postJSON(t, h.Finish, `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionHandler_RejectsUnknownMode(t *testing.T) {
	app := newTestApp(t)
	h := NewSessionHandler(app, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := postJSON(t, h.Start, `{"mode":"cram"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandler_TestWithoutPriorPatches(t *testing.T) {
	app := newTestApp(t)
	h := NewSessionHandler(app, slog.New(slog.NewTextHandler(io.Discard, nil)))

	rec := postJSON(t, h.Start, `{"mode":"test","patches":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
