//go:generate mockery --name QuizService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go_hsk_flashcard/internal/middleware"
	"go_hsk_flashcard/internal/model"
	"go_hsk_flashcard/internal/pinyin"
	"go_hsk_flashcard/internal/repository"
)

// Mode identifies what a session does with its word list.
type Mode string

const (
	// ModeLearn cycles the list endlessly, never touching the revision set.
	ModeLearn Mode = "learn"
	// ModeTest asks every word once; wrong answers join the revision set.
	ModeTest Mode = "test"
	// ModeRevisionPractice is ModeLearn over the revision set.
	ModeRevisionPractice Mode = "revision_practice"
	// ModeRevisionTest asks every revision word once; correct answers leave
	// the revision set.
	ModeRevisionTest Mode = "revision_test"
)

// IsTest reports whether the session is finite and scores into a report.
func (m Mode) IsTest() bool {
	return m == ModeTest || m == ModeRevisionTest
}

// IsRevision reports whether the session runs over the revision set.
func (m Mode) IsRevision() bool {
	return m == ModeRevisionPractice || m == ModeRevisionTest
}

// PromptKind is what the learner is shown; the answer is always pinyin.
type PromptKind string

const (
	PromptChinese PromptKind = "chinese"
	PromptMeaning PromptKind = "meaning"
)

// Question is one pending prompt.
type Question struct {
	Number int        `json:"number"` // 1-based running count
	Total  int        `json:"total"`  // 0 for endless sessions
	Prompt PromptKind `json:"prompt"`
	Text   string     `json:"text"` // the Chinese form or the meaning
	word   model.Word
}

// Answer is the scored outcome of one question, revealing the full entry.
type Answer struct {
	Correct bool       `json:"correct"`
	Pinyin  string     `json:"pinyin"` // canonical, tone digits
	Word    model.Word `json:"word"`
}

// Summary is the end-of-session report.
type Summary struct {
	Mode      Mode    `json:"mode"`
	Asked     int     `json:"asked"`
	Correct   int     `json:"correct"`
	Score     float64 `json:"score"` // 100 * correct / asked
	Removed   int     `json:"removed,omitempty"`
	Remaining int     `json:"remaining,omitempty"`
}

// Session is one interactive quiz round. It is driven step-wise by a front
// end: NextQuestion, SubmitAnswer, repeat, then Finish.
type Session struct {
	ID        uuid.UUID
	Mode      Mode
	Level     int
	words     []model.Word
	order     []model.Word // current round, session-local shuffle
	pos       int
	asked     int
	correct   int
	toRemove  []model.Word // revision-test words answered correctly
	current   *Question
	startedAt time.Time
	finished  bool
	summary   *Summary
}

// QuizService runs quiz sessions and applies their revision-set effects.
type QuizService interface {
	// Start opens a session over words. Test sessions over an empty list are
	// rejected with ErrNoPriorPatches or ErrEmptyRevision before any state
	// machine exists.
	Start(ctx context.Context, words []model.Word, mode Mode, level int) (*Session, error)
	// NextQuestion returns the next prompt, or nil when a test session has
	// asked its last word. Endless sessions reshuffle and continue.
	NextQuestion(ctx context.Context, s *Session) (*Question, error)
	// SubmitAnswer scores the pending question. In test mode a wrong answer
	// is committed to the revision set immediately, so an interrupted test
	// keeps the additions already made.
	SubmitAnswer(ctx context.Context, s *Session, answer string) (*Answer, error)
	// Finish closes the session, applies revision-test removals, records the
	// session history, and returns the report. Idempotent.
	Finish(ctx context.Context, s *Session) (*Summary, error)
}

type quizService struct {
	db       *gorm.DB
	revRepo  repository.RevisionRepository
	histRepo repository.HistoryRepository
	shuffler *Shuffler
}

func NewQuizService(db *gorm.DB, revRepo repository.RevisionRepository,
	histRepo repository.HistoryRepository, shuffler *Shuffler) QuizService {
	return &quizService{
		db:       db,
		revRepo:  revRepo,
		histRepo: histRepo,
		shuffler: shuffler,
	}
}

func (q *quizService) Start(ctx context.Context, words []model.Word, mode Mode, level int) (*Session, error) {
	logger := middleware.GetLogger(ctx)

	if len(words) == 0 {
		switch {
		case mode == ModeTest:
			return nil, model.ErrNoPriorPatches
		case mode.IsRevision():
			return nil, model.ErrEmptyRevision
		default:
			return nil, fmt.Errorf("quizService.Start: empty word list: %w", model.ErrInvalidInput)
		}
	}

	s := &Session{
		ID:        uuid.New(),
		Mode:      mode,
		Level:     level,
		words:     append([]model.Word(nil), words...),
		startedAt: time.Now(),
	}
	s.order = append([]model.Word(nil), s.words...)
	q.shuffler.ShuffleWords(s.order)

	logger.Info("Quiz session started",
		"session_id", s.ID.String(), "mode", string(mode), "words", len(words))
	return s, nil
}

func (q *quizService) NextQuestion(ctx context.Context, s *Session) (*Question, error) {
	if s.finished {
		return nil, model.ErrSessionFinished
	}
	if s.current != nil {
		return s.current, nil
	}

	if s.pos >= len(s.order) {
		if s.Mode.IsTest() {
			return nil, nil // finite session exhausted
		}
		q.shuffler.ShuffleWords(s.order)
		s.pos = 0
	}

	word := s.order[s.pos]
	prompt := PromptChinese
	// Tests always show the Chinese form; learning rounds flip a coin.
	if !s.Mode.IsTest() && q.shuffler.CoinFlip() {
		prompt = PromptMeaning
	}
	text := word.Chinese
	if prompt == PromptMeaning {
		text = word.Meaning
	}

	total := 0
	if s.Mode.IsTest() {
		total = len(s.order)
	}
	s.current = &Question{
		Number: s.asked + 1,
		Total:  total,
		Prompt: prompt,
		Text:   text,
		word:   word,
	}
	return s.current, nil
}

func (q *quizService) SubmitAnswer(ctx context.Context, s *Session, answer string) (*Answer, error) {
	logger := middleware.GetLogger(ctx)

	if s.finished {
		return nil, model.ErrSessionFinished
	}
	if s.current == nil {
		return nil, fmt.Errorf("quizService.SubmitAnswer: no pending question: %w", model.ErrInvalidInput)
	}

	word := s.current.word
	correct := pinyin.CheckAnswer(answer, word.Pinyin)

	s.asked++
	s.pos++
	s.current = nil
	if correct {
		s.correct++
	}

	switch s.Mode {
	case ModeTest:
		if !correct {
			if err := q.revRepo.Add(ctx, word); err != nil {
				logger.Error("Failed to add word to revision set", "error", err, "chinese", word.Chinese)
				return nil, err
			}
		}
	case ModeRevisionTest:
		if correct {
			s.toRemove = append(s.toRemove, word)
		}
	}

	return &Answer{
		Correct: correct,
		Pinyin:  pinyin.ConvertToneMarks(word.Pinyin),
		Word:    word,
	}, nil
}

func (q *quizService) Finish(ctx context.Context, s *Session) (*Summary, error) {
	logger := middleware.GetLogger(ctx)

	if s.finished {
		return s.summary, nil
	}
	s.finished = true

	summary := &Summary{
		Mode:    s.Mode,
		Asked:   s.asked,
		Correct: s.correct,
	}
	if s.asked > 0 {
		summary.Score = 100 * float64(s.correct) / float64(s.asked)
	}

	if s.Mode == ModeRevisionTest {
		for _, w := range s.toRemove {
			if err := q.revRepo.Remove(ctx, w); err != nil {
				logger.Error("Failed to remove word from revision set", "error", err, "chinese", w.Chinese)
				return nil, err
			}
		}
		summary.Removed = len(s.toRemove)
		summary.Remaining = len(s.words) - len(s.toRemove)
	}

	q.recordHistory(ctx, s, summary)

	s.summary = summary
	logger.Info("Quiz session finished",
		"session_id", s.ID.String(), "mode", string(s.Mode),
		"asked", summary.Asked, "correct", summary.Correct)
	return summary, nil
}

// recordHistory logs the session outcome; history is an observability aid,
// so failures are logged and swallowed rather than failing the session.
func (q *quizService) recordHistory(ctx context.Context, s *Session, summary *Summary) {
	if q.db == nil || s.asked == 0 {
		return
	}
	rec := &model.SessionRecord{
		SessionID:  s.ID,
		Mode:       string(s.Mode),
		HSKLevel:   s.Level,
		Asked:      summary.Asked,
		Correct:    summary.Correct,
		Score:      summary.Score,
		StartedAt:  s.startedAt,
		FinishedAt: time.Now(),
	}
	if err := q.histRepo.Create(ctx, q.db, rec); err != nil {
		middleware.GetLogger(ctx).Warn("Failed to record session history", "error", err)
	}
}
