// internal/service/app.go
package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go_hsk_flashcard/internal/config"
	"go_hsk_flashcard/internal/middleware"
	"go_hsk_flashcard/internal/model"
	"go_hsk_flashcard/internal/repository"
)

// Status is the main-menu header: where the learner is and how much is left.
type Status struct {
	HSKLevel      int `json:"hsk_level"`
	PatchSize     int `json:"words_per_patch"`
	CurrentPatch  int `json:"current_patch"` // 1-based for display
	TotalPatches  int `json:"total_patches"`
	TotalWords    int `json:"total_words"`
	RevisionCount int `json:"revision_count"`
}

// App wires the configuration, vocabulary, deck and quiz engine together and
// exposes the operations both shells call. It holds no per-session state;
// sessions are owned by whichever shell started them.
type App struct {
	cfg      *config.Config
	db       *gorm.DB
	wordRepo repository.WordRepository
	progRepo repository.ProgressRepository
	revRepo  repository.RevisionRepository
	histRepo repository.HistoryRepository
	quiz     QuizService
	shuffler *Shuffler

	words []model.Word
	deck  DeckService
}

// NewApp loads the vocabulary for the configured level and builds the deck.
// A missing vocabulary file is not fatal at startup: the application runs
// with an empty store until the learner picks a level that exists.
func NewApp(ctx context.Context, cfg *config.Config, db *gorm.DB,
	wordRepo repository.WordRepository, progRepo repository.ProgressRepository,
	revRepo repository.RevisionRepository, histRepo repository.HistoryRepository,
	shuffler *Shuffler) (*App, error) {

	a := &App{
		cfg:      cfg,
		db:       db,
		wordRepo: wordRepo,
		progRepo: progRepo,
		revRepo:  revRepo,
		histRepo: histRepo,
		quiz:     NewQuizService(db, revRepo, histRepo, shuffler),
		shuffler: shuffler,
	}

	words, err := wordRepo.Load(ctx, cfg.HSKLevel)
	if err != nil {
		if !errors.Is(err, model.ErrDataSourceMissing) {
			return nil, err
		}
		middleware.GetLogger(ctx).Warn("Starting with empty vocabulary", "level", cfg.HSKLevel)
		words = []model.Word{}
	}
	a.words = words

	deck, err := NewDeckService(ctx, a.words, cfg.PatchSize, progRepo, shuffler)
	if err != nil {
		return nil, err
	}
	a.deck = deck
	return a, nil
}

func (a *App) Config() *config.Config { return a.cfg }
func (a *App) Deck() DeckService      { return a.deck }
func (a *App) Quiz() QuizService      { return a.quiz }

func (a *App) Status(ctx context.Context) (*Status, error) {
	revision, err := a.revRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	current, total := a.deck.Position()
	if total < current+1 {
		total = current + 1 // empty store still reads "patch 1/1"
	}
	return &Status{
		HSKLevel:      a.cfg.HSKLevel,
		PatchSize:     a.cfg.PatchSize,
		CurrentPatch:  current + 1,
		TotalPatches:  total,
		TotalWords:    a.deck.WordCount(),
		RevisionCount: len(revision),
	}, nil
}

// SetHSKLevel switches the vocabulary. The previous store stays in place
// when the new level has no data file.
func (a *App) SetHSKLevel(ctx context.Context, level int) error {
	if level < config.MinHSKLevel || level > config.MaxHSKLevel {
		return fmt.Errorf("app.SetHSKLevel: level %d: %w", level, model.ErrInvalidInput)
	}

	words, err := a.wordRepo.Load(ctx, level)
	if err != nil {
		return err
	}

	a.cfg.HSKLevel = level
	if err := a.cfg.Save(); err != nil {
		return err
	}

	a.words = words
	deck, err := NewDeckService(ctx, a.words, a.cfg.PatchSize, a.progRepo, a.shuffler)
	if err != nil {
		return err
	}
	a.deck = deck
	return nil
}

func (a *App) SetPatchSize(ctx context.Context, size int) error {
	if size <= 0 {
		return fmt.Errorf("app.SetPatchSize: size %d: %w", size, model.ErrInvalidInput)
	}
	a.cfg.PatchSize = size
	if err := a.cfg.Save(); err != nil {
		return err
	}
	deck, err := NewDeckService(ctx, a.words, size, a.progRepo, a.shuffler)
	if err != nil {
		return err
	}
	a.deck = deck
	return nil
}

// ResetProgress reshuffles and returns to the first patch, keeping the
// vocabulary and revision set untouched.
func (a *App) ResetProgress(ctx context.Context) error {
	return a.deck.Reset(ctx)
}

func (a *App) RevisionWords(ctx context.Context) ([]model.Word, error) {
	return a.revRepo.Load(ctx)
}

// StartLearnCurrent opens an endless learning session over the current patch.
func (a *App) StartLearnCurrent(ctx context.Context) (*Session, error) {
	words, err := a.deck.CurrentPatch(ctx)
	if err != nil {
		return nil, err
	}
	return a.quiz.Start(ctx, words, ModeLearn, a.cfg.HSKLevel)
}

// StartTest opens a finite test over up to numPatches previous patches.
func (a *App) StartTest(ctx context.Context, numPatches int) (*Session, error) {
	words, err := a.deck.TestRange(ctx, numPatches)
	if err != nil {
		return nil, err
	}
	return a.quiz.Start(ctx, words, ModeTest, a.cfg.HSKLevel)
}

// StartRevisionPractice opens an endless session over the revision set.
func (a *App) StartRevisionPractice(ctx context.Context) (*Session, error) {
	words, err := a.revRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, model.ErrEmptyRevision
	}
	return a.quiz.Start(ctx, words, ModeRevisionPractice, a.cfg.HSKLevel)
}

// StartRevisionTest opens the finite round that prunes the revision set.
func (a *App) StartRevisionTest(ctx context.Context) (*Session, error) {
	words, err := a.revRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return a.quiz.Start(ctx, words, ModeRevisionTest, a.cfg.HSKLevel)
}

// History returns the latest session records and the all-time aggregate.
func (a *App) History(ctx context.Context, limit int) ([]*model.SessionRecord, *model.HistoryStats, error) {
	if limit <= 0 {
		limit = 20
	}
	records, err := a.histRepo.FindRecent(ctx, a.db, limit)
	if err != nil {
		return nil, nil, err
	}
	stats, err := a.histRepo.Aggregate(ctx, a.db)
	if err != nil {
		return nil, nil, err
	}
	return records, stats, nil
}
