//go:generate mockery --name DeckService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"fmt"

	"go_hsk_flashcard/internal/middleware"
	"go_hsk_flashcard/internal/model"
	"go_hsk_flashcard/internal/repository"
)

// DeckService partitions a shuffled permutation of the vocabulary into
// fixed-size patches and tracks the learner's position. Every mutation is
// persisted before it returns; the in-memory state never runs ahead of the
// progress file.
type DeckService interface {
	CurrentPatch(ctx context.Context) ([]model.Word, error)
	PreviousPatch(ctx context.Context) ([]model.Word, error)
	Advance(ctx context.Context) (bool, error)
	Retreat(ctx context.Context) (bool, error)
	// TestRange returns the words of up to numPatches patches immediately
	// before the current one, flattened in permutation order.
	TestRange(ctx context.Context, numPatches int) ([]model.Word, error)
	Reset(ctx context.Context) error
	// Position reports the 0-based current patch index and the total patch count.
	Position() (current, total int)
	WordCount() int
}

type deckService struct {
	words     []model.Word
	patchSize int
	progress  *model.Progress
	progRepo  repository.ProgressRepository
	shuffler  *Shuffler
}

// NewDeckService loads the persisted cursor and repairs it against the
// current vocabulary: a permutation whose length no longer matches the word
// count is regenerated and the cursor reset to the first patch.
func NewDeckService(ctx context.Context, words []model.Word, patchSize int,
	progRepo repository.ProgressRepository, shuffler *Shuffler) (DeckService, error) {

	if patchSize <= 0 {
		return nil, fmt.Errorf("NewDeckService: patch size %d: %w", patchSize, model.ErrInvalidInput)
	}

	progress, err := progRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &deckService{
		words:     words,
		patchSize: patchSize,
		progress:  progress,
		progRepo:  progRepo,
		shuffler:  shuffler,
	}

	if len(progress.ShuffledIndices) != len(words) {
		logger := middleware.GetLogger(ctx)
		logger.Info("Permutation out of date, regenerating",
			"stored", len(progress.ShuffledIndices), "words", len(words))
		if err := s.reshuffle(ctx); err != nil {
			return nil, err
		}
	}

	// A larger patch size shrinks the patch count, which can strand the
	// stored cursor past the last patch.
	maxIndex := s.totalPatches() - 1
	if maxIndex < 0 {
		maxIndex = 0
	}
	if s.progress.CurrentIndex > maxIndex {
		logger := middleware.GetLogger(ctx)
		logger.Info("Cursor past the last patch, clamping",
			"stored", s.progress.CurrentIndex, "last", maxIndex)
		s.progress.CurrentIndex = maxIndex
		if err := s.progRepo.Save(ctx, s.progress); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *deckService) reshuffle(ctx context.Context) error {
	s.progress.ShuffledIndices = s.shuffler.Permutation(len(s.words))
	s.progress.CurrentIndex = 0
	return s.progRepo.Save(ctx, s.progress)
}

func (s *deckService) totalPatches() int {
	return (len(s.words) + s.patchSize - 1) / s.patchSize
}

// patch returns the words of the 0-based patch i, empty when i is out of range.
func (s *deckService) patch(i int) []model.Word {
	n := len(s.progress.ShuffledIndices)
	start := i * s.patchSize
	if i < 0 || start >= n {
		return []model.Word{}
	}
	end := start + s.patchSize
	if end > n {
		end = n
	}
	words := make([]model.Word, 0, end-start)
	for _, wi := range s.progress.ShuffledIndices[start:end] {
		words = append(words, s.words[wi])
	}
	return words
}

func (s *deckService) CurrentPatch(ctx context.Context) ([]model.Word, error) {
	return s.patch(s.progress.CurrentIndex), nil
}

func (s *deckService) PreviousPatch(ctx context.Context) ([]model.Word, error) {
	if s.progress.CurrentIndex == 0 {
		return []model.Word{}, nil
	}
	return s.patch(s.progress.CurrentIndex - 1), nil
}

func (s *deckService) Advance(ctx context.Context) (bool, error) {
	if s.progress.CurrentIndex >= s.totalPatches()-1 {
		return false, nil
	}
	s.progress.CurrentIndex++
	if err := s.progRepo.Save(ctx, s.progress); err != nil {
		s.progress.CurrentIndex--
		return false, err
	}
	return true, nil
}

func (s *deckService) Retreat(ctx context.Context) (bool, error) {
	if s.progress.CurrentIndex == 0 {
		return false, nil
	}
	s.progress.CurrentIndex--
	if err := s.progRepo.Save(ctx, s.progress); err != nil {
		s.progress.CurrentIndex++
		return false, err
	}
	return true, nil
}

func (s *deckService) TestRange(ctx context.Context, numPatches int) ([]model.Word, error) {
	if numPatches <= 0 {
		return nil, fmt.Errorf("deckService.TestRange: patch count %d: %w", numPatches, model.ErrInvalidInput)
	}
	cur := s.progress.CurrentIndex
	if cur == 0 {
		return nil, model.ErrNoPriorPatches
	}
	k := numPatches
	if k > cur {
		k = cur
	}

	n := len(s.progress.ShuffledIndices)
	start := (cur - k) * s.patchSize
	end := cur * s.patchSize
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}

	words := make([]model.Word, 0, end-start)
	for _, wi := range s.progress.ShuffledIndices[start:end] {
		words = append(words, s.words[wi])
	}
	return words, nil
}

func (s *deckService) Reset(ctx context.Context) error {
	return s.reshuffle(ctx)
}

func (s *deckService) Position() (int, int) {
	return s.progress.CurrentIndex, s.totalPatches()
}

func (s *deckService) WordCount() int {
	return len(s.words)
}
