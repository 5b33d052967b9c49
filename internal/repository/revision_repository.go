// internal/repository/revision_repository.go
package repository

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go_hsk_flashcard/internal/middleware"
	"go_hsk_flashcard/internal/model"
)

// RevisionRepository persists the set of previously-missed words as a
// pipe-delimited text log, one word per line. The file may be hand-edited,
// so parsing is tolerant: lines with fewer than three fields are skipped.
type RevisionRepository interface {
	Load(ctx context.Context) ([]model.Word, error)
	Add(ctx context.Context, w model.Word) error
	Remove(ctx context.Context, w model.Word) error
}

type fileRevisionRepository struct {
	path string
}

func NewFileRevisionRepository(path string) RevisionRepository {
	return &fileRevisionRepository{path: path}
}

func (r *fileRevisionRepository) Load(ctx context.Context) ([]model.Word, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Word{}, nil
		}
		return nil, fmt.Errorf("fileRevisionRepository.Load: %w", err)
	}
	defer f.Close()

	var words []model.Word
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "|")
		if len(parts) < 3 {
			continue // malformed line, not an error
		}
		words = append(words, model.Word{
			Chinese:        parts[0],
			Pinyin:         parts[1],
			Meaning:        parts[2],
			HanViet:        part(parts, 3),
			NghiaTiengViet: part(parts, 4),
			CachDung:       part(parts, 5),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fileRevisionRepository.Load: %w", err)
	}
	return words, nil
}

// Add appends the word unless an entry with the same Chinese form already
// exists. Calling twice with the same word has the effect of one call.
func (r *fileRevisionRepository) Add(ctx context.Context, w model.Word) error {
	logger := middleware.GetLogger(ctx)

	existing, err := r.Load(ctx)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.Key() == w.Key() {
			return nil
		}
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("fileRevisionRepository.Add: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(w)); err != nil {
		logger.Error("Error appending to revision file", "error", err, "path", r.path)
		return fmt.Errorf("fileRevisionRepository.Add: %w", err)
	}
	logger.Debug("Word added to revision", "chinese", w.Chinese)
	return nil
}

// Remove rewrites the log without any line matching the word's Chinese form.
// Removing a non-member is a no-op.
func (r *fileRevisionRepository) Remove(ctx context.Context, w model.Word) error {
	logger := middleware.GetLogger(ctx)

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("fileRevisionRepository.Remove: %w", err)
	}

	var remaining []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		parts := strings.Split(line, "|")
		if len(parts) >= 1 && parts[0] == w.Chinese {
			continue
		}
		remaining = append(remaining, line)
	}
	scanErr := scanner.Err()
	f.Close()
	if scanErr != nil {
		return fmt.Errorf("fileRevisionRepository.Remove: %w", scanErr)
	}

	var b strings.Builder
	for _, line := range remaining {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(r.path, []byte(b.String()), 0o644); err != nil {
		logger.Error("Error rewriting revision file", "error", err, "path", r.path)
		return fmt.Errorf("fileRevisionRepository.Remove: %w", err)
	}
	logger.Debug("Word removed from revision", "chinese", w.Chinese)
	return nil
}

func formatLine(w model.Word) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s\n",
		w.Chinese, w.Pinyin, w.Meaning, w.HanViet, w.NghiaTiengViet, w.CachDung)
}

func part(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}
