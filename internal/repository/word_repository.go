// internal/repository/word_repository.go
package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"go_hsk_flashcard/internal/middleware"
	"go_hsk_flashcard/internal/model"
)

// WordRepository loads the vocabulary list for a proficiency level.
type WordRepository interface {
	Load(ctx context.Context, level int) ([]model.Word, error)
}

type fileWordRepository struct {
	dir string
}

// NewFileWordRepository reads hsk<level>.csv (or .xlsx) from dir.
func NewFileWordRepository(dir string) WordRepository {
	return &fileWordRepository{dir: dir}
}

func (r *fileWordRepository) Load(ctx context.Context, level int) ([]model.Word, error) {
	logger := middleware.GetLogger(ctx)

	csvPath := filepath.Join(r.dir, fmt.Sprintf("hsk%d.csv", level))
	if _, err := os.Stat(csvPath); err == nil {
		words, err := loadCSV(csvPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Vocabulary loaded", "level", level, "source", csvPath, "count", len(words))
		return words, nil
	}

	xlsxPath := filepath.Join(r.dir, fmt.Sprintf("hsk%d.xlsx", level))
	if _, err := os.Stat(xlsxPath); err == nil {
		words, err := loadXLSX(xlsxPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Vocabulary loaded", "level", level, "source", xlsxPath, "count", len(words))
		return words, nil
	}

	logger.Warn("No vocabulary source for level", "level", level, "dir", r.dir)
	return nil, fmt.Errorf("fileWordRepository.Load: level %d: %w", level, model.ErrDataSourceMissing)
}

// columnIndex resolves the logical columns from a header row,
// case-insensitively. Returns -1 for columns the source does not carry.
type columnIndex struct {
	chinese, pinyin, meaning, hanViet, nghia, cachDung int
}

func resolveColumns(header []string) columnIndex {
	idx := columnIndex{chinese: -1, pinyin: -1, meaning: -1, hanViet: -1, nghia: -1, cachDung: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "chinese":
			idx.chinese = i
		case "pinyin":
			idx.pinyin = i
		case "meaning_english", "meaning":
			idx.meaning = i
		case "han_viet":
			idx.hanViet = i
		case "nghia_tieng_viet":
			idx.nghia = i
		case "cach_dung_trong_cau", "cach_dung":
			idx.cachDung = i
		}
	}
	return idx
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func rowToWord(row []string, idx columnIndex) model.Word {
	return model.Word{
		Chinese:        field(row, idx.chinese),
		Pinyin:         field(row, idx.pinyin),
		Meaning:        field(row, idx.meaning),
		HanViet:        field(row, idx.hanViet),
		NghiaTiengViet: field(row, idx.nghia),
		CachDung:       field(row, idx.cachDung),
	}
}

func loadCSV(path string) ([]model.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loadCSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, absent trailing fields are empty
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("loadCSV: parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return []model.Word{}, nil
	}

	idx := resolveColumns(records[0])
	words := make([]model.Word, 0, len(records)-1)
	for _, row := range records[1:] {
		words = append(words, rowToWord(row, idx))
	}
	return words, nil
}

func loadXLSX(path string) ([]model.Word, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("loadXLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []model.Word{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("loadXLSX: reading %s: %w", path, err)
	}
	if len(rows) == 0 {
		return []model.Word{}, nil
	}

	idx := resolveColumns(rows[0])
	words := make([]model.Word, 0, len(rows)-1)
	for _, row := range rows[1:] {
		words = append(words, rowToWord(row, idx))
	}
	return words, nil
}
