package export

import (
	"encoding/csv"
	"fmt"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/mtvnnb/vie-driver-license-test-anki/internal/deck"
	"github.com/mtvnnb/vie-driver-license-test-anki/pkg/domain"
)

// Separator is the Anki import field separator.
const Separator = ';'

// CSVExporter renders records as cards and writes the Anki deck file.
type CSVExporter struct {
	fs        afero.Fs
	formatter *deck.Formatter
	log       *zap.Logger
}

func NewCSVExporter(fs afero.Fs, formatter *deck.Formatter, log *zap.Logger) *CSVExporter {
	return &CSVExporter{fs: fs, formatter: formatter, log: log}
}

// Export refuses an empty collection rather than writing a header-only deck.
func (e *CSVExporter) Export(records []domain.QuestionRecord, filename string) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	cards := e.formatter.Cards(records)

	if dir := filepath.Dir(filename); dir != "." {
		if err := e.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	file, err := e.fs.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", filename, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.Comma = Separator
	if err := gocsv.MarshalCSV(&cards, gocsv.NewSafeCSVWriter(w)); err != nil {
		return fmt.Errorf("exporting deck to CSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing deck: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", filename, err)
	}

	e.log.Info("Anki CSV deck created", zap.String("path", filename), zap.Int("cards", len(cards)))
	return nil
}
