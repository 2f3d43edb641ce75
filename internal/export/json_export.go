package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/afero"
	"github.com/titanous/json5"
	"go.uber.org/zap"

	"github.com/mtvnnb/vie-driver-license-test-anki/pkg/domain"
)

// JSONExporter writes the intermediate file the deck is generated from.
type JSONExporter struct {
	fs  afero.Fs
	log *zap.Logger
}

func NewJSONExporter(fs afero.Fs, log *zap.Logger) *JSONExporter {
	return &JSONExporter{fs: fs, log: log}
}

func (e *JSONExporter) Export(records []domain.QuestionRecord, filename string) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshalling records: %w", err)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := e.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(e.fs, filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	e.log.Info("records saved", zap.String("path", filename), zap.Int("count", len(records)))
	return nil
}

// LoadRecords reads the intermediate file. The file is decoded as JSON5 so
// that hand-corrected files with comments or trailing commas still load.
func LoadRecords(fs afero.Fs, filename string) ([]domain.QuestionRecord, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, filename)
		}
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	var records []domain.QuestionRecord
	if err := json5.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptInput, filename, err)
	}

	seen := mapset.NewThreadUnsafeSet[int]()
	for i := range records {
		n := records[i].QuestionNumber
		if n <= 0 {
			return nil, fmt.Errorf("%w: record %d has question number %d", ErrCorruptInput, i, n)
		}
		if !seen.Add(n) {
			return nil, fmt.Errorf("%w: question %d appears more than once", ErrCorruptInput, n)
		}
		if records[i].AllAnswerOptionsText == nil {
			records[i].AllAnswerOptionsText = []string{}
		}
		if records[i].IncorrectAnswerTexts == nil {
			records[i].IncorrectAnswerTexts = []string{}
		}
	}
	return records, nil
}
