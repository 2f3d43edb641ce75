package export

import (
	"errors"

	"github.com/mtvnnb/vie-driver-license-test-anki/pkg/domain"
)

var (
	// ErrNoRecords is returned instead of writing a header-only deck.
	ErrNoRecords = errors.New("no quiz records")
	// ErrInputNotFound means the intermediate file does not exist yet.
	ErrInputNotFound = errors.New("input file not found")
	// ErrCorruptInput means the intermediate file could not be decoded or holds invalid records.
	ErrCorruptInput = errors.New("corrupt input file")
)

type Exporter interface {
	// Export writes the records to the specified file
	Export(records []domain.QuestionRecord, filename string) error
}
