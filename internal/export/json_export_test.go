package export

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mtvnnb/vie-driver-license-test-anki/pkg/domain"
)

func sampleRecords() []domain.QuestionRecord {
	return []domain.QuestionRecord{
		{
			QuestionNumber:       1,
			QuestionText:         "Khái niệm \"phần đường xe chạy\" là gì?",
			ImageLocalPath:       domain.StringPtr("quiz_images/q1_a.png"),
			AllAnswerOptionsText: []string{"1. ✔️Là phần của đường bộ", "2. <Khác>"},
			CorrectAnswerText:    domain.StringPtr("1. ✔️Là phần của đường bộ"),
			IncorrectAnswerTexts: []string{},
			Explanation:          domain.StringPtr(""),
		},
		{
			QuestionNumber:       2,
			QuestionText:         "Question 2",
			AllAnswerOptionsText: []string{},
			IncorrectAnswerTexts: []string{},
		},
	}
}

func TestJSONExporter_RoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	e := NewJSONExporter(fs, zaptest.NewLogger(t))

	require.NoError(t, e.Export(sampleRecords(), "out/quiz_data.json"))

	data, err := afero.ReadFile(fs, "out/quiz_data.json")
	require.NoError(t, err)
	raw := string(data)
	assert.Contains(t, raw, `"image_local_path": null`)
	assert.Contains(t, raw, `"incorrect_answer_texts": []`)
	assert.Contains(t, raw, "✔️Là phần")
	assert.Contains(t, raw, "<Khác>")

	got, err := LoadRecords(fs, "out/quiz_data.json")
	require.NoError(t, err)
	if diff := cmp.Diff(sampleRecords(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRecords_Missing(t *testing.T) {
	_, err := LoadRecords(afero.NewMemMapFs(), "quiz_data.json")
	assert.ErrorIs(t, err, ErrInputNotFound)
}

func TestLoadRecords_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `[{"question_number": 1, "question_text": "Q`},
		{"not a list", `{"question_number": 1}`},
		{"zero number", `[{"question_number": 0}]`},
		{"duplicate number", `[{"question_number": 3}, {"question_number": 3}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "quiz_data.json", []byte(tt.content), 0o644))

			_, err := LoadRecords(fs, "quiz_data.json")
			assert.ErrorIs(t, err, ErrCorruptInput)
		})
	}
}

func TestLoadRecords_LenientAndDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `[
		// fixed by hand
		{"question_number": 5, "question_text": "Q5", "explanation": "E",},
	]`
	require.NoError(t, afero.WriteFile(fs, "quiz_data.json", []byte(content), 0o644))

	got, err := LoadRecords(fs, "quiz_data.json")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].QuestionNumber)
	assert.Equal(t, "E", domain.Value(got[0].Explanation))
	assert.Equal(t, []string{}, got[0].AllAnswerOptionsText)
	assert.Equal(t, []string{}, got[0].IncorrectAnswerTexts)
	assert.Nil(t, got[0].CorrectAnswerText)
}
