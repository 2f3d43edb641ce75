package webscraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const revealedPage = `<html><body>
<div id="cauhoiquiz">
  <h3>Câu 12:   Biển nào
      cấm đỗ xe?</h3>
  <img class="question-image-huy" src=" /uploads/q12.png ">
</div>
<div id="cautraloiquiz">
  <label class="answer-huy incorrect-huy">1. Biển 1</label>
  <label class="answer-huy correct-huy">2. ✔️ Biển 2</label>
  <label class="answer-huy">   </label>
  <label class="answer-huy">3. Biển 3</label>
</div>
<div class="explanation-text">Biển 2 là</div>
<div class="explanation-text"></div>
<div class="explanation-text">cấm đỗ xe.</div>
</body></html>`

func TestSnapshot_Fields(t *testing.T) {
	snap, err := NewSnapshot(revealedPage, DefaultMarkup)
	require.NoError(t, err)

	assert.Equal(t, "Câu 12: Biển nào cấm đỗ xe?", snap.QuestionText())

	src, found := snap.ImageSource()
	assert.True(t, found)
	assert.Equal(t, "/uploads/q12.png", src)

	assert.Equal(t, "2. ✔️ Biển 2", snap.CorrectAnswer())
	assert.Equal(t, []string{"1. Biển 1", "2. ✔️ Biển 2", "3. Biển 3"}, snap.Options())
	assert.Equal(t, []string{"1. Biển 1"}, snap.IncorrectAnswers())
	assert.Equal(t, "Biển 2 là cấm đỗ xe.", snap.Explanation())
}

func TestSnapshot_EmptyPage(t *testing.T) {
	snap, err := NewSnapshot("<html><body><p>loading</p></body></html>", DefaultMarkup)
	require.NoError(t, err)

	assert.Equal(t, "", snap.QuestionText())
	_, found := snap.ImageSource()
	assert.False(t, found)
	assert.Equal(t, "", snap.CorrectAnswer())
	assert.Equal(t, []string{}, snap.Options())
	assert.Equal(t, []string{}, snap.IncorrectAnswers())
	assert.Equal(t, "", snap.Explanation())
}
