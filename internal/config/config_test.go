package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "quizdeck.yaml")
	content := "total_questions: 25\nimage_dir: imgs\nbrowser:\n  wait_timeout: 3s\n  poll_interval: 100ms\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("QUIZDECK_DECK_PATH", "out.csv")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.TotalQuestions)
	assert.Equal(t, "imgs", cfg.ImageDir)
	assert.Equal(t, "out.csv", cfg.DeckPath)
	assert.Equal(t, 3*time.Second, cfg.Browser.WaitTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Browser.PollInterval)
	assert.Equal(t, time.Second, cfg.Browser.OptionClickTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("QUIZDECK_TOTAL_QUESTIONS", "0")

	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOverride(t *testing.T) {
	cfg := Default()
	err := cfg.Override(Config{TotalQuestions: 5, DataPath: "x.json"})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.TotalQuestions)
	assert.Equal(t, "x.json", cfg.DataPath)
	assert.Equal(t, "anki_quiz_deck.csv", cfg.DeckPath)
	assert.True(t, cfg.Browser.Headless)
}
