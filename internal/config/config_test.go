package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
source: ./quiz.md
questions: 25
history_db: /tmp/history.db
request:
  timeout_secs: 10
  max_attempts: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./quiz.md", cfg.Source)
	assert.Equal(t, 25, cfg.Questions)
	assert.Equal(t, "/tmp/history.db", cfg.HistoryDB)
	assert.Equal(t, 10, cfg.Request.TimeoutSecs)
	assert.Equal(t, 5, cfg.Request.MaxAttempts)
}

func TestLoad_DefaultsFillUnsetFields(t *testing.T) {
	cfg, err := Load(writeConfig(t, "source: ./quiz.md\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Questions)
	assert.Equal(t, 30, cfg.Request.TimeoutSecs)
	assert.Equal(t, 3, cfg.Request.MaxAttempts)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	_, err := Load(writeConfig(t, "sorce: ./quiz.md\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_MultipleDocumentsRejected(t *testing.T) {
	_, err := Load(writeConfig(t, "source: a.md\n---\nsource: b.md\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_EmptyFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("QUIZDOC_SOURCE", "https://example.com/quiz.md")
	t.Setenv("QUIZDOC_QUESTIONS", "7")
	t.Setenv("QUIZDOC_DB", "/tmp/q.db")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	assert.Equal(t, "https://example.com/quiz.md", cfg.Source)
	assert.Equal(t, 7, cfg.Questions)
	assert.Equal(t, "/tmp/q.db", cfg.HistoryDB)
}

func TestApplyEnv_BadNumberIgnored(t *testing.T) {
	t.Setenv("QUIZDOC_QUESTIONS", "lots")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	assert.Equal(t, 10, cfg.Questions)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = "./quiz.md"
	require.NoError(t, cfg.Validate())
}

func TestValidate_AggregatesIssues(t *testing.T) {
	cfg := Config{Questions: 0, Request: RequestConfig{TimeoutSecs: 0, MaxAttempts: 0}}

	err := cfg.Validate()
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok, "error type = %T, want *ValidationError", err)
	assert.Len(t, verr.Issues, 4)

	fields := make([]string, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		fields = append(fields, issue.Field)
	}
	assert.Equal(t, []string{"source", "questions", "request.timeout_secs", "request.max_attempts"}, fields)

	// Every issue lands in the rendered message.
	for _, issue := range verr.Issues {
		assert.True(t, strings.Contains(err.Error(), issue.Field))
	}
}

func TestValidate_QuestionsUpperBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source = "./quiz.md"
	cfg.Questions = 1000

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "questions")
}
