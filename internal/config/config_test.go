package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docfill/docfill/internal/config"
	"github.com/docfill/docfill/internal/document"
)

// isolate points HOME and the working directory at fresh temp dirs so Load
// sees only what the test writes.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, ".docfill")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.CaseSensitive())
	assert.Equal(t, config.DefaultMaxAnswers, cfg.MaxAnswers())
	assert.Equal(t, int64(config.DefaultMaxFileSize), cfg.MaxFileSize())
}

func TestLoad_LocalFile(t *testing.T) {
	isolate(t)
	writeConfig(t, ".", "verify:\n  case_sensitive: true\nlimits:\n  max_answers: 10\n")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.CaseSensitive())
	assert.Equal(t, 10, cfg.MaxAnswers())
}

func TestLoad_GlobalFileWhenNoLocal(t *testing.T) {
	isolate(t)
	writeConfig(t, os.Getenv("HOME"), "limits:\n  max_answers: 25\n")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MaxAnswers())
}

func TestLoad_LocalBeatsGlobal(t *testing.T) {
	isolate(t)
	writeConfig(t, os.Getenv("HOME"), "limits:\n  max_answers: 25\n")
	writeConfig(t, ".", "limits:\n  max_answers: 10\n")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxAnswers())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	writeConfig(t, ".", "limits:\n  max_answers: 10\n")
	t.Setenv(config.EnvMaxAnswers, "99")
	t.Setenv(config.EnvCaseSensitive, "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.MaxAnswers())
	assert.True(t, cfg.CaseSensitive())
}

func TestLoad_UnparseableEnvIgnored(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvMaxAnswers, "lots")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxAnswers, cfg.MaxAnswers(), "an override that does not parse is treated as not set")
}

func TestLoad_DotEnvFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte(config.EnvMaxFileSize+"=1024\n"), 0644))
	// godotenv sets real process env; undo it so later tests see defaults.
	t.Cleanup(func() { os.Unsetenv(config.EnvMaxFileSize) })

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(1024), cfg.MaxFileSize())
}

func TestLoad_OutOfBoundsRejected(t *testing.T) {
	isolate(t)
	writeConfig(t, ".", "limits:\n  max_answers: 0\n")

	_, err := config.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestLoad_MalformedYAML(t *testing.T) {
	isolate(t)
	writeConfig(t, ".", "limits: [not a mapping\n")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed config file")
}

func TestValidate_Bounds(t *testing.T) {
	ok := 100
	cfg := &config.Config{Limits: config.Limits{MaxAnswers: &ok}}
	assert.NoError(t, cfg.Validate())

	tooMany := config.MaxMaxAnswers + 1
	cfg = &config.Config{Limits: config.Limits{MaxAnswers: &tooMany}}
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidValue)

	tooBig := int64(config.MaxMaxFileSize + 1)
	cfg = &config.Config{Limits: config.Limits{MaxFileSize: &tooBig}}
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidValue)
}

func TestOptions(t *testing.T) {
	snippet, context := 200, 40
	caseSensitive := true
	cfg := &config.Config{
		Verify: config.Verify{CaseSensitive: &caseSensitive},
		Limits: config.Limits{RawSnippetLimit: &snippet, ContextLimit: &context},
	}

	opts := cfg.Options()
	assert.True(t, opts.CaseSensitive)
	assert.Equal(t, 200, opts.RawSnippetLimit)
	assert.Equal(t, 40, opts.ContextLimit)
}

func TestOptions_DefaultsApplied(t *testing.T) {
	opts := (&config.Config{}).Options()
	assert.Equal(t, document.DefaultRawSnippetLimit, opts.RawSnippetLimit)
	assert.Equal(t, document.DefaultContextLimit, opts.ContextLimit)
}
