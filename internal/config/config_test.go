package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/htmlmd/core/convert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	v := viper.New()
	require.NoError(t, Load(v))

	assert.Equal(t, "md", v.GetString("format"))
	assert.Equal(t, 4, v.GetInt("jobs"))
	assert.Empty(t, StringSlice(v, "remove_selectors"))
	require.NoError(t, CheckConfigValidity(v))
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("heading_style: setext\nfence: \"~~~\"\njobs: 2\n"), 0o644))
	t.Setenv("HTMLMD_JOBS", "8")
	t.Setenv("HTMLMD_REMOVE_SELECTORS", ".footer, #ads")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, Load(v))

	assert.Equal(t, "setext", v.GetString("heading_style"))
	assert.Equal(t, "~~~", v.GetString("fence"))
	assert.Equal(t, 8, v.GetInt("jobs"))
	assert.Equal(t, []string{".footer", "#ads"}, StringSlice(v, "remove_selectors"))
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: [\n"), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	assert.Error(t, Load(v))
}

func TestConverterOptions(t *testing.T) {
	v := viper.New()
	applyDefaults(v)
	v.Set("link_style", "referenced")
	v.Set("link_reference_style", "shortcut")

	opts, err := ConverterOptions(v)
	require.NoError(t, err)
	conv, err := convert.New(opts...)
	require.NoError(t, err)

	got := conv.Options()
	assert.Equal(t, convert.LinkReferenced, got.LinkStyle)
	assert.Equal(t, convert.ReferenceShortcut, got.LinkReferenceStyle)
	assert.Equal(t, "  ", got.BR)
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	applyDefaults(v)
	v.Set("format", "docx")
	v.Set("jobs", 0)
	v.Set("log_level", "loud")
	v.Set("heading_style", "underline")
	v.Set("remove_selectors", []string{"p[["})

	err := CheckConfigValidity(v)
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"format must be one of", "jobs must be greater than 0", "log_level", "heading style", "invalid CSS selector"} {
		assert.Contains(t, msg, want)
	}
	assert.ErrorIs(t, err, convert.ErrInvalidOption)
	assert.ErrorIs(t, err, convert.ErrInvalidSelector)
}
