package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knitlang/knit"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	delims, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	require.Equal(t, knit.DefaultDelimiters(), delims)
}

func TestLoadOverridesOnlySpecifiedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knit.toml")
	const body = `
[delimiters]
heredoc_open = "<<"
heredoc_close = ">>"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	delims, err := Load(path)
	require.NoError(t, err)

	want := knit.DefaultDelimiters()
	want.HereDocOpen = "<<"
	want.HereDocClose = ">>"
	require.Equal(t, want, delims)
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knit.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is not [valid"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
